// Package stdsql adapts database/sql to the runner's connection, statement
// and row-cursor interfaces. Declared placeholder counts come from scanning
// the SQL text, since database/sql exposes no parameter metadata.
package stdsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rewerma/commons-dbutils/parser"
	"github.com/rewerma/commons-dbutils/runner"
)

// Factory adapts *sql.DB to runner.ConnectionFactory. Every acquisition
// reserves a dedicated *sql.Conn from the pool for one operation.
type Factory struct {
	db *sql.DB
}

// NewFactory wraps db as a connection factory.
func NewFactory(db *sql.DB) *Factory {
	return &Factory{db: db}
}

// Connection reserves a connection from the pool.
func (f *Factory) Connection(ctx context.Context) (runner.Connection, error) {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &connection{conn: conn}, nil
}

// Conn wraps an already reserved *sql.Conn as a caller-owned
// runner.Connection. The runner never closes caller-supplied connections,
// so the *sql.Conn stays reserved until the caller closes it.
func Conn(conn *sql.Conn) runner.Connection {
	return &connection{conn: conn}
}

type connection struct {
	conn *sql.Conn
}

func (c *connection) Prepare(ctx context.Context, query string) (runner.Statement, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &statement{stmt: stmt, declared: parser.CountPlaceholders(query)}, nil
}

func (c *connection) Close() error {
	return c.conn.Close()
}

type statement struct {
	stmt     *sql.Stmt
	declared int
	args     []any
	batch    [][]any
}

func (s *statement) ParameterCount() (int, error) {
	return s.declared, nil
}

func (s *statement) Bind(pos int, value any) error {
	if pos < 1 {
		return fmt.Errorf("bind position %d out of range", pos)
	}
	for len(s.args) < pos {
		s.args = append(s.args, nil)
	}
	s.args[pos-1] = value
	return nil
}

func (s *statement) Query(ctx context.Context) (runner.Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *statement) Update(ctx context.Context) (int64, error) {
	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *statement) AddBatch() error {
	staged := make([]any, len(s.args))
	copy(staged, s.args)
	s.batch = append(s.batch, staged)
	s.args = s.args[:0]
	return nil
}

// ExecuteBatch replays the staged rows on the one prepared statement.
// database/sql has no batch API; per-row execution on a shared prepared
// statement is the standard emulation.
func (s *statement) ExecuteBatch(ctx context.Context) ([]int64, error) {
	counts := make([]int64, 0, len(s.batch))
	for i, row := range s.batch {
		res, err := s.stmt.ExecContext(ctx, row...)
		if err != nil {
			return nil, fmt.Errorf("batch row %d: %w", i, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("batch row %d: %w", i, err)
		}
		counts = append(counts, n)
	}
	s.batch = nil
	return counts, nil
}

func (s *statement) Close() error {
	return s.stmt.Close()
}
