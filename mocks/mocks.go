// Package mocks provides hand-written, call-counting test doubles for the
// runner's collaborator interfaces.
package mocks

import (
	"context"

	"github.com/rewerma/commons-dbutils/runner"
)

// Factory is a counting ConnectionFactory double. With a nil Conn and nil
// Err it yields no connection, mimicking a factory that returns nothing.
type Factory struct {
	Conn  *Connection
	Err   error
	Calls int
}

func (f *Factory) Connection(ctx context.Context) (runner.Connection, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Conn == nil {
		return nil, nil
	}
	return f.Conn, nil
}

// Connection is a counting Connection double.
type Connection struct {
	Stmt         *Statement
	PrepareErr   error
	CloseErr     error
	PrepareCalls int
	CloseCalls   int
}

func (c *Connection) Prepare(ctx context.Context, query string) (runner.Statement, error) {
	c.PrepareCalls++
	if c.PrepareErr != nil {
		return nil, c.PrepareErr
	}
	return c.Stmt, nil
}

func (c *Connection) Close() error {
	c.CloseCalls++
	return c.CloseErr
}

// Bind records one positional bind call.
type Bind struct {
	Pos   int
	Value any
}

// Statement is a counting Statement double. Declared is the placeholder
// count it reports; BatchCounts and Affected are the canned execution
// results.
type Statement struct {
	Declared    int
	Affected    int64
	BatchCounts []int64
	Rows        *Rows

	ParamErr    error
	BindErr     error
	QueryErr    error
	UpdateErr   error
	AddBatchErr error
	BatchErr    error
	CloseErr    error

	Binds         []Bind
	AddBatchCalls int
	QueryCalls    int
	UpdateCalls   int
	BatchCalls    int
	CloseCalls    int
}

// NewStatement returns a Statement declaring the given placeholder count
// with an empty canned cursor.
func NewStatement(declared int) *Statement {
	return &Statement{Declared: declared, Rows: &Rows{}}
}

func (s *Statement) ParameterCount() (int, error) {
	if s.ParamErr != nil {
		return 0, s.ParamErr
	}
	return s.Declared, nil
}

func (s *Statement) Bind(pos int, value any) error {
	if s.BindErr != nil {
		return s.BindErr
	}
	s.Binds = append(s.Binds, Bind{Pos: pos, Value: value})
	return nil
}

func (s *Statement) Query(ctx context.Context) (runner.Rows, error) {
	s.QueryCalls++
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	if s.Rows == nil {
		s.Rows = &Rows{}
	}
	return s.Rows, nil
}

func (s *Statement) Update(ctx context.Context) (int64, error) {
	s.UpdateCalls++
	if s.UpdateErr != nil {
		return 0, s.UpdateErr
	}
	return s.Affected, nil
}

func (s *Statement) AddBatch() error {
	if s.AddBatchErr != nil {
		return s.AddBatchErr
	}
	s.AddBatchCalls++
	return nil
}

func (s *Statement) ExecuteBatch(ctx context.Context) ([]int64, error) {
	s.BatchCalls++
	if s.BatchErr != nil {
		return nil, s.BatchErr
	}
	return s.BatchCounts, nil
}

func (s *Statement) Close() error {
	s.CloseCalls++
	return s.CloseErr
}

// Rows is a canned forward-only cursor.
type Rows struct {
	Data       [][]any
	ScanErr    error
	CloseErr   error
	pos        int
	CloseCalls int
}

func (r *Rows) Next() bool {
	if r.pos >= len(r.Data) {
		return false
	}
	r.pos++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	row := r.Data[r.pos-1]
	for i, d := range dest {
		if i >= len(row) {
			break
		}
		if p, ok := d.(*any); ok {
			*p = row[i]
		}
	}
	return nil
}

func (r *Rows) Err() error {
	return nil
}

func (r *Rows) Close() error {
	r.CloseCalls++
	return r.CloseErr
}
