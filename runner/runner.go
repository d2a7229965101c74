// Package runner executes parameterized queries, updates and batches over a
// narrow connection abstraction, enforcing that prepared statements and
// runner-acquired connections are released exactly once on every exit path.
// Caller-supplied connections are never closed.
package runner

import (
	"context"
	"fmt"
	"log/slog"
)

// Config holds construction options for a Runner.
type Config struct {
	// ValidateParameters enables the declared-count check before binding.
	// When disabled, arity mismatches surface as driver execution failures.
	ValidateParameters bool
	// Logger records suppressed resource-release failures.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{ValidateParameters: true}
}

// Runner is the synchronous operation core. A Runner is safe for concurrent
// use; connections and statements it acquires are scoped to one operation
// and never shared.
type Runner struct {
	factory  ConnectionFactory
	validate bool
	log      *slog.Logger
}

// New creates a Runner. The factory may be nil when every call supplies its
// own connection; operations that then need to acquire one fail with
// ErrConnectionUnavailable.
func New(factory ConnectionFactory, cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{factory: factory, validate: cfg.ValidateParameters, log: logger}
}

// Query acquires a connection from the factory, executes query and hands the
// row cursor to handler. The cursor is closed after the handler returns, the
// statement and connection on every exit path.
func Query[T any](ctx context.Context, r *Runner, query string, handler ResultHandler[T], params ...any) (T, error) {
	var zero T
	if query == "" {
		return zero, ErrInvalidSQL
	}
	if handler == nil {
		return zero, ErrNoResultHandler
	}
	conn, err := r.acquire(ctx)
	if err != nil {
		return zero, err
	}
	return runQuery(ctx, r, conn, true, query, handler, params)
}

// QueryConn is Query against a caller-supplied connection, which stays open
// regardless of outcome.
func QueryConn[T any](ctx context.Context, r *Runner, conn Connection, query string, handler ResultHandler[T], params ...any) (T, error) {
	var zero T
	if query == "" {
		return zero, ErrInvalidSQL
	}
	if handler == nil {
		return zero, ErrNoResultHandler
	}
	if conn == nil {
		return zero, fmt.Errorf("%w: nil connection", ErrConnectionUnavailable)
	}
	return runQuery(ctx, r, conn, false, query, handler, params)
}

func runQuery[T any](ctx context.Context, r *Runner, conn Connection, owned bool, query string, handler ResultHandler[T], params []any) (T, error) {
	var result T
	err := r.run(ctx, conn, owned, query, func(stmt Statement) (err error) {
		if err = r.FillStatement(stmt, params...); err != nil {
			return err
		}
		rows, qerr := stmt.Query(ctx)
		if qerr != nil {
			return fmt.Errorf("execute query: %w", qerr)
		}
		// Propagate the cursor close error only if nothing else failed
		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close rows: %w", cerr)
			}
		}()
		v, herr := handler(rows)
		if herr != nil {
			return herr
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Update acquires a connection, executes query and returns the affected-row
// count.
func (r *Runner) Update(ctx context.Context, query string, params ...any) (int64, error) {
	if query == "" {
		return 0, ErrInvalidSQL
	}
	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	return r.update(ctx, conn, true, query, params)
}

// UpdateConn is Update against a caller-supplied connection.
func (r *Runner) UpdateConn(ctx context.Context, conn Connection, query string, params ...any) (int64, error) {
	if query == "" {
		return 0, ErrInvalidSQL
	}
	if conn == nil {
		return 0, fmt.Errorf("%w: nil connection", ErrConnectionUnavailable)
	}
	return r.update(ctx, conn, false, query, params)
}

func (r *Runner) update(ctx context.Context, conn Connection, owned bool, query string, params []any) (int64, error) {
	var affected int64
	err := r.run(ctx, conn, owned, query, func(stmt Statement) error {
		if err := r.FillStatement(stmt, params...); err != nil {
			return err
		}
		n, err := stmt.Update(ctx)
		if err != nil {
			return fmt.Errorf("execute update: %w", err)
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Batch acquires a connection, stages one batch row per parameter row and
// executes the whole batch once, returning per-row result counts. The first
// row whose arity differs from the declared placeholder count aborts the
// batch before anything executes.
func (r *Runner) Batch(ctx context.Context, query string, rows [][]any) ([]int64, error) {
	if query == "" {
		return nil, ErrInvalidSQL
	}
	if len(rows) == 0 {
		return nil, ErrInvalidBatchArguments
	}
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return r.batch(ctx, conn, true, query, rows)
}

// BatchConn is Batch against a caller-supplied connection.
func (r *Runner) BatchConn(ctx context.Context, conn Connection, query string, rows [][]any) ([]int64, error) {
	if query == "" {
		return nil, ErrInvalidSQL
	}
	if len(rows) == 0 {
		return nil, ErrInvalidBatchArguments
	}
	if conn == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrConnectionUnavailable)
	}
	return r.batch(ctx, conn, false, query, rows)
}

func (r *Runner) batch(ctx context.Context, conn Connection, owned bool, query string, rows [][]any) ([]int64, error) {
	var counts []int64
	err := r.run(ctx, conn, owned, query, func(stmt Statement) error {
		for i, row := range rows {
			if err := r.FillStatement(stmt, row...); err != nil {
				return fmt.Errorf("batch row %d: %w", i, err)
			}
			if err := stmt.AddBatch(); err != nil {
				return fmt.Errorf("stage batch row %d: %w", i, err)
			}
		}
		res, err := stmt.ExecuteBatch(ctx)
		if err != nil {
			return fmt.Errorf("execute batch: %w", err)
		}
		counts = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// acquire obtains a runner-owned connection from the factory.
func (r *Runner) acquire(ctx context.Context) (Connection, error) {
	if r.factory == nil {
		return nil, fmt.Errorf("%w: runner has no connection factory", ErrConnectionUnavailable)
	}
	conn, err := r.factory.Connection(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionUnavailable, err)
	}
	if conn == nil {
		return nil, fmt.Errorf("%w: factory returned no connection", ErrConnectionUnavailable)
	}
	return conn, nil
}

// run prepares a statement for query on conn, hands it to body and releases
// resources on the way out. The statement is closed exactly once after a
// successful prepare. A runner-owned connection is closed exactly once; a
// caller-supplied connection is left untouched. A release failure after a
// failed body is logged and suppressed so the primary failure is preserved;
// after a successful body it becomes the reported error.
// The close calls run in deferred handlers so they also fire when the body
// panics (a panicking result handler is caught further up, in the dispatch
// layer).
func (r *Runner) run(ctx context.Context, conn Connection, owned bool, query string, body func(Statement) error) (err error) {
	stmt, perr := conn.Prepare(ctx, query)
	if perr != nil {
		if owned {
			if cerr := conn.Close(); cerr != nil {
				r.log.Warn("suppressed connection close failure", "error", cerr)
			}
		}
		return fmt.Errorf("prepare statement: %w", perr)
	}

	if owned {
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				if err == nil {
					err = fmt.Errorf("close connection: %w", cerr)
				} else {
					r.log.Warn("suppressed connection close failure", "error", cerr)
				}
			}
		}()
	}
	// Registered after the connection close so it runs first
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("close statement: %w", cerr)
			} else {
				r.log.Warn("suppressed statement close failure", "error", cerr)
			}
		}
	}()

	return body(stmt)
}
