package runner

import "context"

// ConnectionFactory yields a connection on demand. Connections obtained
// through a factory are owned by the runner for the duration of one
// operation and closed when that operation finishes.
type ConnectionFactory interface {
	Connection(ctx context.Context) (Connection, error)
}

// Connection is the minimal connection capability the runner needs.
type Connection interface {
	Prepare(ctx context.Context, query string) (Statement, error)
	Close() error
}

// Statement is a prepared statement scoped to a single operation.
type Statement interface {
	// ParameterCount reports how many placeholders the statement declares.
	ParameterCount() (int, error)
	// Bind sets the placeholder at position pos (1-based) to value.
	Bind(pos int, value any) error
	// Query executes the statement and returns its row cursor.
	Query(ctx context.Context) (Rows, error)
	// Update executes the statement and returns the affected-row count.
	Update(ctx context.Context) (int64, error)
	// AddBatch stages the currently bound parameters as one batch row.
	AddBatch() error
	// ExecuteBatch runs all staged rows and returns per-row result counts.
	ExecuteBatch(ctx context.Context) ([]int64, error)
	Close() error
}

// Rows is a forward-only row cursor.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// ResultHandler converts an open row cursor into a value. It is invoked
// exactly once per query; the runner closes the cursor afterwards, even
// when the handler fails.
type ResultHandler[T any] func(rows Rows) (T, error)

// PropertyAccessor resolves named properties for bean-style parameter
// binding. Source objects that implement it bypass reflection.
type PropertyAccessor interface {
	Property(name string) (any, error)
}
