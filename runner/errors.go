package runner

import "errors"

var (
	// ErrInvalidSQL is returned when the SQL text is empty.
	ErrInvalidSQL = errors.New("sql statement is empty")

	// ErrConnectionUnavailable is returned when no usable connection can be
	// obtained, either because the factory yielded none or because a
	// caller-supplied connection was absent where required.
	ErrConnectionUnavailable = errors.New("no database connection available")

	// ErrParameterCountMismatch is returned when the number of supplied
	// values differs from the statement's declared placeholder count.
	ErrParameterCountMismatch = errors.New("wrong number of parameters")

	// ErrInvalidBatchArguments is returned when the batch parameter rows are
	// nil or empty.
	ErrInvalidBatchArguments = errors.New("batch parameter rows are missing")

	// ErrBinderConfig is returned when a named property cannot be resolved
	// on the bean-style source object.
	ErrBinderConfig = errors.New("bean property cannot be resolved")

	// ErrNoResultHandler is returned when a query is submitted without a
	// result handler.
	ErrNoResultHandler = errors.New("result handler is required")
)
