// Package async wraps the synchronous runner in futures executed on a
// fixed-size worker pool. Submission returns immediately and never fails:
// every outcome, including validation failures and a closed pool, reaches
// the caller through the returned handle.
package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rewerma/commons-dbutils/future"
	"github.com/rewerma/commons-dbutils/metrics"
	"github.com/rewerma/commons-dbutils/parser"
	"github.com/rewerma/commons-dbutils/pool"
	"github.com/rewerma/commons-dbutils/runner"
)

// Runner submits database operations to a worker pool and exposes their
// eventual outcomes as futures.
type Runner struct {
	runner  *runner.Runner
	workers *pool.Pool
}

// New creates an asynchronous runner on top of sync, dispatching to workers.
func New(sync *runner.Runner, workers *pool.Pool) *Runner {
	return &Runner{runner: sync, workers: workers}
}

// Query submits a row-set query; the connection is acquired internally and
// released when the operation finishes.
func Query[T any](ctx context.Context, r *Runner, query string, handler runner.ResultHandler[T], params ...any) *future.Result[T] {
	return submit(r, "query", query, func() (T, error) {
		return runner.Query(ctx, r.runner, query, handler, params...)
	})
}

// QueryConn submits a row-set query against a caller-supplied connection,
// which is never closed by the runner. Serializing concurrent use of that
// connection is the caller's responsibility.
func QueryConn[T any](ctx context.Context, r *Runner, conn runner.Connection, query string, handler runner.ResultHandler[T], params ...any) *future.Result[T] {
	return submit(r, "query", query, func() (T, error) {
		return runner.QueryConn(ctx, r.runner, conn, query, handler, params...)
	})
}

// Update submits an update; the handle settles with the affected-row count.
func (r *Runner) Update(ctx context.Context, query string, params ...any) *future.Result[int64] {
	return submit(r, "update", query, func() (int64, error) {
		return r.runner.Update(ctx, query, params...)
	})
}

// UpdateConn submits an update against a caller-supplied connection.
func (r *Runner) UpdateConn(ctx context.Context, conn runner.Connection, query string, params ...any) *future.Result[int64] {
	return submit(r, "update", query, func() (int64, error) {
		return r.runner.UpdateConn(ctx, conn, query, params...)
	})
}

// Batch submits a batch; the handle settles with the per-row result counts.
func (r *Runner) Batch(ctx context.Context, query string, rows [][]any) *future.Result[[]int64] {
	metrics.BatchRows.WithLabelValues(parser.TypeLabel(query)).Observe(float64(len(rows)))
	return submit(r, "batch", query, func() ([]int64, error) {
		return r.runner.Batch(ctx, query, rows)
	})
}

// BatchConn submits a batch against a caller-supplied connection.
func (r *Runner) BatchConn(ctx context.Context, conn runner.Connection, query string, rows [][]any) *future.Result[[]int64] {
	metrics.BatchRows.WithLabelValues(parser.TypeLabel(query)).Observe(float64(len(rows)))
	return submit(r, "batch", query, func() ([]int64, error) {
		return r.runner.BatchConn(ctx, conn, query, rows)
	})
}

// submit schedules op on the pool and returns the handle that its outcome
// settles. A pool rejection settles the handle immediately.
func submit[T any](r *Runner, kind, query string, op func() (T, error)) *future.Result[T] {
	res, complete := future.New[T]()
	queryType := parser.TypeLabel(query)
	start := time.Now()

	err := r.workers.Submit(func() {
		v, err := runSafely(op)
		status := "completed"
		if err != nil {
			status = "failed"
		}
		metrics.OperationsTotal.WithLabelValues(kind, status).Inc()
		metrics.OperationLatency.WithLabelValues(kind, queryType).Observe(time.Since(start).Seconds())
		complete(v, err)
	})
	if err != nil {
		metrics.OperationsTotal.WithLabelValues(kind, "rejected").Inc()
		var zero T
		complete(zero, err)
	}
	return res
}

// runSafely converts a panicking unit of work into a failed outcome so a
// worker goroutine never crashes the process.
func runSafely[T any](op func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
		}
	}()
	return op()
}
