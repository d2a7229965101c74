// Package pool implements the fixed-size worker pool shared by all
// asynchronously submitted operations.
package pool

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool runs submitted jobs with a fixed concurrency limit. Submit never
// blocks the caller; jobs beyond the limit wait for a worker slot.
type Pool struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// New creates a pool that runs at most size jobs concurrently. Sizes below
// one are clamped to one.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Size returns the concurrency limit.
func (p *Pool) Size() int {
	return cap(p.sem)
}

// Submit schedules job for execution and returns immediately.
func (p *Pool) Submit(job func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.sem <- struct{}{}
		defer func() { <-p.sem }()
		job()
	}()
	return nil
}

// Close stops accepting new work and waits for already submitted jobs to
// finish.
func (p *Pool) Close() error {
	p.closed.Store(true)
	p.wg.Wait()
	return nil
}
