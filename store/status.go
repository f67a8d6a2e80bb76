// Package store holds the client-side caches for each backend resource and
// the rules that keep them consistent after mutations. Each store owns its
// cache exclusively; no two stores write the same data.
package store

import "sync"

// Status is the request lifecycle state of a store's most recent operation.
type Status int

const (
	// StatusIdle means no operation has run yet.
	StatusIdle Status = iota
	// StatusPending means an operation is in flight.
	StatusPending
	// StatusSucceeded means the last operation completed.
	StatusSucceeded
	// StatusFailed means the last operation failed; Err() has the cause.
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// lifecycle is the mutation state machine embedded in every store:
// idle -> pending -> (succeeded | failed), then back to pending on the next
// operation. The mutex also guards the embedding store's cache.
type lifecycle struct {
	mu     sync.Mutex
	status Status
	err    error
}

// begin marks an operation in flight and clears the previous error.
func (l *lifecycle) begin() {
	l.mu.Lock()
	l.status = StatusPending
	l.err = nil
	l.mu.Unlock()
}

// fail records the error and returns it so callers can propagate in one line.
func (l *lifecycle) fail(err error) error {
	l.mu.Lock()
	l.status = StatusFailed
	l.err = err
	l.mu.Unlock()
	return err
}

// finish marks the last operation succeeded.
func (l *lifecycle) finish() {
	l.mu.Lock()
	l.status = StatusSucceeded
	l.mu.Unlock()
}

// Status returns the lifecycle state of the most recent operation.
func (l *lifecycle) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Err returns the error recorded by the most recent failed operation.
func (l *lifecycle) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
