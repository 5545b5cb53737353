package chanx

import (
	"context"
	"sync"
)

// sink wraps a channel with idempotent close. Sends after close are
// dropped instead of panicking, so a late publish racing a teardown is
// harmless.
type sink[T any] struct {
	ch     chan T
	once   sync.Once
	closed chan struct{} // closed first, releases blocked senders

	mu       sync.RWMutex // held shared by senders, exclusively by close
	isClosed bool
}

func newSink[T any](capacity int) *sink[T] {
	return &sink[T]{
		ch:     make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// send delivers v, blocking while the buffer is full. It reports false
// when the sink was closed or ctx was canceled before v was delivered.
func (s *sink[T]) send(ctx context.Context, v T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isClosed {
		return false
	}
	select {
	case s.ch <- v:
		return true
	case <-ctx.Done():
		return false
	case <-s.closed:
		return false
	}
}

// close is safe to call more than once. s.ch is closed only after every
// in-flight send has returned.
func (s *sink[T]) close() {
	s.once.Do(func() {
		close(s.closed)

		s.mu.Lock()
		s.isClosed = true
		close(s.ch)
		s.mu.Unlock()
	})
}
