package rxstate

import (
	"sync"

	"github.com/baxromumarov/rxstate/log"
)

// ReadOnly is the read capability of a [State]: it can be read and
// observed but never updated. A ReadOnly returned by [State.ReadOnly] is
// live; updates made through the State are visible through it.
type ReadOnly[T any] interface {
	Get() T
	Subscribe(o Observer[T]) Subscription
	Stream() *Stream[T]
}

// State is a mutable, observable record. Its stream replays the current
// value to every new observer and then delivers every later value in
// order.
//
// Updates are apply-or-abort: the merged value is committed and published
// in one step, and a failing update leaves the State exactly as it was.
// Readers never see a partially merged record.
//
// Update functions run while the State's writer lock is held; they may
// call Get but must not update the same State.
type State[T any] struct {
	writeMu sync.Mutex
	subject *Subject[T]
	cfg     config
}

var _ ReadOnly[struct{}] = (*State[struct{}])(nil)

// NewState creates a State holding initial. T must be a struct type;
// NewState panics otherwise.
func NewState[T any](initial T, opts ...Option) *State[T] {
	mustBeRecord[T]()
	return &State[T]{
		subject: NewReplaySubject(initial),
		cfg:     newConfig(opts),
	}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	return s.subject.Value()
}

// Set shallow-merges p into the current value and publishes the result.
// An unknown field or a value of the wrong type aborts the update.
func (s *State[T]) Set(p Partial) error {
	return s.apply(func(cur T) (T, error) {
		return merge(cur, p)
	})
}

// Update calls fn with the current value and shallow-merges the Partial it
// returns. If fn returns an error or panics, nothing is merged or
// published and the error is returned.
func (s *State[T]) Update(fn func(T) (Partial, error)) error {
	if fn == nil {
		panic("rxstate: Update requires a function")
	}
	return s.apply(func(cur T) (T, error) {
		p, err := call(fn, cur)
		if err != nil {
			return cur, err
		}
		return merge(cur, p)
	})
}

// Patch calls fn with a pointer to a shallow copy of the current value.
// The copy is committed and published when fn returns nil; otherwise it
// is discarded.
func (s *State[T]) Patch(fn func(*T) error) error {
	if fn == nil {
		panic("rxstate: Patch requires a function")
	}
	return s.apply(func(cur T) (T, error) {
		next := cur
		if _, err := call(func(p *T) (struct{}, error) { return struct{}{}, fn(p) }, &next); err != nil {
			return cur, err
		}
		return next, nil
	})
}

// Subscribe delivers the current value to o, then every later value. When
// called from inside one of the State's observers, the current value
// reaches o after that observer returns; see [Subject.Subscribe].
func (s *State[T]) Subscribe(o Observer[T]) Subscription {
	return s.subject.Subscribe(o)
}

// Stream returns the State's replaying stream.
func (s *State[T]) Stream() *Stream[T] {
	return s.subject.Stream()
}

// ReadOnly returns a live read-only view of the State.
func (s *State[T]) ReadOnly() ReadOnly[T] {
	return readOnly[T]{s: s}
}

func (s *State[T]) apply(fn func(T) (T, error)) error {
	s.writeMu.Lock()
	next, err := fn(s.subject.Value())
	if err != nil {
		s.writeMu.Unlock()
		s.cfg.logger.Debug("state update aborted",
			log.String("state", s.cfg.name),
			log.Err(err),
		)
		return &OpError{Op: "update", Name: s.cfg.name, Err: err}
	}

	s.subject.mu.Lock()
	s.subject.enqueueLocked(next)
	s.subject.mu.Unlock()
	s.writeMu.Unlock()

	s.subject.drain()
	return nil
}

// readOnly hides the write methods of State behind the ReadOnly
// interface. It holds the State itself, never a copy.
type readOnly[T any] struct {
	s *State[T]
}

func (r readOnly[T]) Get() T                               { return r.s.Get() }
func (r readOnly[T]) Subscribe(o Observer[T]) Subscription { return r.s.Subscribe(o) }
func (r readOnly[T]) Stream() *Stream[T]                   { return r.s.Stream() }
