package rxstate

import (
	"fmt"
	"sync"

	"github.com/baxromumarov/rxstate/log"
)

// Void is the value published by signal events whose payload does not
// matter.
type Void = struct{}

// Event adapts callback-style input into a forward-only stream. Raw
// events of type U are passed to [Event.Handle], mapped to T and
// published to the observers subscribed at that moment.
//
// A one-shot Event (see [WithOnce]) publishes at most one value and then
// completes; later calls to Handle do nothing and later observers are
// completed immediately.
type Event[U, T any] struct {
	mu        sync.Mutex
	subject   *Subject[T]
	mapper    func(U) (T, error)
	once      bool
	completed bool
	cfg       config
}

// NewEvent creates an Event. A nil mapper passes raw events through
// unchanged; a raw event that is not a T is then rejected with
// [ErrEventType].
func NewEvent[U, T any](mapper func(U) (T, error), opts ...Option) *Event[U, T] {
	if mapper == nil {
		mapper = identity[U, T]
	}
	cfg := newConfig(opts)
	return &Event[U, T]{
		subject: NewSubject[T](),
		mapper:  mapper,
		once:    cfg.once,
		cfg:     cfg,
	}
}

// NewVoidEvent creates an Event that ignores its raw event and publishes
// [Void]. It is meant for pure signals such as a submit action.
func NewVoidEvent[U any](opts ...Option) *Event[U, Void] {
	return NewEvent(func(U) (Void, error) { return Void{}, nil }, opts...)
}

func identity[U, T any](ev U) (T, error) {
	v, ok := any(ev).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: got %T, want %T", ErrEventType, ev, zero)
	}
	return v, nil
}

// Handle maps ev and publishes the result. A mapper error or panic is
// returned and nothing is published; the Event stays usable. After a
// one-shot Event has fired, Handle is a no-op returning nil.
func (e *Event[U, T]) Handle(ev U) error {
	if e.Completed() {
		return nil
	}

	v, err := call(e.mapper, ev)
	if err != nil {
		e.cfg.logger.Debug("event mapper failed",
			log.String("event", e.cfg.name),
			log.Err(err),
		)
		return &OpError{Op: "handle", Name: e.cfg.name, Err: err}
	}

	e.mu.Lock()
	// Another call may have fired a one-shot event while the mapper ran.
	if e.completed {
		e.mu.Unlock()
		return nil
	}
	e.subject.mu.Lock()
	e.subject.enqueueLocked(v)
	if e.once {
		e.completed = true
		e.subject.completeLocked()
	}
	e.subject.mu.Unlock()
	e.mu.Unlock()

	if e.once {
		e.cfg.logger.Debug("one-shot event completed", log.String("event", e.cfg.name))
	}
	e.subject.drain()
	return nil
}

// Handler returns Handle as a plain function, for wiring into callback
// APIs.
func (e *Event[U, T]) Handler() func(U) error {
	return e.Handle
}

// Stream returns the Event's forward-only stream.
func (e *Event[U, T]) Stream() *Stream[T] {
	return e.subject.Stream()
}

// Completed reports whether a one-shot Event has fired.
func (e *Event[U, T]) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}
