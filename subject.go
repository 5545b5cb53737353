package rxstate

import (
	"sync"
	"sync/atomic"
)

// Subject is a multicast push source. Every value passed to Next is
// delivered to each observer registered at that moment.
//
// A Subject either replays or it does not, fixed at construction:
//   - [NewSubject] is forward-only; observers only see values published
//     after they subscribed.
//   - [NewReplaySubject] keeps the latest value and delivers it to each new
//     observer before anything published later.
//
// Deliveries go through a queue drained by one goroutine at a time, so the
// observers of a Subject are never called concurrently and all of them see
// the same publication order, including values published re-entrantly from
// inside an observer. Unsubscribing from inside an observer takes effect at
// once. Unsubscribing from another goroutine may still let one delivery
// that is already under way reach the observer.
type Subject[T any] struct {
	mu        sync.Mutex
	replay    bool
	latest    T
	subs      []*subjectObserver[T]
	completed bool

	queue    []delivery[T]
	draining bool
}

type subjectObserver[T any] struct {
	obs    Observer[T]
	active atomic.Bool
}

type delivery[T any] struct {
	value    T
	complete bool
	targets  []*subjectObserver[T]
}

// NewSubject creates a forward-only Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// NewReplaySubject creates a Subject that replays its latest value,
// starting with initial.
func NewReplaySubject[T any](initial T) *Subject[T] {
	return &Subject[T]{replay: true, latest: initial}
}

// Replays reports whether new observers receive the latest value.
func (s *Subject[T]) Replays() bool {
	return s.replay
}

// Value returns the latest published value. For a forward-only Subject it
// is the last value passed to Next, or the zero value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Completed reports whether Complete has been called.
func (s *Subject[T]) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Next publishes v. It returns false, publishing nothing, once the Subject
// has completed.
func (s *Subject[T]) Next(v T) bool {
	s.mu.Lock()
	ok := s.enqueueLocked(v)
	s.mu.Unlock()
	if ok {
		s.drain()
	}
	return ok
}

// Complete signals completion to every observer and drops them. Later
// observers are completed immediately. Complete is idempotent.
func (s *Subject[T]) Complete() {
	s.mu.Lock()
	s.completeLocked()
	s.mu.Unlock()
	s.drain()
}

// Subscribe registers o. A replaying Subject delivers its latest value to o
// first. Subscribing to a completed Subject completes o with no values.
//
// Called from inside an observer of the same Subject, Subscribe returns
// before o sees anything: the replayed value is queued behind the delivery
// in progress and reaches o once the running observer returns, still ahead
// of every value published later.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	so := &subjectObserver[T]{obs: o}
	so.active.Store(true)

	s.mu.Lock()
	if s.completed {
		s.queue = append(s.queue, delivery[T]{complete: true, targets: []*subjectObserver[T]{so}})
		s.mu.Unlock()
		s.drain()
		return closedSubscription{}
	}
	s.subs = append(s.subs, so)
	if s.replay {
		s.queue = append(s.queue, delivery[T]{value: s.latest, targets: []*subjectObserver[T]{so}})
	}
	s.mu.Unlock()

	s.drain()
	return &subjectSubscription[T]{s: s, so: so}
}

// Stream returns the read-only view of the Subject.
func (s *Subject[T]) Stream() *Stream[T] {
	return &Stream[T]{subscribe: s.Subscribe}
}

func (s *Subject[T]) enqueueLocked(v T) bool {
	if s.completed {
		return false
	}
	s.latest = v
	if len(s.subs) > 0 {
		targets := make([]*subjectObserver[T], len(s.subs))
		copy(targets, s.subs)
		s.queue = append(s.queue, delivery[T]{value: v, targets: targets})
	}
	return true
}

func (s *Subject[T]) completeLocked() bool {
	if s.completed {
		return false
	}
	s.completed = true
	if len(s.subs) > 0 {
		s.queue = append(s.queue, delivery[T]{complete: true, targets: s.subs})
	}
	s.subs = nil
	return true
}

// drain delivers queued items until the queue is empty. If another call is
// already draining it returns at once; that call picks up the new items.
func (s *Subject[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for len(s.queue) > 0 {
		d := s.queue[0]
		s.queue[0] = delivery[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		deliver(d)

		s.mu.Lock()
	}
	s.queue = nil
	s.draining = false
	s.mu.Unlock()
}

func deliver[T any](d delivery[T]) {
	for _, so := range d.targets {
		if d.complete {
			if so.active.Swap(false) {
				so.obs.complete()
			}
			continue
		}
		if so.active.Load() {
			so.obs.next(d.value)
		}
	}
}

func (s *Subject[T]) remove(so *subjectObserver[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.subs {
		if cur == so {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

type subjectSubscription[T any] struct {
	s  *Subject[T]
	so *subjectObserver[T]
}

func (sub *subjectSubscription[T]) Unsubscribe() {
	if sub.so.active.Swap(false) {
		sub.s.remove(sub.so)
	}
}

func (sub *subjectSubscription[T]) Closed() bool {
	return !sub.so.active.Load()
}
