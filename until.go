package rxstate

import "sync"

type scopeState int

const (
	scopeActive scopeState = iota
	scopeCancelled
	scopeCompleted
)

func (s scopeState) String() string {
	switch s {
	case scopeActive:
		return "active"
	case scopeCancelled:
		return "cancelled"
	case scopeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// UntilDestroyed derives a stream that forwards src until token fires.
// When the token fires, the derived subscription stops forwarding,
// releases its upstream subscription exactly once and completes its
// observer. If src completes first, the completion is forwarded and the
// token hook is dropped. Subscribing after the token fired completes the
// observer at once with no values. A token fired from another goroutine
// may race with a value already being delivered.
func UntilDestroyed[T any](src Observable[T], token *ScopeToken) *Stream[T] {
	if src == nil || token == nil {
		panic("rxstate: UntilDestroyed requires a source and a token")
	}
	return NewStream(func(o Observer[T]) Subscription {
		ss := &scopedSubscription[T]{downstream: o}
		remove := token.onFire(ss.cancel)
		ss.mu.Lock()
		if ss.state != scopeActive {
			// The token had already fired; cancel completed o.
			ss.mu.Unlock()
			return ss
		}
		ss.removeHook = remove
		ss.mu.Unlock()
		up := src.Subscribe(Observer[T]{Next: ss.next, Complete: ss.complete})
		ss.attach(up)
		return ss
	})
}

// SubscribeAndForget runs src for its side effects until token fires or
// src completes.
func SubscribeAndForget[T any](src Observable[T], token *ScopeToken) Subscription {
	return UntilDestroyed(src, token).Subscribe(Observer[T]{})
}

// JustSubscribe runs every stream until token fires.
func JustSubscribe(token *ScopeToken, streams ...Runner) {
	for _, s := range streams {
		s.RunUntil(token)
	}
}

// scopedSubscription is one subscription bound to a ScopeToken. It moves
// from active to cancelled (token fired or Unsubscribe) or to completed
// (upstream completed); both are terminal.
type scopedSubscription[T any] struct {
	mu         sync.Mutex
	state      scopeState
	upstream   Subscription
	removeHook func()
	downstream Observer[T]
}

// State returns the current state of the binding.
func (s *scopedSubscription[T]) State() scopeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// release moves out of the active state. Only the first caller gets ok;
// it also takes ownership of the upstream subscription and the hook.
func (s *scopedSubscription[T]) release(to scopeState) (up Subscription, remove func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != scopeActive {
		return nil, nil, false
	}
	s.state = to
	up, remove = s.upstream, s.removeHook
	s.upstream, s.removeHook = nil, nil
	return up, remove, true
}

// attach stores the upstream subscription, or releases it right away if
// the binding ended while src.Subscribe was still running.
func (s *scopedSubscription[T]) attach(up Subscription) {
	s.mu.Lock()
	if s.state == scopeActive {
		s.upstream = up
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	up.Unsubscribe()
}

func (s *scopedSubscription[T]) next(v T) {
	if s.State() == scopeActive {
		s.downstream.next(v)
	}
}

func (s *scopedSubscription[T]) complete() {
	_, remove, ok := s.release(scopeCompleted)
	if !ok {
		return
	}
	if remove != nil {
		remove()
	}
	s.downstream.complete()
}

func (s *scopedSubscription[T]) cancel() {
	up, _, ok := s.release(scopeCancelled)
	if !ok {
		return
	}
	if up != nil {
		up.Unsubscribe()
	}
	s.downstream.complete()
}

// Unsubscribe cancels the binding without completing the observer.
func (s *scopedSubscription[T]) Unsubscribe() {
	up, remove, ok := s.release(scopeCancelled)
	if !ok {
		return
	}
	if up != nil {
		up.Unsubscribe()
	}
	if remove != nil {
		remove()
	}
}

func (s *scopedSubscription[T]) Closed() bool {
	return s.State() != scopeActive
}
