package rxstate

// Observer receives values and completion from an [Observable]. Either
// callback may be nil.
type Observer[T any] struct {
	Next     func(T)
	Complete func()
}

func (o Observer[T]) next(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o Observer[T]) complete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Subscription is the handle returned by Subscribe. Unsubscribe is
// idempotent and stops further deliveries to the observer.
type Subscription interface {
	Unsubscribe()
	// Closed reports whether the subscription was unsubscribed or its
	// source completed.
	Closed() bool
}

// Observable is anything that can be subscribed to.
type Observable[T any] interface {
	Subscribe(o Observer[T]) Subscription
}

// Runner is a stream that can be driven for its side effects alone.
// Every [*Stream] is a Runner, which lets streams of different element
// types be handed to [JustSubscribe] together.
type Runner interface {
	RunUntil(token *ScopeToken) Subscription
}

// Stream is the read-only face of a push source. Subjects, states and
// events expose their values through a Stream; operators derive new ones.
//
// A derived Stream is cold: each Subscribe subscribes upstream anew, and
// Unsubscribe releases that upstream subscription.
type Stream[T any] struct {
	subscribe func(o Observer[T]) Subscription
}

// NewStream creates a Stream from a subscribe function. fn must return a
// non-nil Subscription.
func NewStream[T any](fn func(o Observer[T]) Subscription) *Stream[T] {
	if fn == nil {
		panic("rxstate: NewStream requires a subscribe function")
	}
	return &Stream[T]{subscribe: fn}
}

// Subscribe registers o and returns its subscription.
func (s *Stream[T]) Subscribe(o Observer[T]) Subscription {
	return s.subscribe(o)
}

// SubscribeFunc subscribes a value callback with no completion handler.
func (s *Stream[T]) SubscribeFunc(fn func(T)) Subscription {
	return s.subscribe(Observer[T]{Next: fn})
}

// RunUntil subscribes with no downstream consumer until token fires or the
// stream completes. It is the same as [SubscribeAndForget].
func (s *Stream[T]) RunUntil(token *ScopeToken) Subscription {
	return UntilDestroyed[T](s, token).Subscribe(Observer[T]{})
}

// closedSubscription is returned for sources that completed before the
// observer arrived.
type closedSubscription struct{}

func (closedSubscription) Unsubscribe() {}
func (closedSubscription) Closed() bool { return true }
