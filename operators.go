package rxstate

// Map returns a stream of fn applied to every value of src.
//
// Panics if src or fn is nil.
func Map[T, R any](src Observable[T], fn func(T) R) *Stream[R] {
	if src == nil {
		panic("rxstate: Map requires non-nil source")
	}
	if fn == nil {
		panic("rxstate: Map requires non-nil function")
	}
	return NewStream(func(o Observer[R]) Subscription {
		return src.Subscribe(Observer[T]{
			Next:     func(v T) { o.next(fn(v)) },
			Complete: o.complete,
		})
	})
}

// Filter returns a stream of the values of src for which keep is true.
//
// Panics if src or keep is nil.
func Filter[T any](src Observable[T], keep func(T) bool) *Stream[T] {
	if src == nil {
		panic("rxstate: Filter requires non-nil source")
	}
	if keep == nil {
		panic("rxstate: Filter requires non-nil predicate")
	}
	return NewStream(func(o Observer[T]) Subscription {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				if keep(v) {
					o.next(v)
				}
			},
			Complete: o.complete,
		})
	})
}

// Tap calls fn for every value of src before passing it on unchanged.
// Pipelines whose only purpose is a side effect, such as updating a
// [State], are built with Tap and driven with [Stream.RunUntil].
//
// Panics if src or fn is nil.
func Tap[T any](src Observable[T], fn func(T)) *Stream[T] {
	if src == nil {
		panic("rxstate: Tap requires non-nil source")
	}
	if fn == nil {
		panic("rxstate: Tap requires non-nil function")
	}
	return NewStream(func(o Observer[T]) Subscription {
		return src.Subscribe(Observer[T]{
			Next: func(v T) {
				fn(v)
				o.next(v)
			},
			Complete: o.complete,
		})
	})
}
