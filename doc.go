// Package rxstate provides reactive primitives for UI components: an
// observable state container, an adapter from callback-style events to
// push streams, and lifecycle scoping that releases subscriptions when a
// component is torn down.
//
// # State
//
// [NewState] creates a [State] around a struct value. [State.Get] reads
// it; [State.Set], [State.Update] and [State.Patch] shallow-merge a change
// and publish the result. Every observer of [State.Stream] first receives
// the current value, then every later one in order:
//
//	type form struct {
//	    Todos []string
//	    Text  string
//	}
//
//	st := rxstate.NewState(form{})
//	st.Set(rxstate.Partial{"Text": "milk"})
//	st.Update(func(f form) (rxstate.Partial, error) {
//	    return rxstate.Partial{"Todos": append(f.Todos, f.Text), "Text": ""}, nil
//	})
//
// Updates are apply-or-abort. If an update function returns an error or
// panics, nothing changes, nothing is published and the failure comes
// back as an [*OpError]. [State.ReadOnly] hands out a [ReadOnly] view with
// no write methods.
//
// # Events
//
// [NewEvent] turns a handler call into a value on a forward-only stream,
// optionally mapping the raw event first. [NewVoidEvent] is for signals
// without payload. With [WithOnce] the event publishes at most one value
// and completes.
//
// # Lifecycle
//
// A [Binder] associates a [ScopeToken] with a host and the name of its
// destroy trigger. [UntilDestroyed] limits a stream to the token's
// lifetime; [SubscribeAndForget], [JustSubscribe] and [Component] build on
// it. Firing a trigger more than once is harmless.
//
// # Delivery
//
// Streams carry values and completion only; failures are returned to the
// caller that caused them. Each [Subject] delivers through a queue, so its
// observers are never called concurrently and all see one publication
// order, even when an observer publishes re-entrantly.
//
// All types may be used from multiple goroutines without data races.
// Cancellation is immediate on the delivering goroutine: an observer that
// unsubscribes or fires a token sees no further values. A cancellation
// made from another goroutine can race with a delivery already in flight,
// so that one value may still arrive; nothing published after the
// cancellation returns is delivered.
//
// # Channel Bridges
//
// The [github.com/baxromumarov/rxstate/chanx] subpackage converts streams
// to channels and feeds channels into event handlers.
package rxstate
