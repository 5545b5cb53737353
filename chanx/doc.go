// Package chanx bridges rxstate streams and Go channels.
//
// The reactive core delivers values synchronously on the publisher's
// goroutine. Programs that produce input on other goroutines (readers,
// file watchers, timers) or that want to consume a stream with a select
// loop use the two bridges in this package:
//
//   - [ToChan]: subscribes to a stream and forwards its values into a
//     channel that is closed on completion or context cancellation.
//   - [Pump]: drains a channel on the calling goroutine into a handler,
//     typically an [rxstate.Event] handler, so goroutine-produced input
//     reaches the core one value at a time.
//
// [Send] and [Recv] are the context-aware send and receive the bridges
// are built on; producers use Send to hand values to a [Pump] loop.
package chanx
