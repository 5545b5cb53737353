package chanx

import (
	"context"

	"github.com/baxromumarov/rxstate"
)

// ToChan subscribes to src and forwards every value into the returned
// channel, which has capacity buf. The channel is closed when src
// completes or ctx is canceled; cancellation also releases the
// subscription to src.
//
// Values are sent on the publisher's goroutine, so a full buffer blocks
// the publisher until the reader catches up or ctx is canceled. Readers
// must not publish to src from the goroutine that drains the channel
// while the buffer can fill up.
//
// ToChan panics if src is nil or buf is negative.
func ToChan[T any](ctx context.Context, src rxstate.Observable[T], buf int) <-chan T {
	if src == nil {
		panic("chanx: ToChan requires a non-nil source")
	}
	if buf < 0 {
		panic("chanx: ToChan requires buf >= 0")
	}

	ch, _ := toChan(ctx, src, buf)
	return ch
}

// toChan is ToChan without argument checks. It also returns the token
// bounding the subscription; the token fires on cancellation and on
// completion of src, which unregisters it from ctx.
func toChan[T any](ctx context.Context, src rxstate.Observable[T], buf int) (<-chan T, *rxstate.ScopeToken) {
	out := newSink[T](buf)
	token := rxstate.TokenFromContext(ctx)
	rxstate.UntilDestroyed[T](src, token).Subscribe(rxstate.Observer[T]{
		Next: func(v T) { out.send(ctx, v) },
		Complete: func() {
			out.close()
			token.Fire()
		},
	})
	return out.ch, token
}
