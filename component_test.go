package rxstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/rxstate"
)

type counterView struct {
	c       *rxstate.Component
	state   *rxstate.State[struct{ N int }]
	inc     *rxstate.Event[int, int]
	renders []int
}

func mountCounter(b *rxstate.Binder) *counterView {
	v := &counterView{
		state: rxstate.NewState(struct{ N int }{}),
		inc:   rxstate.NewEvent[int, int](nil),
	}
	v.c = rxstate.NewComponent(b, v, "OnDestroy")

	v.c.JustSubscribe(
		rxstate.Tap[int](v.inc.Stream(), func(d int) {
			_ = v.state.Update(func(s struct{ N int }) (rxstate.Partial, error) {
				return rxstate.Partial{"N": s.N + d}, nil
			})
		}),
	)
	rxstate.SubscribeScopedFunc[struct{ N int }](v.c, v.state, func(s struct{ N int }) {
		v.renders = append(v.renders, s.N)
	})
	return v
}

func (v *counterView) OnDestroy() bool { return v.c.Destroy() }

func TestComponentLifecycle(t *testing.T) {
	b := rxstate.NewBinder()
	v := mountCounter(b)

	require.NoError(t, v.inc.Handle(1))
	require.NoError(t, v.inc.Handle(2))
	assert.Equal(t, []int{0, 1, 3}, v.renders)

	assert.True(t, v.OnDestroy())
	assert.False(t, v.OnDestroy(), "teardown may be invoked again")
	assert.True(t, v.c.Destroyed())
	assert.Zero(t, b.Pending())

	require.NoError(t, v.inc.Handle(5))
	assert.Equal(t, 3, v.state.Get().N, "pipelines stop after destroy")
	assert.Equal(t, []int{0, 1, 3}, v.renders)
}

func TestComponentDestroyViaBinder(t *testing.T) {
	b := rxstate.NewBinder()
	v := mountCounter(b)

	assert.True(t, b.Destroy(v, "OnDestroy"))
	assert.False(t, v.OnDestroy())

	require.NoError(t, v.inc.Handle(1))
	assert.Equal(t, []int{0}, v.renders)
}

func TestScopedHelpers(t *testing.T) {
	c := rxstate.NewComponent(nil, &host{name: "scoped"}, "OnDestroy")
	ev := rxstate.NewEvent[string, string](nil)

	var viaScoped, viaSubscribe []string
	rxstate.Scoped[string](c, ev.Stream()).SubscribeFunc(func(s string) { viaScoped = append(viaScoped, s) })
	completed := false
	rxstate.SubscribeScoped[string](c, ev.Stream(), rxstate.Observer[string]{
		Next:     func(s string) { viaSubscribe = append(viaSubscribe, s) },
		Complete: func() { completed = true },
	})

	_ = ev.Handle("a")
	c.Destroy()
	_ = ev.Handle("b")

	assert.Equal(t, []string{"a"}, viaScoped)
	assert.Equal(t, []string{"a"}, viaSubscribe)
	assert.True(t, completed)
	assert.True(t, c.Token().Fired())
}
