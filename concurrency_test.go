package rxstate_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/rxstate"
)

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	type counter struct {
		N    int
		Last int
	}
	st := rxstate.NewState(counter{})

	var mu sync.Mutex
	var seen []int
	var inFlight atomic.Int32
	var overlapped atomic.Bool
	st.Stream().SubscribeFunc(func(c counter) {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		mu.Lock()
		seen = append(seen, c.N)
		mu.Unlock()
		inFlight.Add(-1)
	})

	const writers, perWriter = 8, 50
	wg := conc.NewWaitGroup()
	for w := 0; w < writers; w++ {
		w := w
		wg.Go(func() {
			for i := 0; i < perWriter; i++ {
				assert.NoError(t, st.Update(func(c counter) (rxstate.Partial, error) {
					return rxstate.Partial{"N": c.N + 1, "Last": w}, nil
				}))
			}
		})
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, st.Get().N, "no update may be lost")
	assert.False(t, overlapped.Load(), "observers of one state never run concurrently")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, writers*perWriter+1)
	for i, n := range seen {
		assert.Equal(t, i, n, "values are delivered in publication order")
	}
}

func TestConcurrentOnceHandle(t *testing.T) {
	ev := rxstate.NewEvent[int, int](nil, rxstate.WithOnce())

	var mu sync.Mutex
	var got []int
	ev.Stream().SubscribeFunc(func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	wg := conc.NewWaitGroup()
	for i := 0; i < 32; i++ {
		i := i
		wg.Go(func() { _ = ev.Handle(i) })
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
	assert.True(t, ev.Completed())
}

func TestConcurrentDestroy(t *testing.T) {
	b := rxstate.NewBinder()
	h := &host{}
	src := newCountingSource[int]()
	rxstate.SubscribeAndForget[int](src, b.BindDestroy(h, "OnDestroy"))

	var fired sync.Map
	wg := conc.NewWaitGroup()
	for i := 0; i < 16; i++ {
		i := i
		wg.Go(func() {
			if b.Destroy(h, "OnDestroy") {
				fired.Store(i, true)
			}
		})
	}
	wg.Wait()

	count := 0
	fired.Range(func(_, _ any) bool { count++; return true })
	assert.Equal(t, 1, count)
	assert.Equal(t, int32(1), src.unsubscribed.Load())
}
