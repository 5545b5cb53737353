package rxstate

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/baxromumarov/rxstate/log"
)

// ScopeToken is a one-shot completion signal bounding the lifetime of
// subscriptions. It fires at most once; every hook registered on it runs
// exactly once, in registration order, on the first [ScopeToken.Fire].
type ScopeToken struct {
	mu      sync.Mutex
	fired   bool
	done    chan struct{}
	hooks   []tokenHook
	nextID  uint64
	trigger string
	onFired func()
}

type tokenHook struct {
	id uint64
	fn func()
}

func newScopeToken(trigger string) *ScopeToken {
	return &ScopeToken{done: make(chan struct{}), trigger: trigger}
}

// NewScopeToken creates a free-standing token, not tied to any host.
func NewScopeToken() *ScopeToken {
	return newScopeToken("")
}

// TokenFromContext returns a token that fires when ctx is done.
func TokenFromContext(ctx context.Context) *ScopeToken {
	t := newScopeToken("context")
	stop := context.AfterFunc(ctx, func() { t.Fire() })
	t.onFire(func() { stop() })
	return t
}

// Fire fires the token. It returns true on the first call and false on
// every later one, which do nothing.
func (t *ScopeToken) Fire() bool {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	hooks := t.hooks
	t.hooks = nil
	onFired := t.onFired
	close(t.done)
	t.mu.Unlock()

	for _, h := range hooks {
		h.fn()
	}
	if onFired != nil {
		onFired()
	}
	return true
}

// Fired reports whether the token has fired.
func (t *ScopeToken) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Trigger returns the trigger name the token was bound to.
func (t *ScopeToken) Trigger() string {
	return t.trigger
}

// Done returns a channel closed when the token fires.
func (t *ScopeToken) Done() <-chan struct{} {
	return t.done
}

// onFire registers fn to run when the token fires and returns a function
// that unregisters it. If the token already fired, fn runs immediately.
func (t *ScopeToken) onFire(fn func()) (remove func()) {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	t.nextID++
	id := t.nextID
	t.hooks = append(t.hooks, tokenHook{id: id, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for i, h := range t.hooks {
			if h.id == id {
				t.hooks = append(t.hooks[:i], t.hooks[i+1:]...)
				return
			}
		}
	}
}

func (t *ScopeToken) hookCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.hooks)
}

type bindingKey struct {
	host    any
	trigger string
}

// Binder ties scope tokens to a host's destroy trigger. A host is any
// comparable value, usually a pointer to a component; the trigger names
// the teardown it announces, such as "OnDestroy".
//
// Every BindDestroy for the same (host, trigger) pair returns the same
// token until the trigger fires, so all bindings sharing the pair are
// released together.
type Binder struct {
	mu      sync.Mutex
	signals map[bindingKey]*ScopeToken
	logger  log.Logger
}

// NewBinder creates an empty Binder.
func NewBinder(opts ...BinderOption) *Binder {
	cfg := binderConfig{logger: log.Noop{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Binder{
		signals: make(map[bindingKey]*ScopeToken),
		logger:  cfg.logger,
	}
}

var defaultBinder = NewBinder()

// DefaultBinder returns the process-wide Binder used by [BindDestroy] and
// [Destroy].
func DefaultBinder() *Binder {
	return defaultBinder
}

// BindDestroy is [Binder.BindDestroy] on the default Binder.
func BindDestroy(host any, trigger string) *ScopeToken {
	return defaultBinder.BindDestroy(host, trigger)
}

// Destroy is [Binder.Destroy] on the default Binder.
func Destroy(host any, trigger string) bool {
	return defaultBinder.Destroy(host, trigger)
}

// BindDestroy returns the token for (host, trigger), creating it if the
// pair has none pending. It panics if host is nil or not comparable.
func (b *Binder) BindDestroy(host any, trigger string) *ScopeToken {
	key := newBindingKey(host, trigger)

	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.signals[key]; ok {
		return t
	}

	t := newScopeToken(trigger)
	t.onFired = func() { b.forget(key, t) }
	b.signals[key] = t
	return t
}

// Destroy fires the trigger of host. It returns true when a pending token
// was fired and false when there was none, which covers teardown invoked
// more than once. A later BindDestroy for the pair starts a new token.
func (b *Binder) Destroy(host any, trigger string) bool {
	key := newBindingKey(host, trigger)

	b.mu.Lock()
	t, ok := b.signals[key]
	b.mu.Unlock()

	if !ok || !t.Fire() {
		b.logger.Debug("destroy trigger ignored",
			log.String("host", fmt.Sprintf("%T", host)),
			log.String("trigger", trigger),
		)
		return false
	}
	b.logger.Debug("destroy trigger fired",
		log.String("host", fmt.Sprintf("%T", host)),
		log.String("trigger", trigger),
	)
	return true
}

// Pending returns the number of (host, trigger) pairs with an unfired
// token.
func (b *Binder) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.signals)
}

func (b *Binder) forget(key bindingKey, t *ScopeToken) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.signals[key] == t {
		delete(b.signals, key)
	}
}

func newBindingKey(host any, trigger string) bindingKey {
	if host == nil {
		panic("rxstate: nil host")
	}
	if !reflect.TypeOf(host).Comparable() {
		panic(fmt.Sprintf("rxstate: host of type %T is not comparable", host))
	}
	return bindingKey{host: host, trigger: trigger}
}
