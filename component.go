package rxstate

// Component bundles the scoped-subscription helpers for one host. It is
// created once per host at setup time and shares the host's destroy
// token, so every subscription made through it ends when the host's
// trigger fires.
//
//	type todoView struct{ c *rxstate.Component }
//
//	func (v *todoView) Mount(b *rxstate.Binder) {
//	    v.c = rxstate.NewComponent(b, v, "OnDestroy")
//	    v.c.JustSubscribe(pipelines...)
//	}
//
//	func (v *todoView) OnDestroy() { v.c.Destroy() }
type Component struct {
	token *ScopeToken
}

// NewComponent binds a Component to host's destroy trigger on b. A nil
// Binder means the default Binder.
func NewComponent(b *Binder, host any, trigger string) *Component {
	if b == nil {
		b = defaultBinder
	}
	return &Component{token: b.BindDestroy(host, trigger)}
}

// Token returns the destroy token shared by the Component's subscriptions.
func (c *Component) Token() *ScopeToken {
	return c.token
}

// JustSubscribe runs every stream for its side effects until the host is
// destroyed.
func (c *Component) JustSubscribe(streams ...Runner) {
	JustSubscribe(c.token, streams...)
}

// Destroy fires the host's destroy token. It has the same effect as
// [Binder.Destroy] for the host and trigger; calling it again is a no-op
// and returns false.
func (c *Component) Destroy() bool {
	return c.token.Fire()
}

// Destroyed reports whether the host's trigger has fired.
func (c *Component) Destroyed() bool {
	return c.token.Fired()
}

// Scoped returns src limited to the lifetime of c's host.
func Scoped[T any](c *Component, src Observable[T]) *Stream[T] {
	return UntilDestroyed(src, c.token)
}

// SubscribeScoped subscribes o to src for the lifetime of c's host.
func SubscribeScoped[T any](c *Component, src Observable[T], o Observer[T]) Subscription {
	return UntilDestroyed(src, c.token).Subscribe(o)
}

// SubscribeScopedFunc is SubscribeScoped with a value callback.
func SubscribeScopedFunc[T any](c *Component, src Observable[T], fn func(T)) Subscription {
	return SubscribeScoped(c, src, Observer[T]{Next: fn})
}
