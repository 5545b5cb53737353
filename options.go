package rxstate

import "github.com/baxromumarov/rxstate/log"

type config struct {
	name   string
	once   bool
	logger log.Logger
}

// Option configures a [State] or an [Event].
type Option func(*config)

func defaultConfig() config {
	return config{logger: log.Noop{}}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithName labels a State or Event. The name appears in [OpError] and in
// log records.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the logger used for debug records. It panics if l is nil.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l == nil {
			panic("rxstate: nil logger")
		}
		c.logger = l
	}
}

// WithOnce makes an [Event] one-shot: the first successfully mapped value
// is published and the stream completes right after it. It has no effect
// on a State.
func WithOnce() Option {
	return func(c *config) {
		c.once = true
	}
}

type binderConfig struct {
	logger log.Logger
}

// BinderOption configures a [Binder].
type BinderOption func(*binderConfig)

// WithBinderLogger sets the logger a Binder reports destroy signals to.
// It panics if l is nil.
func WithBinderLogger(l log.Logger) BinderOption {
	return func(c *binderConfig) {
		if l == nil {
			panic("rxstate: nil logger")
		}
		c.logger = l
	}
}
