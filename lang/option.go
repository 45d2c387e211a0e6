package lang

import (
	"maps"

	"github.com/ardnew/smartscript/log"
)

// Option configures lexing, parsing or execution.
type Option func(*config)

type config struct {
	logger log.Logger
	funcs  map[string]Func
}

func makeConfig(opts ...Option) config {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithFunc registers fn under name (without the "@" prefix), replacing any
// builtin of the same name. It only affects execution.
func WithFunc(name string, fn Func) Option {
	return func(c *config) {
		if c.funcs == nil {
			c.funcs = make(map[string]Func)
		}

		c.funcs[name] = fn
	}
}

// WithFuncs registers every function in funcs. See [WithFunc].
func WithFuncs(funcs map[string]Func) Option {
	return func(c *config) {
		if c.funcs == nil {
			c.funcs = make(map[string]Func, len(funcs))
		}

		maps.Copy(c.funcs, funcs)
	}
}
