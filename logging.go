package mindrisk

import (
	"io"

	"github.com/sirupsen/logrus"
)

// An Option customizes the components built by this package.
type Option func(*options)

type options struct {
	logger  logrus.FieldLogger
	lexicon *Lexicon
}

// WithLogger routes component logging to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLexicon replaces the built-in lexicon.
func WithLexicon(lexicon *Lexicon) Option {
	return func(o *options) {
		o.lexicon = lexicon
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logrus.StandardLogger()}
	for _, apply := range opts {
		apply(&o)
	}
	if o.lexicon == nil {
		o.lexicon = DefaultLexicon()
	}
	return o
}

// DiscardLogger returns a logger that drops everything. Useful in tests and
// for embedding callers that log elsewhere.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
