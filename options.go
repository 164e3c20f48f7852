package slotecs

import "github.com/rs/zerolog"

type options struct {
	initialCapacity int
	logger          zerolog.Logger
}

// Option configures a Universe.
type Option func(*options)

func defaultOptions() options {
	return options{
		initialCapacity: DefaultPoolSize,
		logger:          zerolog.Nop(),
	}
}

// WithInitialCapacity sets the starting ceiling of the universe's slot pool
// and pre-sizes the entity table to match.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.initialCapacity = n
		}
	}
}

// WithLogger makes the universe log type registrations and pool growth at
// debug level and entity admission and removal at trace level.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
