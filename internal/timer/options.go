package timer

import (
	"github.com/leandrodaf/miditime/internal/clock"
	"github.com/leandrodaf/miditime/internal/logger"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

type config struct {
	clock  clock.Clock
	logger contracts.Logger
}

// Option configures a Timer or Scheduler.
type Option func(*config)

// WithClock replaces the monotonic clock used for elapsed time.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithLogger sets the logger used for lifecycle and failure messages.
func WithLogger(l contracts.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = clock.Monotonic()
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNopLogger()
	}
	return cfg
}
