package midi

import (
	"fmt"

	"github.com/leandrodaf/miditime/internal/logger"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

const (
	// DefaultQueueCapacity is the queue size used when none is configured.
	DefaultQueueCapacity = 256
	// DefaultResolution is the poller tick period in milliseconds.
	DefaultResolution = 1
)

// applyDefaultOptions sets default values for Options if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify Options.
//
// Returns:
//   - contracts.Options: A structure containing the finalized options with defaults applied.
//   - error: An error if the configured log file cannot be used.
func applyDefaultOptions(opts ...contracts.Option) (contracts.Options, error) {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.QueueCapacity == 0 {
		options.QueueCapacity = DefaultQueueCapacity
	}
	if options.Resolution == 0 {
		options.Resolution = DefaultResolution
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		if err := options.Logger.SetDestination(contracts.FileLog, options.LogFilePath); err != nil {
			return contracts.Options{}, fmt.Errorf("failed to set log destination: %w", err)
		}
	}

	options.Logger.Debug("Options applied",
		options.Logger.Field().String("logLevel", options.LogLevel.String()),
		options.Logger.Field().Int("queueCapacity", options.QueueCapacity),
		options.Logger.Field().Int64("resolutionMs", options.Resolution))
	return *options, nil
}
