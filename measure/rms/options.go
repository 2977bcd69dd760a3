package rms

import "github.com/cwbudde/algo-rms/dsp/core"

// EngineConfig describes the stream shape an Engine is prepared for at
// construction time.
type EngineConfig struct {
	core.ProcessorConfig
	Channels int
}

// EngineOption mutates an EngineConfig.
type EngineOption func(*EngineConfig)

// DefaultEngineConfig returns the processor defaults with no channels,
// which leaves a new Engine empty until its first Update.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ProcessorConfig: core.DefaultProcessorConfig(),
	}
}

// WithSampleRate sets the sample rate used to resolve timed windows.
func WithSampleRate(sampleRate float64) EngineOption {
	return func(cfg *EngineConfig) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithBlockSize sets the expected number of frames per buffer.
func WithBlockSize(frames int) EngineOption {
	return func(cfg *EngineConfig) {
		core.WithBlockSize(frames)(&cfg.ProcessorConfig)
	}
}

// WithChannels sets the expected number of channels.
func WithChannels(channels int) EngineOption {
	return func(cfg *EngineConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyEngineOptions applies zero or more options to the default config.
func ApplyEngineOptions(opts ...EngineOption) EngineConfig {
	cfg := DefaultEngineConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
