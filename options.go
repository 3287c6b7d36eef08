package resc

import "go.uber.org/zap"

// compileConfig holds configuration for a compile run.
type compileConfig struct {
	pseudolocalize bool
	legacy         bool
	verbose        bool
	workers        int
	logger         *zap.Logger
}

// Option configures a compile run.
type Option func(*compileConfig)

// WithPseudolocalize generates pseudo-locale variants (en-XA and ar-XB)
// from default-configuration strings and plurals.
func WithPseudolocalize(enabled bool) Option {
	return func(c *compileConfig) {
		c.pseudolocalize = enabled
	}
}

// WithLegacyMode downgrades positional-argument errors in value files to
// warnings.
func WithLegacyMode(enabled bool) Option {
	return func(c *compileConfig) {
		c.legacy = enabled
	}
}

// WithVerbose enables per-input progress notes on the logger.
func WithVerbose(enabled bool) Option {
	return func(c *compileConfig) {
		c.verbose = enabled
	}
}

// WithWorkers sets the number of inputs compiled concurrently. Values < 2
// keep the batch sequential. Archive writes are serialized regardless.
func WithWorkers(n int) Option {
	return func(c *compileConfig) {
		c.workers = n
	}
}

// WithLogger sets the diagnostics logger. Diagnostics are observational
// only; they never affect compilation results. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *compileConfig) {
		c.logger = logger
	}
}

func newCompileConfig(opts []Option) compileConfig {
	cfg := compileConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}
