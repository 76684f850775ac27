package ember

import "go.uber.org/zap"

// Config describes how a connection is established and instrumented. It is
// built once through ConfigBuilder, consumed at establish time, and never
// mutated afterwards.
type Config struct {
	password      string
	hasPassword   bool
	logQuery      bool
	explainQuery  bool
	logger        *zap.Logger
	onNativeError func(code int)
}

// DefaultConfig returns a config with no password, instrumentation off,
// and a no-op logger.
func DefaultConfig() Config {
	return Config{logger: zap.NewNop()}
}

// Password returns the at-rest encryption key, if one was set.
func (c Config) Password() (string, bool) {
	return c.password, c.hasPassword
}

// LogQuery reports whether per-query timing logs are enabled.
func (c Config) LogQuery() bool { return c.logQuery }

// ExplainQuery reports whether per-query plan logging is enabled.
func (c Config) ExplainQuery() bool { return c.explainQuery }

// Logger returns the logger instrumentation writes to. Never nil.
func (c Config) Logger() *zap.Logger { return c.logger }

// OnNativeError returns the callback invoked with native result codes when
// a native-layer failure is converted, or nil if none was set.
func (c Config) OnNativeError() func(code int) { return c.onNativeError }

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder starts from DefaultConfig.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: DefaultConfig()}
}

// Password sets the at-rest encryption key.
func (b *ConfigBuilder) Password(password string) *ConfigBuilder {
	b.config.password = password
	b.config.hasPassword = true
	return b
}

// LogQuery enables or disables per-query timing logs.
func (b *ConfigBuilder) LogQuery(enabled bool) *ConfigBuilder {
	b.config.logQuery = enabled
	return b
}

// ExplainQuery enables or disables per-query plan logging.
func (b *ConfigBuilder) ExplainQuery(enabled bool) *ConfigBuilder {
	b.config.explainQuery = enabled
	return b
}

// Logger sets the logger instrumentation writes to.
func (b *ConfigBuilder) Logger(logger *zap.Logger) *ConfigBuilder {
	b.config.logger = logger
	return b
}

// OnNativeError sets a callback invoked with the native result code each
// time a native-layer error is converted.
func (b *ConfigBuilder) OnNativeError(hook func(code int)) *ConfigBuilder {
	b.config.onNativeError = hook
	return b
}

// Build returns the assembled config.
func (b *ConfigBuilder) Build() Config {
	config := b.config
	if config.logger == nil {
		config.logger = zap.NewNop()
	}
	return config
}
