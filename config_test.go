package ember

import (
	"testing"

	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if _, ok := config.Password(); ok {
		t.Error("Expected no password by default")
	}
	if config.LogQuery() {
		t.Error("Expected query logging off by default")
	}
	if config.ExplainQuery() {
		t.Error("Expected explain logging off by default")
	}
	if config.Logger() == nil {
		t.Error("Expected a non-nil logger by default")
	}
}

func TestConfigBuilder(t *testing.T) {
	logger := zap.NewExample()
	hookCalls := 0

	config := NewConfigBuilder().
		Password("hunter2").
		LogQuery(true).
		ExplainQuery(true).
		Logger(logger).
		OnNativeError(func(int) { hookCalls++ }).
		Build()

	password, ok := config.Password()
	if !ok || password != "hunter2" {
		t.Errorf("Expected password 'hunter2', got %q (set=%v)", password, ok)
	}
	if !config.LogQuery() || !config.ExplainQuery() {
		t.Error("Expected both instrumentation flags enabled")
	}
	if config.Logger() != logger {
		t.Error("Expected the injected logger")
	}
	config.OnNativeError()(1)
	if hookCalls != 1 {
		t.Errorf("Expected the hook to fire once, got %d", hookCalls)
	}
}

func TestBuildDefaultsNilLogger(t *testing.T) {
	builder := NewConfigBuilder()
	builder.config.logger = nil

	if NewConfigBuilder().Logger(nil).Build().Logger() == nil {
		t.Error("Expected Build to substitute a no-op logger for nil")
	}
	if builder.Build().Logger() == nil {
		t.Error("Expected Build to substitute a no-op logger for nil")
	}
}
