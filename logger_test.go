package webapi

import "testing"

func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "count", 42)
	logger.Warn("warn message")
	logger.Error("error message", "odd", "pair", "dangling")
}

func TestDefaultDebugConfig(t *testing.T) {
	config := DefaultDebugConfig()
	if config.Enabled {
		t.Error("Expected debug disabled by default")
	}
	if !config.LogRequests || !config.LogResponses || !config.LogErrors {
		t.Error("Expected all stage flags on by default")
	}
	if config.RequestIDGen == nil {
		t.Fatal("Expected a request ID generator")
	}

	a, b := config.RequestIDGen(), config.RequestIDGen()
	if len(a) != 8 || len(b) != 8 {
		t.Errorf("Expected 8-character request IDs, got %q and %q", a, b)
	}
	if a == b {
		t.Error("Expected distinct request IDs")
	}
}
