package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/brequin/listings/config"
)

func TestNew(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Errorf("info enabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Errorf("error disabled at warn level")
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud", Format: "json"}); err == nil {
		t.Errorf("New accepted level loud")
	}
}
