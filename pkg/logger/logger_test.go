package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"hris/backend/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		wantErr bool
		enabled zapcore.Level
	}{
		{"JSONInfo", config.LogConfig{Level: "info", Format: "json"}, false, zapcore.InfoLevel},
		{"ConsoleDebug", config.LogConfig{Level: "debug", Format: "console"}, false, zapcore.DebugLevel},
		{"BadLevel", config.LogConfig{Level: "loud", Format: "json"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !l.Core().Enabled(tt.enabled) {
				t.Errorf("expected level %s enabled", tt.enabled)
			}
		})
	}
}

func TestNewCLILogger(t *testing.T) {
	l, err := NewCLILogger(false)
	if err != nil {
		t.Fatalf("NewCLILogger: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("非 verbose 模式不应输出 info")
	}

	l, err = NewCLILogger(true)
	if err != nil {
		t.Fatalf("NewCLILogger: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose 模式应输出 debug")
	}
}
