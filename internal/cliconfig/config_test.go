package cliconfig

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/xsm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Delta != time.Second/60 {
		t.Errorf("Delta = %v, want %v", cfg.Delta, time.Second/60)
	}
	if cfg.HistorySize != xsm.DefaultHistorySize {
		t.Errorf("HistorySize = %v, want %v", cfg.HistorySize, xsm.DefaultHistorySize)
	}
	if cfg.SyncMode != "idle" {
		t.Errorf("SyncMode = %v, want idle", cfg.SyncMode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "physics sync", mutate: func(c *Config) { c.SyncMode = "physics" }},
		{name: "json logs", mutate: func(c *Config) { c.LogFormat = FormatJSON }},
		{name: "negative frames", mutate: func(c *Config) { c.Frames = -1 }, wantErr: "frames"},
		{name: "zero delta", mutate: func(c *Config) { c.Delta = 0 }, wantErr: "delta"},
		{name: "zero history", mutate: func(c *Config) { c.HistorySize = 0 }, wantErr: "history size"},
		{name: "unknown sync mode", mutate: func(c *Config) { c.SyncMode = "render" }, wantErr: "sync mode"},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log level"},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_MachineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SyncMode = "physics"
	cfg.HistorySize = 3

	root := xsm.NewState[struct{}]("Root", nil).AddChild(xsm.NewState[struct{}]("A", nil))
	m := xsm.NewMachine(root, &struct{}{}, cfg.MachineOptions()...)

	if m.SyncMode() != xsm.SyncPhysics {
		t.Errorf("SyncMode() = %v, want physics", m.SyncMode())
	}
	if m.History().Size() != 3 {
		t.Errorf("history size = %d, want 3", m.History().Size())
	}
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = FormatJSON
	cfg.LogLevel = "warn"

	logger := cfg.Logger(&buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("state", "Idle").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["state"] != "Idle" || entry["level"] != "warn" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestConfig_ConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()

	logger := cfg.Logger(&buf)
	logger.Info().Msg("hello")

	if strings.HasPrefix(buf.String(), "{") {
		t.Errorf("console output should not be JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output %q should contain the message", buf.String())
	}
}
