package config_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmon/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "DEBUG"},
		{level: "info"},
		{level: "Info"},
		{level: "warn"},
		{level: "WARN"},
		{level: "error"},
		{level: "ERROR"},
		{level: "invalid", wantErr: true},
		{level: "", wantErr: true},
		{level: "warning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level, Output: &bytes.Buffer{}}

			logger, err := cfg.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, logger).NotNil()
		})
	}
}

func TestLogger_Configure_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "warn", JSON: true, Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err).Required()

	logger.Info("dropped by level")
	logger.Warn("kept", "repo", "a/b")

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.V(t, entry["msg"]).Equal("kept")
	gt.V(t, entry["repo"]).Equal("a/b")
}

func TestLogger_Configure_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "info", JSON: true, Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err).Required()

	logger.Info("configured", "github", config.GitHub{Token: "ghp_very_secret"})
	gt.String(t, buf.String()).NotContains("ghp_very_secret")
}

func TestLogger_Configure_NonTerminalIsText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "info", Output: &buf}

	logger, err := cfg.Configure()
	gt.NoError(t, err).Required()

	logger.Info("hello", "repo", "a/b")
	gt.String(t, buf.String()).Contains("msg=hello")
	gt.String(t, buf.String()).Contains("repo=a/b")
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}

	names := map[string]bool{}
	for _, f := range cfg.Flags() {
		names[f.Names()[0]] = true
	}

	gt.True(t, names["log-level"])
	gt.True(t, names["log-json"])
}
