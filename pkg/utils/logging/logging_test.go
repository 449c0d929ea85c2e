package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

func TestFromWith(t *testing.T) {
	t.Run("falls back to default logger", func(t *testing.T) {
		gt.V(t, logging.From(context.Background())).Equal(slog.Default())
	})

	t.Run("returns stored logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logging.With(context.Background(), logger)
		gt.V(t, logging.From(ctx)).Equal(logger)
	})
}

func TestNew_RedactsSecrets(t *testing.T) {
	type credential struct {
		User  string
		Token string `masq:"secret"`
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("configured", "cred", credential{User: "octocat", Token: "ghp_very_secret"})

	gt.String(t, buf.String()).Contains("octocat")
	gt.String(t, buf.String()).NotContains("ghp_very_secret")
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatText)
	logger.Info("hidden message")
	logger.Warn("visible message")

	gt.String(t, buf.String()).NotContains("hidden message")
	gt.String(t, buf.String()).Contains("visible message")
}
