package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/gnames/gnagro/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		res slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.in), v.in)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	logDir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := Init(logDir, cfg, false)
	require.NoError(t, err)
	slog.Info("first")
	slog.Debug("hidden")

	err = Init(logDir, cfg, true)
	require.NoError(t, err)
	slog.Info("second")

	bs, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	log := string(bs)
	assert.Contains(t, log, `"msg":"first"`)
	assert.Contains(t, log, `"msg":"second"`)
	assert.Contains(t, log, `"app":"gnagro"`)
	assert.NotContains(t, log, "hidden")

	err = Init(logDir, cfg, false)
	require.NoError(t, err)
	bs, err = os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, bs, "log is truncated without append")
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}
