package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"DEBUG": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(Options{Level: "info", File: "logs/test.log", MaxSizeMB: 1}, dir)
	require.NoError(t, err)

	log.Info("contacts loaded", zap.Int("count", 3))
	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"contacts loaded"`)
	assert.Contains(t, string(data), `"count":3`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"}, t.TempDir())
	assert.Error(t, err)
}
