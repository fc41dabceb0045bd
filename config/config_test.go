//go:build !ios && !android && (amd64 || arm64)

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/obinnaokechukwu/reapgo/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := []byte(`
audio_hook_slots: 4
log_level: debug
firewall:
  failure_threshold: 2
  cooldown: 1m30s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.AudioHookSlots)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "REAPGO", cfg.ActionPrefix, "unset fields keep their default")
	assert.True(t, cfg.Firewall.Enabled)
	assert.Equal(t, uint32(2), cfg.Firewall.FailureThreshold)
	assert.Equal(t, 90*time.Second, cfg.Firewall.Cooldown)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero slots", "audio_hook_slots: 0"},
		{"too many slots", "audio_hook_slots: 65"},
		{"bad level", "log_level: chatty"},
		{"prefix with space", "action_prefix: my ext"},
		{"zero threshold", "firewall: {enabled: true, failure_threshold: 0}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument), "got %v", err)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("audio_hook_slots: [1"))
	assert.Error(t, err)
}

func TestDisabledFirewallSkipsThresholdCheck(t *testing.T) {
	cfg, err := Parse([]byte("firewall: {enabled: false, failure_threshold: 0}"))
	require.NoError(t, err)
	assert.False(t, cfg.Firewall.Enabled)
}

func TestCommandName(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "REAPGO_HELLO", cfg.CommandName("HELLO"))

	cfg.ActionPrefix = ""
	assert.Equal(t, "HELLO", cfg.CommandName("HELLO"))
}
