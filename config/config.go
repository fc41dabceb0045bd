//go:build !ios && !android && (amd64 || arm64)

// Package config holds the tunables of a reapgo session.
//
// Configuration is optional. An extension that ships a reapgo.yaml next to
// itself can override the defaults:
//
//	audio_hook_slots: 4
//	log_level: debug
//	action_prefix: MYEXT
//	firewall:
//	  enabled: true
//	  failure_threshold: 3
//	  cooldown: 30s
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// FileName is the conventional configuration file name.
const FileName = "reapgo.yaml"

// MaxAudioHookSlots bounds AudioHookSlots.
const MaxAudioHookSlots = 64

// Config is the session configuration.
type Config struct {
	// AudioHookSlots is the number of audio hooks that can be registered at
	// once. The slot table is allocated up front.
	AudioHookSlots int `yaml:"audio_hook_slots"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// ActionPrefix is prepended to command names passed to the host.
	ActionPrefix string `yaml:"action_prefix"`
	// Firewall controls how handlers that keep panicking are isolated.
	Firewall FirewallConfig `yaml:"firewall"`
}

// FirewallConfig configures the per-handler circuit breaker.
type FirewallConfig struct {
	Enabled bool `yaml:"enabled"`
	// FailureThreshold is the number of consecutive panics after which the
	// handler is skipped.
	FailureThreshold uint32 `yaml:"failure_threshold"`
	// Cooldown is how long a tripped handler is skipped before it is tried
	// again.
	Cooldown time.Duration `yaml:"cooldown"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		AudioHookSlots: 8,
		LogLevel:       "info",
		ActionPrefix:   "REAPGO",
		Firewall: FirewallConfig{
			Enabled:          true,
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	const op = "validate config"

	if c.AudioHookSlots < 1 || c.AudioHookSlots > MaxAudioHookSlots {
		return errors.InvalidArgument(op, fmt.Sprintf("audio_hook_slots must be within 1..%d", MaxAudioHookSlots), c.AudioHookSlots)
	}
	if _, err := c.Level(); err != nil {
		return errors.InvalidArgument(op, "unknown log_level", c.LogLevel)
	}
	if strings.ContainsAny(c.ActionPrefix, " \t\n") {
		return errors.InvalidArgument(op, "action_prefix must not contain whitespace", c.ActionPrefix)
	}
	if c.Firewall.Enabled {
		if c.Firewall.FailureThreshold < 1 {
			return errors.InvalidArgument(op, "firewall.failure_threshold must be at least 1", c.Firewall.FailureThreshold)
		}
		if c.Firewall.Cooldown < 0 {
			return errors.InvalidArgument(op, "firewall.cooldown must not be negative", c.Firewall.Cooldown)
		}
	}
	return nil
}

// Level returns LogLevel as a zap level.
func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// CommandName returns the host command name for an action key.
func (c Config) CommandName(key string) string {
	if c.ActionPrefix == "" {
		return key
	}
	return c.ActionPrefix + "_" + key
}
