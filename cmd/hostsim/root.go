//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/obinnaokechukwu/reapgo"
	"github.com/obinnaokechukwu/reapgo/config"
)

type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "hostsim",
		Short: "Run reapgo sessions against a simulated host",
		Long: `hostsim creates a reapgo session over an in-memory REAPER host,
registers actions, a control surface and an audio hook, and drives them
the way the host would.`,
		Version: reapgo.Version,
		// Errors are already reported by the failing command.
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "hostsim version %s\n" .Version}}`)

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		newRunCmd(g),
		newConfigCmd(g),
		newExtensionNameCmd(),
		newVersionCmd(),
	)
	return root
}

// load returns the effective configuration: defaults, then the file, then
// flags.
func (g *globalFlags) load() (config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}
