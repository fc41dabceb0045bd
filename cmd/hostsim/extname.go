//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/reapgo/internal/platform"
)

func newExtensionNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extension-name NAME",
		Short: "Print the file name the host loads an extension from",
		Long: `extension-name prints the shared library name REAPER scans for on this
platform, e.g. reaper_NAME.so on Linux.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), platform.FormatExtensionName(args[0]))
			return err
		},
	}
}
