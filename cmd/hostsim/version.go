//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obinnaokechukwu/reapgo/internal/platform"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hostsim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "hostsim version %s (%s/%s)\n",
				cmd.Root().Version, platform.GOOS(), platform.GOARCH())
			return err
		},
	}
}
