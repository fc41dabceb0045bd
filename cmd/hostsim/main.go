//go:build !ios && !android && (amd64 || arm64)

// Command hostsim drives reapgo against the in-memory host. It is the
// quickest way to see a session, its callbacks and its logging working
// without a running REAPER.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
