// mediaseal encrypts and decrypts media files with per-category derived keys,
// and generates integrity sidecars for encrypted outputs.
package main

import (
	"os"

	"github.com/idelchi/mediaseal/internal/commands"
	"github.com/idelchi/mediaseal/internal/config"
)

// version is set at build time.
//
//nolint:gochecknoglobals
var version = "dev"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		os.Exit(1)
	}
}
