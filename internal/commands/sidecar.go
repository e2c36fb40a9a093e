package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/logic"
)

// NewSidecarCommand creates a new cobra command for the sidecar subcommand.
// It operates on already-encrypted files and writes <file>.sidecar next to
// each one.
func NewSidecarCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "sidecar [flags] [paths...]",
		Aliases: []string{"sc"},
		Short:   "Generate integrity sidecars for encrypted files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunSidecar(cfg)
		},
	}
}
