package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt media files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}

	cmd.Flags().BoolP("sidecar", "s", false, "Write an integrity sidecar next to each encrypted file")

	return cmd
}
