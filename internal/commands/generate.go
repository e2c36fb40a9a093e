package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a new master key",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			key := make([]byte, mediacrypt.MasterKeySize)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generating key: %w", err)
			}

			fmt.Println(hex.EncodeToString(key)) //nolint:forbidigo

			return nil
		},
	}
}
