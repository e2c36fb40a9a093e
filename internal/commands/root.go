package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/mediaseal/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "mediaseal [flags] command [flags]"
	root.Short = "Media file encryption utility"
	root.Long = `A media file encryption utility with per-category key derivation.
Provides commands for key generation, encryption, decryption, and
integrity sidecar generation.`

	root.Flags().IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.Flags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.Flags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	root.Flags().Bool("stats", false, "Print processing statistics on exit")
	root.Flags().Bool("dry-run", false, "Preview the work without writing any file")
	root.Flags().Bool("preserve-timestamps", false, "Carry the source modification time over to the output")

	root.Flags().StringP("key", "k", "", "Master key (32 bytes, hex-encoded)")
	root.Flags().StringP("key-file", "f", "", "Path to the key file with the master key (32 bytes, hex-encoded)")
	root.Flags().StringP("media", "m", "auto", "Media category: auto, image, video, audio or document")
	root.Flags().StringP("config", "c", "", "Path to a JSONC config file filling unset key/media options")

	root.Flags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	root.Flags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewSidecarCommand(cfg),
		NewGenerateCommand(),
	)

	return root
}
