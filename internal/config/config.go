// Package config defines the runtime configuration and its validation.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Key holds the master key source options. Exactly one of the two must be
// provided.
type Key struct {
	// String is the hex-encoded master key passed directly.
	String string `mapstructure:"key" validate:"omitempty,hexadecimal,len=64"`

	// File is the path to a file holding the hex-encoded master key.
	File string `mapstructure:"key-file" validate:"excluded_with=String"`
}

// Suffixes holds the output filename suffixes.
type Suffixes struct {
	// Encrypt is appended to encrypted files.
	Encrypt string `mapstructure:"encrypt-ext"`

	// Decrypt is appended to decrypted files, after stripping Encrypt.
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Config contains the runtime configuration options.
type Config struct {
	// Key selects the master key source
	Key Key `mapstructure:",squash"`

	// Media is the category used for key derivation: auto or a fixed one
	Media string `mapstructure:"media" validate:"mediatype"`

	// Parallel is the number of files processed concurrently
	Parallel int `validate:"min=1"`

	// Suffixes controls output naming
	Suffixes Suffixes `mapstructure:",squash"`

	// ConfigFile is an optional JSONC file filling unset key/media options
	ConfigFile string `mapstructure:"config"`

	// Quiet suppresses non-error output
	Quiet bool

	// Delete removes originals after successful processing
	Delete bool

	// PreserveTimestamps carries the source mtime over to the output
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Stats prints processing statistics
	Stats bool

	// Dry previews the work without writing
	Dry bool `mapstructure:"dry-run"`

	// Sidecar emits an integrity index next to each encrypted output
	Sidecar bool

	// Decrypt switches the direction
	Decrypt bool

	// Files are the resolved input paths
	Files []string `validate:"min=1"`
}

// Validate applies the optional config file overlay, then validates the
// configuration against the struct tags and checks that a key source is
// present.
func (c *Config) Validate() error {
	if c.ConfigFile != "" {
		if err := Load(c.ConfigFile, c); err != nil {
			return err
		}
	}

	validate := validator.New()

	if err := validate.RegisterValidation("mediatype", validateMediaType); err != nil {
		return fmt.Errorf("registering mediatype validation: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key.String == "" && c.Key.File == "" {
		return errors.New("validating configuration: a key or key file is required")
	}

	return nil
}
