package logic

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/encryption"
	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// RunSidecar generates integrity indexes for already-encrypted files,
// writing each one to <file>.sidecar.
//
//nolint:cyclop,gocognit // parallel processing pipeline with printer goroutine
func RunSidecar(cfg *config.Config) error {
	scanned, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	type result struct {
		input  string
		output string
		size   int64
		err    error
	}

	results := make(chan result, len(cfg.Files))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var processed, errored int

	var totalSize int64

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)
			} else {
				processed++

				totalSize += res.size

				if !cfg.Quiet {
					fmt.Printf("Sidecar %q -> %q\n", res.input, res.output) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range cfg.Files {
		group.Go(func() error {
			outPath := file + ".sidecar"

			size, err := sidecarFile(file, outPath, proc)
			if err != nil {
				results <- result{input: file, err: err}

				return err
			}

			results <- result{input: file, output: outPath, size: size}

			return nil
		})
	}

	err = group.Wait()

	close(results)

	<-printed

	if cfg.Stats {
		printStats(scanned, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("generating sidecars: %w", err)
	}

	return nil
}

// sidecarFile generates the tag index for one encrypted file.
func sidecarFile(filename, outPath string, proc *encryption.Processor) (int64, error) {
	encFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer encFile.Close()

	tags, err := mediacrypt.GenerateSidecar(encFile, proc.MasterKey(), proc.MediaFor(filename))
	if err != nil {
		return 0, fmt.Errorf("generating sidecar: %w", err)
	}

	const ownerReadWrite = 0o600

	if err := os.WriteFile(outPath, tags, ownerReadWrite); err != nil {
		return 0, fmt.Errorf("writing sidecar: %w", err)
	}

	return int64(len(tags)), nil
}
