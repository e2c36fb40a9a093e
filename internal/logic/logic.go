// Package logic implements the core business logic for encryption,
// decryption, and sidecar generation.
package logic

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/encryption"
)

// Run is the main logic of the application.
func Run(cfg *config.Config) error {
	scanned, start, done, err := preamble(cfg)
	if done || err != nil {
		return err
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	processed, errored, totalSize, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(scanned, processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// preamble resolves files and handles dry run. Returns done=true if dry run
// was executed.
func preamble(cfg *config.Config) (int, time.Time, bool, error) {
	start := time.Now()

	scanned, err := resolveFiles(cfg)
	if err != nil {
		return 0, start, false, fmt.Errorf("resolving files: %w", err)
	}

	if cfg.Dry {
		return scanned, start, true, dryRun(cfg, scanned, start)
	}

	return scanned, start, false, nil
}

// resolveFiles normalizes positional args into cfg.Files: explicit files are
// taken as-is, directories are walked. When decrypting, only files carrying
// the encrypted suffix are picked up from directories. Returns the total
// number of files scanned.
func resolveFiles(cfg *config.Config) (int, error) {
	var (
		files   []string
		scanned int
	)

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range cfg.Files {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			// Explicit file: no suffix filtering.
			scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			scanned++

			if cfg.Decrypt && !strings.HasSuffix(path, cfg.Suffixes.Encrypt) {
				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return scanned, fmt.Errorf("no files to process: %v", cfg.Files)
	}

	cfg.Files = files

	return scanned, nil
}

// dryRun previews what would be processed without touching any file.
func dryRun(cfg *config.Config, scanned int, start time.Time) error {
	var totalSize int64

	for _, file := range cfg.Files {
		if !cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", file, outputPath(file, cfg)) //nolint:forbidigo
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(scanned, len(cfg.Files), 0, totalSize, time.Since(start))
	}

	return nil
}

func outputPath(filename string, cfg *config.Config) string {
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

func printStats(scanned, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
