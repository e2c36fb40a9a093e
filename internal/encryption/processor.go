package encryption

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/gogen/pkg/key"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/fileutil"
	"github.com/idelchi/mediaseal/pkg/mediacrypt"
	"github.com/idelchi/mediaseal/pkg/mediakind"
)

// Processor handles the encryption and decryption of media files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// masterKey stores the raw 32-byte master key
	masterKey []byte

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor creates a new Processor with the given configuration,
// resolving the master key from the flag or the key file.
func NewProcessor(cfg *config.Config) (*Processor, error) {
	var (
		masterKey []byte
		err       error
	)

	switch {
	case cfg.Key.String != "":
		masterKey, err = key.FromHex(cfg.Key.String)
	case cfg.Key.File != "":
		masterKey, err = os.ReadFile(cfg.Key.File)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		masterKey, err = key.FromHex(strings.TrimSpace(string(masterKey)))
	}

	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	if len(masterKey) != mediacrypt.MasterKeySize {
		return nil, errors.New("key must be 32 bytes (64 hex characters)")
	}

	return &Processor{
		cfg:       cfg,
		masterKey: masterKey,
		results:   make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles concurrently processes all files specified in the
// configuration. Returns the number of successfully processed files, the
// number of errors, and the total output size.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)
			} else {
				processed++

				totalSize += result.OutputSize

				if !p.cfg.Quiet {
					fmt.Printf("Processed %q -> %q\n", result.Input, result.Output) //nolint:forbidigo

					if result.Sidecar != "" {
						fmt.Printf("Sidecar   %q\n", result.Sidecar) //nolint:forbidigo
					}
				}
			}

			if p.cfg.Delete && result.Error == nil {
				if err := os.Remove(result.Input); err != nil {
					fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
				} else if !p.cfg.Quiet {
					fmt.Printf("Deleted %q\n", result.Input) //nolint:forbidigo
				}
			}
		}
	}()

	for _, file := range p.cfg.Files {
		group.Go(func() error {
			outPath := p.outputPath(file)

			size, sidecar, err := p.processFile(file, outPath)
			if err != nil {
				p.results <- Result{Input: file, Error: err}

				return err
			}

			p.results <- Result{Input: file, Output: outPath, Sidecar: sidecar, OutputSize: size}

			return nil
		})
	}

	err = group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	if err != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", err)
	}

	return processed, errored, totalSize, nil
}

// processFile streams a single file through the chunked transform into a
// temporary file and renames it into place. Memory stays bounded by the
// chunk size regardless of the file size.
func (p *Processor) processFile(filename, outPath string) (size int64, sidecar string, err error) {
	tc, err := fileutil.NewTempContext(filename, outPath)
	if err != nil {
		return 0, "", fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, "", fmt.Errorf("opening input file: %w", err)
	}

	media := p.MediaFor(filename)

	var reader *mediacrypt.Reader

	if p.cfg.Decrypt {
		reader, err = mediacrypt.NewDecryptReader(inFile, p.masterKey, media)
	} else {
		reader, err = mediacrypt.NewEncryptReader(inFile, p.masterKey, media)
	}

	if err != nil {
		inFile.Close() //nolint:gosec // best-effort cleanup on construction failure

		return 0, "", fmt.Errorf("creating stream transform: %w", err)
	}

	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		return 0, "", errors.New("invalid buffer type from pool")
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	if _, err := io.CopyBuffer(tc.TmpFile, reader, buf); err != nil {
		reader.Close() //nolint:gosec // surfacing the copy error

		return 0, "", fmt.Errorf("transforming file: %w", err)
	}

	if err := reader.Close(); err != nil {
		return 0, "", fmt.Errorf("closing input file: %w", err)
	}

	const ownerReadWrite = 0o600

	perm := os.FileMode(ownerReadWrite)

	if tc.IsExec {
		perm |= 0o111
	}

	size, err = tc.Commit(outPath, perm, p.cfg.PreserveTimestamps)
	if err != nil {
		return 0, "", fmt.Errorf("finalizing output: %w", err)
	}

	if !p.cfg.Decrypt && p.cfg.Sidecar {
		sidecar, err = p.writeSidecar(outPath, media)
		if err != nil {
			return 0, "", err
		}
	}

	return size, sidecar, nil
}

// writeSidecar generates the integrity index for an encrypted output and
// writes it next to the file.
func (p *Processor) writeSidecar(outPath string, media mediacrypt.MediaType) (string, error) {
	encFile, err := os.Open(filepath.Clean(outPath))
	if err != nil {
		return "", fmt.Errorf("opening encrypted output: %w", err)
	}
	defer encFile.Close()

	tags, err := mediacrypt.GenerateSidecar(encFile, p.masterKey, media)
	if err != nil {
		return "", fmt.Errorf("generating sidecar: %w", err)
	}

	const ownerReadWrite = 0o600

	sidecarPath := outPath + ".sidecar"

	if err := os.WriteFile(sidecarPath, tags, ownerReadWrite); err != nil {
		return "", fmt.Errorf("writing sidecar: %w", err)
	}

	return sidecarPath, nil
}

// MediaFor resolves the media category for a file: the configured category
// when fixed, otherwise detection by extension. The encrypted suffix is
// stripped first so the original extension decides; harmless for plain
// files.
func (p *Processor) MediaFor(filename string) mediacrypt.MediaType {
	if p.cfg.Media != "" && p.cfg.Media != "auto" {
		if media, err := mediacrypt.ParseMediaType(p.cfg.Media); err == nil {
			return media
		}
	}

	filename = strings.TrimSuffix(filename, p.cfg.Suffixes.Encrypt)

	return mediakind.Detect(filename)
}

// MasterKey exposes the resolved raw master key.
func (p *Processor) MasterKey() []byte {
	return p.masterKey
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) string {
	ext := p.cfg.Suffixes.Encrypt

	if p.cfg.Decrypt {
		filename = strings.TrimSuffix(filename, p.cfg.Suffixes.Encrypt)
		ext = p.cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename),
		filepath.Base(filename)+ext)
}
