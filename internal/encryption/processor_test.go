package encryption_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/mediaseal/internal/config"
	"github.com/idelchi/mediaseal/internal/encryption"
	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// testKeyHex is a fixed 32-byte master key, hex-encoded.
var testKeyHex = strings.Repeat("ab", 32) //nolint:gochecknoglobals

// testPayload builds a deterministic file body spanning multiple chunks.
func testPayload() []byte {
	data := make([]byte, 150_000)
	for i := range data {
		data[i] = byte(i*13 + i/512)
	}

	return data
}

func TestProcessorRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp4")
	data := testPayload()

	require.NoError(t, os.WriteFile(src, data, 0o600))

	encCfg := &config.Config{
		Key:      config.Key{String: testKeyHex},
		Media:    "auto",
		Parallel: 1,
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Quiet:    true,
		Sidecar:  true,
		Files:    []string{src},
	}

	require.NoError(t, encCfg.Validate())

	proc, err := encryption.NewProcessor(encCfg)
	require.NoError(t, err)

	processed, errored, totalSize, err := proc.ProcessFiles()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, errored)

	encPath := src + ".enc"

	encData, err := os.ReadFile(encPath)
	require.NoError(t, err)
	assert.EqualValues(t, mediacrypt.EncryptedLength(int64(len(data))), len(encData))
	assert.EqualValues(t, len(encData), totalSize)

	sidecar, err := os.ReadFile(encPath + ".sidecar")
	require.NoError(t, err)

	wantTags := (len(encData) + mediacrypt.ChunkSize - 1) / mediacrypt.ChunkSize
	assert.Len(t, sidecar, wantTags*mediacrypt.MacSize)

	decCfg := &config.Config{
		Key:      config.Key{String: testKeyHex},
		Media:    "auto",
		Parallel: 1,
		Suffixes: config.Suffixes{Encrypt: ".enc", Decrypt: ".out"},
		Quiet:    true,
		Decrypt:  true,
		Files:    []string{encPath},
	}

	require.NoError(t, decCfg.Validate())

	proc, err = encryption.NewProcessor(decCfg)
	require.NoError(t, err)

	processed, errored, _, err = proc.ProcessFiles()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, errored)

	got, err := os.ReadFile(filepath.Join(dir, "clip.mp4.out"))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestProcessorWrongKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "note.opus")

	require.NoError(t, os.WriteFile(src, testPayload(), 0o600))

	encCfg := &config.Config{
		Key:      config.Key{String: testKeyHex},
		Parallel: 1,
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Quiet:    true,
		Files:    []string{src},
	}

	proc, err := encryption.NewProcessor(encCfg)
	require.NoError(t, err)

	_, _, _, err = proc.ProcessFiles()
	require.NoError(t, err)

	decCfg := &config.Config{
		Key:      config.Key{String: strings.Repeat("cd", 32)},
		Parallel: 1,
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Quiet:    true,
		Decrypt:  true,
		Files:    []string{src + ".enc"},
	}

	proc, err = encryption.NewProcessor(decCfg)
	require.NoError(t, err)

	processed, errored, _, err := proc.ProcessFiles()
	assert.Error(t, err)
	assert.Zero(t, processed)
	assert.Equal(t, 1, errored)

	// The failed output must not be left behind.
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr)
}

func TestProcessorKeyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyPath := filepath.Join(dir, "master.key")

	require.NoError(t, os.WriteFile(keyPath, []byte(testKeyHex+"\n"), 0o600))

	cfg := &config.Config{
		Key:      config.Key{File: keyPath},
		Parallel: 1,
		Files:    []string{"unused"},
	}

	proc, err := encryption.NewProcessor(cfg)
	require.NoError(t, err)
	assert.Len(t, proc.MasterKey(), mediacrypt.MasterKeySize)
}

func TestProcessorRejectsBadKey(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Key:      config.Key{String: "abcd"},
		Parallel: 1,
		Files:    []string{"unused"},
	}

	_, err := encryption.NewProcessor(cfg)
	assert.Error(t, err)
}

func TestMediaFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cfg   config.Config
		input string
		want  mediacrypt.MediaType
	}{
		{
			name:  "auto detects by extension",
			cfg:   config.Config{Media: "auto", Suffixes: config.Suffixes{Encrypt: ".enc"}},
			input: "clip.mp4",
			want:  mediacrypt.Video,
		},
		{
			name:  "encrypted suffix is stripped first",
			cfg:   config.Config{Media: "auto", Suffixes: config.Suffixes{Encrypt: ".enc"}, Decrypt: true},
			input: "photo.jpg.enc",
			want:  mediacrypt.Image,
		},
		{
			name:  "fixed category overrides detection",
			cfg:   config.Config{Media: "document", Suffixes: config.Suffixes{Encrypt: ".enc"}},
			input: "clip.mp4",
			want:  mediacrypt.Document,
		},
		{
			name:  "unknown extension falls back to document",
			cfg:   config.Config{Media: "auto", Suffixes: config.Suffixes{Encrypt: ".enc"}},
			input: "data.bin",
			want:  mediacrypt.Document,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := tc.cfg
			cfg.Key = config.Key{String: testKeyHex}
			cfg.Parallel = 1
			cfg.Files = []string{tc.input}

			proc, err := encryption.NewProcessor(&cfg)
			require.NoError(t, err)

			assert.Equal(t, tc.want, proc.MediaFor(tc.input))
		})
	}
}
