package mediacrypt_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// sizeCase is a single golden length pair from testdata/sizes.yml.
type sizeCase struct {
	Plain       int64  `yaml:"plain"`
	Encrypted   int64  `yaml:"encrypted"`
	Description string `yaml:"description,omitempty"`
}

// sizeGroup is a named collection of golden length pairs.
type sizeGroup struct {
	Name  string     `yaml:"name"`
	Cases []sizeCase `yaml:"cases"`
}

func loadSizes(t *testing.T) []sizeGroup {
	t.Helper()

	data, err := os.ReadFile("testdata/sizes.yml")
	if err != nil {
		t.Fatalf("reading testdata: %v", err)
	}

	var groups []sizeGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		t.Fatalf("parsing testdata: %v", err)
	}

	if len(groups) == 0 {
		t.Fatal("no golden size groups found")
	}

	return groups
}

// TestEncryptedLength checks the golden length pairs.
func TestEncryptedLength(t *testing.T) {
	t.Parallel()

	for _, group := range loadSizes(t) {
		t.Run(group.Name, func(t *testing.T) {
			t.Parallel()

			for i, tc := range group.Cases {
				desc := tc.Description
				if desc == "" {
					desc = fmt.Sprintf("case_%d", i)
				}

				t.Run(desc, func(t *testing.T) {
					t.Parallel()

					if got := mediacrypt.EncryptedLength(tc.Plain); got != tc.Encrypted {
						t.Errorf("EncryptedLength(%d) = %d, want %d", tc.Plain, got, tc.Encrypted)
					}
				})
			}
		})
	}
}

func TestDecryptedSize(t *testing.T) {
	t.Parallel()

	codec, err := mediacrypt.NewCodec(testMasterKey(), mediacrypt.Image)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}

	t.Run("too_short", func(t *testing.T) {
		t.Parallel()

		size, ok, err := codec.DecryptedSize(25, nil)
		if err != nil {
			t.Fatalf("DecryptedSize error: %v", err)
		}

		if ok || size != 0 {
			t.Errorf("got (%d, %v), want (0, false)", size, ok)
		}
	})

	t.Run("estimate_without_tail", func(t *testing.T) {
		t.Parallel()

		size, ok, err := codec.DecryptedSize(1000, nil)
		if err != nil {
			t.Fatalf("DecryptedSize error: %v", err)
		}

		// 1000 bytes minus the tag, assuming a single pad byte.
		if !ok || size != 989 {
			t.Errorf("got (%d, %v), want (989, true)", size, ok)
		}
	})

	t.Run("exact_with_tail", func(t *testing.T) {
		t.Parallel()

		payload, err := codec.Encrypt([]byte("hello"))
		if err != nil {
			t.Fatalf("Encrypt error: %v", err)
		}

		tail := payload[len(payload)-mediacrypt.MacSize-mediacrypt.BlockSize : len(payload)-mediacrypt.MacSize]

		size, ok, err := codec.DecryptedSize(int64(len(payload)), tail)
		if err != nil {
			t.Fatalf("DecryptedSize error: %v", err)
		}

		if !ok || size != 5 {
			t.Errorf("got (%d, %v), want (5, true)", size, ok)
		}
	})

	t.Run("bad_tail_length", func(t *testing.T) {
		t.Parallel()

		if _, _, err := codec.DecryptedSize(1000, make([]byte, 8)); !errors.Is(err, mediacrypt.ErrDecryption) {
			t.Errorf("got %v, want ErrDecryption", err)
		}
	})
}
