package mediacrypt

import (
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Expand derives length bytes of key material from ikm using HKDF (RFC 5869)
// with the given hash. A nil or empty salt is replaced by a zero-filled salt
// of the hash's size, as the RFC prescribes. The output is deterministic for
// identical arguments.
func Expand(h func() hash.Hash, ikm []byte, length int, info, salt []byte) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative output length %d", ErrInvalidInput, length)
	}

	if limit := 255 * h().Size(); length > limit {
		return nil, fmt.Errorf("%w: output length %d exceeds the HKDF limit of %d", ErrInvalidInput, length, limit)
	}

	okm := make([]byte, length)

	if _, err := io.ReadFull(hkdf.New(h, ikm, salt, info), okm); err != nil {
		return nil, fmt.Errorf("expanding key material: %w", err)
	}

	return okm, nil
}
