package mediacrypt

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

const (
	// MasterKeySize is the required master key size in bytes.
	MasterKeySize = 32
	// MacSize is the length of the truncated HMAC-SHA256 tag.
	MacSize = 10

	// keyMaterialSize is the total HKDF output: iv || cipherKey || macKey || refKey.
	keyMaterialSize = ivSize + cipherKeySize + macKeySize + refKeySize

	ivSize        = 16
	cipherKeySize = 32
	macKeySize    = 32
	refKeySize    = 32
)

// MediaType selects the HKDF domain-separation string for a media category.
type MediaType string

const (
	// Image covers still pictures.
	Image MediaType = "image"
	// Video covers moving pictures.
	Video MediaType = "video"
	// Audio covers voice notes and music.
	Audio MediaType = "audio"
	// Document covers everything else.
	Document MediaType = "document"
)

// infoStrings maps each media category to its fixed HKDF context string.
// Keys derived for one category cannot be reused for another.
var infoStrings = map[MediaType]string{ //nolint:gochecknoglobals
	Image:    "WhatsApp Image Keys",
	Video:    "WhatsApp Video Keys",
	Audio:    "WhatsApp Audio Keys",
	Document: "WhatsApp Document Keys",
}

// ParseMediaType canonicalizes a category name. Input is case-insensitive;
// unknown names fail with ErrInvalidInput.
func ParseMediaType(s string) (MediaType, error) {
	media := MediaType(strings.ToLower(strings.TrimSpace(s)))

	if _, ok := infoStrings[media]; !ok {
		return "", fmt.Errorf("%w: unknown media type %q", ErrInvalidInput, s)
	}

	return media, nil
}

// Info returns the HKDF context string for the category, or "" when the
// category is unknown.
func (m MediaType) Info() string {
	return infoStrings[m]
}

// KeySet is the per-category key material derived from a master key.
type KeySet struct {
	// IV is the 16-byte base initialization vector.
	IV []byte

	// CipherKey is the 32-byte AES-256 key.
	CipherKey []byte

	// MacKey is the 32-byte HMAC-SHA256 key.
	MacKey []byte

	// RefKey is a 32-byte key reserved by the protocol. The codec itself
	// never uses it, but it is always derived and exposed.
	RefKey []byte
}

// DeriveKeys expands a 32-byte master key into the per-category KeySet using
// HKDF-SHA256 with a zero salt and the category's info string. The result is
// a pure function of its inputs.
func DeriveKeys(masterKey []byte, media MediaType) (KeySet, error) {
	if len(masterKey) != MasterKeySize {
		return KeySet{}, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidInput, MasterKeySize, len(masterKey))
	}

	canonical, err := ParseMediaType(string(media))
	if err != nil {
		return KeySet{}, err
	}

	okm, err := Expand(sha256.New, masterKey, keyMaterialSize, []byte(canonical.Info()), nil)
	if err != nil {
		return KeySet{}, err
	}

	return KeySet{
		IV:        okm[:ivSize],
		CipherKey: okm[ivSize : ivSize+cipherKeySize],
		MacKey:    okm[ivSize+cipherKeySize : ivSize+cipherKeySize+macKeySize],
		RefKey:    okm[ivSize+cipherKeySize+macKeySize:],
	}, nil
}
