package mediacrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

const (
	// BlockSize is the AES block size the protocol is built on.
	BlockSize = aes.BlockSize

	// minPayloadSize is one cipher block plus the truncated tag, the
	// smallest payload Encrypt can produce.
	minPayloadSize = BlockSize + MacSize
)

// Codec performs authenticated whole-buffer encryption and decryption for
// one (master key, media category) pair. The derived KeySet and the MAC
// primitive are cached for the Codec's lifetime, which is safe because key
// derivation is a pure function of the immutable inputs.
type Codec struct {
	keys  KeySet
	block cipher.Block
	mac   tink.MAC
}

// NewCodec derives the KeySet for the pair and prepares the cipher and MAC
// primitives. Key and category validation happen here, so the per-call
// operations only ever fail on malformed or tampered payloads.
func NewCodec(masterKey []byte, media MediaType) (*Codec, error) {
	keys, err := DeriveKeys(masterKey, media)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(keys.CipherKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	primitive, err := newTruncatedMAC(keys.MacKey)
	if err != nil {
		return nil, err
	}

	return &Codec{keys: keys, block: block, mac: primitive}, nil
}

// Keys returns the derived key material, including the reserved RefKey.
func (c *Codec) Keys() KeySet {
	return c.keys
}

// Encrypt pads and encrypts plaintext under the base IV and appends the
// truncated tag: ciphertext || MAC.
func (c *Codec) Encrypt(plaintext []byte) ([]byte, error) {
	return c.EncryptAt(plaintext, 0)
}

// EncryptAt encrypts one chunk whose plaintext starts at chunkOffset in the
// overall stream. The offset is folded into the IV so chunks can be
// processed independently and out of order. Whole-buffer callers use
// Encrypt, which pins the offset to zero.
func (c *Codec) EncryptAt(plaintext []byte, chunkOffset int64) ([]byte, error) {
	iv := offsetIV(c.keys.IV, chunkOffset)

	padded := pkcs7Pad(plaintext, BlockSize)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	tag, err := c.mac.ComputeMAC(macInput(iv, ciphertext))
	if err != nil {
		return nil, fmt.Errorf("computing tag: %w", err)
	}

	return append(ciphertext, tag...), nil
}

// Decrypt verifies and decrypts a whole-buffer payload produced by Encrypt.
func (c *Codec) Decrypt(payload []byte) ([]byte, error) {
	return c.DecryptAt(payload, 0)
}

// DecryptAt verifies and decrypts one chunk whose plaintext starts at
// chunkOffset in the overall stream. An empty payload decrypts to empty
// output. The tag is always checked before any decryption happens; a
// mismatch means tampering and surfaces as ErrAuthentication.
func (c *Codec) DecryptAt(payload []byte, chunkOffset int64) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	if len(payload) < minPayloadSize {
		return nil, fmt.Errorf("%w: payload shorter than %d bytes", ErrMalformedInput, minPayloadSize)
	}

	ciphertext := payload[:len(payload)-MacSize]
	tag := payload[len(payload)-MacSize:]

	iv := offsetIV(c.keys.IV, chunkOffset)

	if err := c.mac.VerifyMAC(tag, macInput(iv, ciphertext)); err != nil {
		return nil, fmt.Errorf("%w: tag mismatch", ErrAuthentication)
	}

	if len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not block aligned", ErrMalformedInput, len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext)
}

// Encrypt is the convenience form of Codec.Encrypt for one-off calls.
func Encrypt(plaintext, masterKey []byte, media MediaType) ([]byte, error) {
	codec, err := NewCodec(masterKey, media)
	if err != nil {
		return nil, err
	}

	return codec.Encrypt(plaintext)
}

// Decrypt is the convenience form of Codec.Decrypt for one-off calls.
func Decrypt(payload, masterKey []byte, media MediaType) ([]byte, error) {
	codec, err := NewCodec(masterKey, media)
	if err != nil {
		return nil, err
	}

	return codec.Decrypt(payload)
}

// offsetIV derives the IV for a chunk starting at the given byte offset by
// XOR-ing the big-endian offset into the first 8 IV bytes, leaving the last
// 8 unchanged. Offset zero returns an untouched copy of the base IV.
func offsetIV(base []byte, offset int64) []byte {
	iv := make([]byte, len(base))
	copy(iv, base)

	if offset == 0 {
		return iv
	}

	var encoded [8]byte

	binary.BigEndian.PutUint64(encoded[:], uint64(offset)) //nolint:gosec // offsets are non-negative stream positions

	for i, b := range encoded {
		iv[i] ^= b
	}

	return iv
}
