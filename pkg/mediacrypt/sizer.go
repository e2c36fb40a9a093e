package mediacrypt

import (
	"crypto/cipher"
	"fmt"
)

// DecryptedSize derives the plaintext length hidden inside an encrypted
// payload of encryptedSize bytes without decrypting the body.
//
// When lastCipherBlock (the payload's final 16-byte cipher block) is
// supplied, the pad byte is recovered by decrypting that single block under
// the base IV; a pad byte outside 1..16 reports ok=false, and callers
// needing an authoritative answer must fall back to full decryption. Without
// a tail block the result is a conservative estimate assuming one pad byte.
// The MAC is never checked here; this is a size probe only.
func (c *Codec) DecryptedSize(encryptedSize int64, lastCipherBlock []byte) (size int64, ok bool, err error) {
	if encryptedSize < minPayloadSize {
		return 0, false, nil
	}

	sizeWithoutMac := encryptedSize - MacSize

	if lastCipherBlock == nil {
		return sizeWithoutMac - 1, true, nil
	}

	if len(lastCipherBlock) != BlockSize {
		return 0, false, fmt.Errorf("%w: tail block must be %d bytes, got %d", ErrDecryption, BlockSize, len(lastCipherBlock))
	}

	block := make([]byte, BlockSize)
	cipher.NewCBCDecrypter(c.block, c.keys.IV).CryptBlocks(block, lastCipherBlock)

	padLen := int64(block[BlockSize-1])
	if padLen < 1 || padLen > BlockSize {
		return 0, false, nil
	}

	return sizeWithoutMac - padLen, true, nil
}

// EncryptedLength returns the exact ciphertext-stream length the chunked
// encrypting transform produces for plainLen bytes of input: every full
// 64 KiB chunk costs ChunkSize+BlockSize+MacSize bytes, and a trailing
// partial chunk costs its padded length plus the tag. Padding is a pure
// function of length, so no plaintext is needed.
func EncryptedLength(plainLen int64) int64 {
	if plainLen <= 0 {
		return 0
	}

	full := plainLen / ChunkSize
	rem := plainLen % ChunkSize

	size := full * CipherChunkStride

	if rem > 0 {
		size += rem + (BlockSize - rem%BlockSize) + MacSize
	}

	return size
}
