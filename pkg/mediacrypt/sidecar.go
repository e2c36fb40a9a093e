package mediacrypt

import (
	"errors"
	"fmt"
	"io"
)

// sidecarWindow is the byte span covered by one sidecar tag: a 64 KiB
// window of the encrypted stream plus a one-block overlap into the next
// window. Windows advance by ChunkSize, so consecutive tags overlap.
const sidecarWindow = ChunkSize + BlockSize

// Sidecar walks an encrypted stream window by window and emits one
// truncated tag per window: HMAC-SHA256(macKey, baseIV || window)[:10].
// Tags authenticate the raw encrypted bytes under the base IV, independent
// of the per-chunk IV scheme, forming an out-of-band integrity index of
// 10 * ceil(streamLength/ChunkSize) bytes. The sidecar is never needed for
// decryption, only for external verification.
func (c *Codec) Sidecar(src io.ReadSeeker) ([]byte, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding source: %w", err)
	}

	var tags []byte

	window := make([]byte, sidecarWindow)

	for index := int64(0); ; index++ {
		if _, err := src.Seek(index*ChunkSize, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking window %d: %w", index, err)
		}

		n, err := io.ReadFull(src, window)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("reading window %d: %w", index, err)
		}

		if n == 0 {
			break
		}

		tag, err := c.mac.ComputeMAC(macInput(c.keys.IV, window[:n]))
		if err != nil {
			return nil, fmt.Errorf("computing window tag: %w", err)
		}

		tags = append(tags, tag...)
	}

	return tags, nil
}

// GenerateSidecar is the convenience form of Codec.Sidecar for one-off
// calls.
func GenerateSidecar(src io.ReadSeeker, masterKey []byte, media MediaType) ([]byte, error) {
	codec, err := NewCodec(masterKey, media)
	if err != nil {
		return nil, err
	}

	return codec.Sidecar(src)
}
