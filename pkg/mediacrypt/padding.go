package mediacrypt

import (
	"bytes"
	"fmt"
)

// pkcs7Pad adds PKCS#7 padding to the data to make it a multiple of
// blockSize. Data that is already aligned gets a full pad block appended;
// padding is never empty.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	padText := bytes.Repeat([]byte{byte(padding)}, padding)

	return append(data, padText...)
}

// pkcs7Unpad removes PKCS#7 padding from the data.
// It returns ErrMalformedPadding if the padding is invalid.
func pkcs7Unpad(data []byte) ([]byte, error) {
	length := len(data)
	if length == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrMalformedPadding)
	}

	padding := int(data[length-1])
	if padding == 0 || padding > BlockSize || padding > length {
		return nil, fmt.Errorf("%w: pad length %d out of range", ErrMalformedPadding, padding)
	}

	// Verify padding
	for i := length - padding; i < length; i++ {
		if data[i] != byte(padding) {
			return nil, fmt.Errorf("%w: inconsistent trailing bytes", ErrMalformedPadding)
		}
	}

	return data[:length-padding], nil
}
