package mediacrypt

import "errors"

var (
	// ErrInvalidInput is returned for bad key lengths, unknown media
	// categories, and out-of-range derivation or seek requests.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedInput is returned when a payload is shorter than the
	// minimum valid length or its ciphertext is not block aligned.
	ErrMalformedInput = errors.New("malformed payload")
	// ErrAuthentication is returned when the truncated MAC does not match.
	// The payload is treated as tampered and is never decrypted.
	ErrAuthentication = errors.New("authentication failed")
	// ErrDecryption is returned when the cipher layer itself fails.
	ErrDecryption = errors.New("decryption failed")
	// ErrMalformedPadding is returned when PKCS#7 padding is out of range or
	// inconsistent. Only reachable after the MAC has verified.
	ErrMalformedPadding = errors.New("invalid padding")
	// ErrUnsupported is returned for operations the stream transforms do not
	// support, such as reading a closed stream.
	ErrUnsupported = errors.New("unsupported operation")
)
