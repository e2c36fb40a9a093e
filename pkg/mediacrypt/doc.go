// Package mediacrypt implements the WhatsApp-style media encryption
// protocol: HKDF-SHA256 key derivation per media category, AES-256-CBC with
// PKCS#7 padding and a 10-byte truncated HMAC-SHA256 tag, random-access
// chunked stream transforms, and per-chunk sidecar integrity digests.
// The protocol is fixed; nothing here is configurable beyond the master key
// and the media category.
package mediacrypt
