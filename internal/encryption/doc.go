// Package encryption applies the media-encryption protocol to files on
// disk. Files stream through the chunked transforms with bounded memory,
// are written atomically, and are processed concurrently up to the
// configured limit.
package encryption
