package mediacrypt

import (
	"errors"
	"fmt"
	"io"
)

const (
	// ChunkSize is the plaintext chunk stride. Each chunk is encrypted and
	// authenticated as an independent payload so the stream supports random
	// access with one chunk of memory.
	ChunkSize = 64 * 1024

	// CipherChunkStride is the ciphertext-stream footprint of one full
	// plaintext chunk: the padded ciphertext plus its tag.
	CipherChunkStride = ChunkSize + BlockSize + MacSize
)

// chunkFunc transforms the raw source bytes of chunk index into their
// output form.
type chunkFunc func(chunk []byte, index int64) ([]byte, error)

// Reader is a random-access stream transform over a seekable source. The
// encrypting and decrypting directions share the same chunk-caching state
// machine and differ only in strides and the per-chunk transform.
//
// At most one transformed chunk is cached, so memory use is bounded by the
// chunk size regardless of the source size. A Reader holds mutable position
// and cache state and is not safe for concurrent use; distinct Readers over
// distinct sources are independent.
type Reader struct {
	src       io.ReadSeeker
	transform chunkFunc
	srcStride int64
	outStride int64
	sizeOf    func(srcSize int64) (int64, error)

	pos        int64
	chunkIndex int64
	chunk      []byte

	size      int64
	sizeKnown bool
	closed    bool
}

// NewEncryptReader wraps a plaintext source and exposes its encrypted form:
// a concatenation of independent chunk payloads, each covering 64 KiB of
// plaintext and encrypted with an IV derived from its plaintext offset. An
// empty source yields an empty stream.
func NewEncryptReader(src io.ReadSeeker, masterKey []byte, media MediaType) (*Reader, error) {
	codec, err := NewCodec(masterKey, media)
	if err != nil {
		return nil, err
	}

	reader := &Reader{
		src:        src,
		srcStride:  ChunkSize,
		outStride:  CipherChunkStride,
		chunkIndex: -1,
	}

	reader.transform = func(chunk []byte, index int64) ([]byte, error) {
		return codec.EncryptAt(chunk, index*ChunkSize)
	}

	reader.sizeOf = func(srcSize int64) (int64, error) {
		return EncryptedLength(srcSize), nil
	}

	return reader, nil
}

// NewDecryptReader wraps an encrypted source produced by the encrypting
// transform and exposes the plaintext. Only the chunk containing the current
// position is verified and decrypted; any seek that leaves the cached
// chunk's window drops the cache.
func NewDecryptReader(src io.ReadSeeker, masterKey []byte, media MediaType) (*Reader, error) {
	codec, err := NewCodec(masterKey, media)
	if err != nil {
		return nil, err
	}

	reader := &Reader{
		src:        src,
		srcStride:  CipherChunkStride,
		outStride:  ChunkSize,
		chunkIndex: -1,
	}

	reader.transform = func(chunk []byte, index int64) ([]byte, error) {
		return codec.DecryptAt(chunk, index*ChunkSize)
	}

	// The exact plaintext length comes from the final chunk: full chunks
	// contribute ChunkSize each and the last one is decrypted through the
	// ordinary chunk cache, keeping the size query within the one-chunk
	// memory bound.
	reader.sizeOf = func(srcSize int64) (int64, error) {
		if srcSize == 0 {
			return 0, nil
		}

		last := (srcSize - 1) / CipherChunkStride

		if err := reader.load(last); err != nil {
			return 0, err
		}

		return last*ChunkSize + int64(len(reader.chunk)), nil
	}

	return reader, nil
}

// Read copies transformed bytes from the current position, loading chunks
// on demand. It stops at the end of a short chunk, which only the final
// chunk of a well-formed stream can be, so a truncated source cannot loop.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, fmt.Errorf("%w: reader is closed", ErrUnsupported)
	}

	total := 0

	for total < len(p) {
		index := r.pos / r.outStride

		if err := r.load(index); err != nil {
			return total, err
		}

		offset := r.pos - index*r.outStride
		if offset >= int64(len(r.chunk)) {
			break
		}

		n := copy(p[total:], r.chunk[offset:])
		total += n
		r.pos += int64(n)
	}

	if total == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return total, nil
}

// Seek resolves the target against the transformed stream. SeekEnd needs the
// stream size; negative and past-end targets are rejected. The cached chunk
// survives any seek that stays inside its window.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if r.closed {
		return 0, fmt.Errorf("%w: reader is closed", ErrUnsupported)
	}

	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		size, err := r.Size()
		if err != nil {
			return 0, err
		}

		target = size + offset
	default:
		return 0, fmt.Errorf("%w: whence %d", ErrInvalidInput, whence)
	}

	if target < 0 {
		return 0, fmt.Errorf("%w: negative position %d", ErrInvalidInput, target)
	}

	size, err := r.Size()
	if err != nil {
		return 0, err
	}

	if target > size {
		return 0, fmt.Errorf("%w: position %d past end of stream (%d)", ErrInvalidInput, target, size)
	}

	if r.chunkIndex >= 0 && target/r.outStride != r.chunkIndex {
		r.chunkIndex, r.chunk = -1, nil
	}

	r.pos = target

	return target, nil
}

// Size reports the total transformed length. Sources are treated as
// immutable once attached, so the value is memoized for the Reader's
// lifetime.
func (r *Reader) Size() (int64, error) {
	if r.closed {
		return 0, fmt.Errorf("%w: reader is closed", ErrUnsupported)
	}

	if r.sizeKnown {
		return r.size, nil
	}

	srcSize, err := r.srcSize()
	if err != nil {
		return 0, err
	}

	size, err := r.sizeOf(srcSize)
	if err != nil {
		return 0, err
	}

	r.size, r.sizeKnown = size, true

	return size, nil
}

// Close drops the cached chunk and closes the source when it is closable.
// Closing twice is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	r.chunkIndex, r.chunk = -1, nil

	if closer, ok := r.src.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("closing source: %w", err)
		}
	}

	return nil
}

// String rewinds the reader and drains the fully transformed content,
// swallowing any error into an empty result. Best-effort convenience only;
// use Read where errors must be observed.
func (r *Reader) String() string {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ""
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}

	return string(data)
}

// load makes chunk index current, reading up to srcStride source bytes from
// the chunk's source offset and transforming them. A chunk that reads
// nothing is cached as empty, which Read treats as end of stream.
func (r *Reader) load(index int64) error {
	if r.chunkIndex == index {
		return nil
	}

	if _, err := r.src.Seek(index*r.srcStride, io.SeekStart); err != nil {
		return fmt.Errorf("seeking source: %w", err)
	}

	buf := make([]byte, r.srcStride)

	n, err := io.ReadFull(r.src, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("reading source chunk %d: %w", index, err)
	}

	if n == 0 {
		r.chunkIndex, r.chunk = index, nil

		return nil
	}

	out, err := r.transform(buf[:n], index)
	if err != nil {
		return err
	}

	r.chunkIndex, r.chunk = index, out

	return nil
}

// srcSize measures the source length, restoring the source position.
func (r *Reader) srcSize() (int64, error) {
	current, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("seeking source: %w", err)
	}

	end, err := r.src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("seeking source: %w", err)
	}

	if _, err := r.src.Seek(current, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seeking source: %w", err)
	}

	return end, nil
}
