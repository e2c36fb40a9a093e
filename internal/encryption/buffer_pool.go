package encryption

import (
	"sync"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// copyBufferSize matches the plaintext chunk stride so a single copy
// iteration moves at most one chunk through the transform.
const copyBufferSize = mediacrypt.ChunkSize

// bufferPool provides reusable copy buffers for file I/O.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, copyBufferSize)
	},
}
