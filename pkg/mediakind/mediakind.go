// Package mediakind infers the media-encryption category for a file from
// its extension, so callers can pick the right key-derivation domain
// without inspecting content.
package mediakind

import (
	"path/filepath"
	"strings"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
)

// kinds maps lowercase extensions to their category. Anything absent is a
// document.
var kinds = map[string]mediacrypt.MediaType{ //nolint:gochecknoglobals
	".jpg":  mediacrypt.Image,
	".jpeg": mediacrypt.Image,
	".png":  mediacrypt.Image,
	".gif":  mediacrypt.Image,
	".webp": mediacrypt.Image,
	".bmp":  mediacrypt.Image,
	".heic": mediacrypt.Image,

	".mp4":  mediacrypt.Video,
	".m4v":  mediacrypt.Video,
	".mov":  mediacrypt.Video,
	".avi":  mediacrypt.Video,
	".mkv":  mediacrypt.Video,
	".webm": mediacrypt.Video,
	".3gp":  mediacrypt.Video,

	".mp3":  mediacrypt.Audio,
	".m4a":  mediacrypt.Audio,
	".aac":  mediacrypt.Audio,
	".ogg":  mediacrypt.Audio,
	".opus": mediacrypt.Audio,
	".wav":  mediacrypt.Audio,
	".flac": mediacrypt.Audio,
	".amr":  mediacrypt.Audio,
}

// Detect returns the media category for path based on its extension,
// falling back to Document for unknown or missing extensions.
func Detect(path string) mediacrypt.MediaType {
	if kind, ok := kinds[strings.ToLower(filepath.Ext(path))]; ok {
		return kind
	}

	return mediacrypt.Document
}
