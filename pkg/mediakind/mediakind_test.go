package mediakind_test

import (
	"testing"

	"github.com/idelchi/mediaseal/pkg/mediacrypt"
	"github.com/idelchi/mediaseal/pkg/mediakind"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want mediacrypt.MediaType
	}{
		{"photo.jpg", mediacrypt.Image},
		{"photo.JPEG", mediacrypt.Image},
		{"dir/nested/scan.png", mediacrypt.Image},
		{"sticker.webp", mediacrypt.Image},
		{"clip.mp4", mediacrypt.Video},
		{"clip.MOV", mediacrypt.Video},
		{"recording.mkv", mediacrypt.Video},
		{"note.opus", mediacrypt.Audio},
		{"song.mp3", mediacrypt.Audio},
		{"voice.amr", mediacrypt.Audio},
		{"report.pdf", mediacrypt.Document},
		{"archive.zip", mediacrypt.Document},
		{"no-extension", mediacrypt.Document},
		{"", mediacrypt.Document},
	}

	for _, tc := range tests {
		if got := mediakind.Detect(tc.path); got != tc.want {
			t.Errorf("Detect(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
