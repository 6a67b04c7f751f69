package repositories

import (
	"context"
	"time"

	"github.com/yescribe/transcriptor/domain/entities"
)

// MediaProcessor abstracts audio decoding and re-encoding
type MediaProcessor interface {
	// Probe decodes the payload and returns its channel count and duration
	Probe(ctx context.Context, data []byte) (entities.AudioInfo, error)
	// ExtractMP3 cuts [offset, offset+duration) out of the payload and
	// re-encodes it as MP3, the container the transcription provider expects
	ExtractMP3(ctx context.Context, data []byte, offset, duration time.Duration) ([]byte, error)
}
