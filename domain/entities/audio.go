package entities

import "time"

// SegmentDuration is the maximum length of a single transcription request.
// Whisper rejects inputs much longer than this, so long audios are cut into
// pieces of at most this size.
const SegmentDuration = 20 * time.Minute

// MaxAudioDuration is the ceiling above which an audio is not processed at
// all; the user is asked to split the file externally instead.
const MaxAudioDuration = 50 * time.Minute

// AudioInfo holds the attributes derived from a decoded audio payload.
type AudioInfo struct {
	Channels int
	Duration time.Duration
}

// Segment is a bounded-duration slice of the original audio. Segments are
// ordered; the transcript is concatenated in segment order.
type Segment struct {
	Index    int
	Offset   time.Duration
	Duration time.Duration
}

// PlanSegments splits a total duration into contiguous, non-overlapping
// chunks of at most chunk each. The segments cover [0, total) exactly once
// and are ordered ascending by offset.
func PlanSegments(total, chunk time.Duration) []Segment {
	if total <= 0 || chunk <= 0 {
		return nil
	}

	var segments []Segment
	for offset := time.Duration(0); offset < total; offset += chunk {
		length := chunk
		if remaining := total - offset; remaining < chunk {
			length = remaining
		}
		segments = append(segments, Segment{
			Index:    len(segments),
			Offset:   offset,
			Duration: length,
		})
	}

	return segments
}
