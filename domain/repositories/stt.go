package repositories

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// TranscribeAudio converts one audio segment to text
	TranscribeAudio(ctx context.Context, audioData []byte, config AudioConfig) (string, error)
}

// AudioConfig represents per-request configuration for speech recognition
type AudioConfig struct {
	// Language is the target language hint (ISO 639-1)
	Language string `json:"language"`
	// FileName names the audio attachment; providers derive the container
	// format from its extension
	FileName string `json:"file_name"`
}
