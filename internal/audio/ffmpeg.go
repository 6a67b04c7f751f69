package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/entities"
	"github.com/yescribe/transcriptor/domain/repositories"
)

// Processor decodes and re-encodes audio by shelling out to ffmpeg and
// ffprobe. ffmpeg identifies the container by probing the content, so the
// payload format (OGG voice note, MP3, M4A, ...) does not need to be known
// up front.
type Processor struct {
	logger *zap.Logger
}

// Ensure Processor implements the MediaProcessor interface
var _ repositories.MediaProcessor = (*Processor)(nil)

// NewProcessor creates a new ffmpeg-backed media processor
func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{logger: logger}
}

// Probe returns the channel count and total duration of the payload.
func (p *Processor) Probe(ctx context.Context, data []byte) (entities.AudioInfo, error) {
	inputPath, cleanup, err := writeTempFile(data, "probe")
	if err != nil {
		return entities.AudioInfo{}, err
	}
	defer cleanup()

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=channels:format=duration",
		"-of", "default=noprint_wrappers=1",
		inputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return entities.AudioInfo{}, fmt.Errorf("ffprobe failed: %w: %s", err, stderr.String())
	}

	info, err := parseProbeOutput(string(output))
	if err != nil {
		return entities.AudioInfo{}, err
	}

	p.logger.Info("Audio probed",
		zap.Int("channels", info.Channels),
		zap.Duration("duration", info.Duration))

	return info, nil
}

// ExtractMP3 cuts [offset, offset+duration) from the payload and re-encodes
// it as MP3 for the transcription provider.
func (p *Processor) ExtractMP3(ctx context.Context, data []byte, offset, duration time.Duration) ([]byte, error) {
	inputPath, cleanup, err := writeTempFile(data, "segment")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".mp3"
	defer os.Remove(outputPath)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-ss", formatSeconds(offset),
		"-t", formatSeconds(duration),
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg extraction failed: %w: %s", err, stderr.String())
	}

	segment, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted segment: %w", err)
	}

	return segment, nil
}

// writeTempFile stores the payload where ffmpeg can read it and returns the
// path plus a cleanup func.
func writeTempFile(data []byte, prefix string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s.audio", prefix, uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("failed to write temp audio file: %w", err)
	}
	return path, func() { os.Remove(path) }, nil
}

// parseProbeOutput extracts channels= and duration= lines from ffprobe's
// flat default output.
func parseProbeOutput(output string) (entities.AudioInfo, error) {
	var info entities.AudioInfo
	var haveDuration bool

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "channels="):
			channels, err := strconv.Atoi(strings.TrimPrefix(line, "channels="))
			if err == nil {
				info.Channels = channels
			}
		case strings.HasPrefix(line, "duration="):
			seconds, err := strconv.ParseFloat(strings.TrimPrefix(line, "duration="), 64)
			if err == nil {
				info.Duration = time.Duration(seconds * float64(time.Second))
				haveDuration = true
			}
		}
	}

	if !haveDuration {
		return entities.AudioInfo{}, fmt.Errorf("ffprobe reported no duration: %q", output)
	}
	return info, nil
}

// formatSeconds renders a duration as fractional seconds for ffmpeg flags.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
