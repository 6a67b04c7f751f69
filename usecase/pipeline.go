package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/entities"
	"github.com/yescribe/transcriptor/domain/repositories"
)

// Callback data for the sung-mode inline actions.
const (
	ActionEditSung = "EDIT_CANTO"
	ActionSaveSung = "SAVE_CANTO"
)

const documentTitle = "Resumen y Transcripción de Audio por TranscriptorAudioIA."

const tooBigGuidance = "⏱️ Archivo demasiado grande para descargar\n\n" +
	"Parece que el archivo supera el límite que puedo descargar directamente.\n\n" +
	"📌 Por favor divide el audio en partes de máximo 30–40 minutos usando este enlace:\n" +
	"https://audiotrimmer.com/\n\n" +
	"🔁 Una vez lo hayas cortado, envíame las partes y las procesaré sin error."

const tooLongGuidance = "⏱️ Audio muy largo detectado\n\n" +
	"📌 Para mayor estabilidad, por favor divide el audio en partes.\n\n" +
	"🔗 Herramienta recomendada:\nhttps://audiotrimmer.com/\n\n" +
	"✂️ Divide en partes de máximo 30–40 minutos y vuelve a enviarlas.\n\n" +
	"Cuando lo hayas cortado, envíame las partes y las procesaré sin dar error."

const multiChannelAdvisory = "🎵 Posible cántico o música detectada\n\n" +
	"⚠️ La transcripción de cantos puede contener errores.\n" +
	"✅ Audios hablados se transcriben con mayor precisión.\n\n" +
	"Si es un cántico, puedes continuar sabiendo esto."

// PipelineConfig carries the tunable limits of the processing pipeline.
type PipelineConfig struct {
	// ChunkDuration is the maximum length of one transcription segment
	ChunkDuration time.Duration
	// MaxDuration is the ceiling above which audio is rejected with guidance
	MaxDuration time.Duration
	// Language is the transcription target language hint
	Language string
}

// DefaultPipelineConfig returns the production limits
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ChunkDuration: entities.SegmentDuration,
		MaxDuration:   entities.MaxAudioDuration,
		Language:      "es",
	}
}

// PipelineService orchestrates one processing request: acquisition, duration
// guard, segmentation, sequential transcription, and mode-routed output.
type PipelineService struct {
	downloader repositories.Downloader
	messenger  repositories.Messenger
	media      repositories.MediaProcessor
	stt        repositories.SpeechToText
	summarizer *Summarizer
	renderer   repositories.DocumentRenderer
	stats      *Stats
	logger     *zap.Logger
	config     PipelineConfig
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	downloader repositories.Downloader,
	messenger repositories.Messenger,
	media repositories.MediaProcessor,
	stt repositories.SpeechToText,
	summarizer *Summarizer,
	renderer repositories.DocumentRenderer,
	stats *Stats,
	logger *zap.Logger,
	config PipelineConfig,
) *PipelineService {
	return &PipelineService{
		downloader: downloader,
		messenger:  messenger,
		media:      media,
		stt:        stt,
		summarizer: summarizer,
		renderer:   renderer,
		stats:      stats,
		logger:     logger,
		config:     config,
	}
}

// Process runs the whole pipeline for one audio reference. All progress is
// reported through a single status message that is edited in place; any
// unclassified failure ends up in that same status line.
func (s *PipelineService) Process(ctx context.Context, session *entities.Session, fileID string, mode entities.Mode) {
	chatID := session.ChatID()

	status, err := s.messenger.Send(ctx, chatID, "⏳ Descargando audio y preparando para segmentación...")
	if err != nil {
		s.logger.Error("Failed to send status message", zap.Int64("chatID", chatID), zap.Error(err))
		s.stats.RecordFailure()
		return
	}

	if err := s.run(ctx, session, fileID, mode, status); err != nil {
		s.logger.Error("Audio processing failed",
			zap.Int64("chatID", chatID),
			zap.String("fileID", fileID),
			zap.Error(err))
		s.stats.RecordFailure()

		text := fmt.Sprintf("❌ Ocurrió un error inesperado al procesar el audio. Por favor, inténtalo de nuevo. Error: %v", err)
		if editErr := s.messenger.Edit(ctx, status, text); editErr != nil {
			s.logger.Error("Failed to edit status with error", zap.Error(editErr))
		}
		return
	}

	s.stats.RecordSuccess()
}

func (s *PipelineService) run(ctx context.Context, session *entities.Session, fileID string, mode entities.Mode, status repositories.MessageRef) error {
	chatID := session.ChatID()

	payload, err := s.downloader.Download(ctx, fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrFileTooBig) {
			_, sendErr := s.messenger.Send(ctx, chatID, tooBigGuidance)
			return sendErr
		}
		return fmt.Errorf("audio acquisition failed: %w", err)
	}

	info, err := s.media.Probe(ctx, payload)
	if err != nil {
		return fmt.Errorf("audio decoding failed: %w", err)
	}

	// More than one channel often means music; warn but keep going.
	if info.Channels > 1 {
		if _, err := s.messenger.Send(ctx, chatID, multiChannelAdvisory); err != nil {
			return err
		}
	}

	if info.Duration > s.config.MaxDuration {
		_, err := s.messenger.Send(ctx, chatID, tooLongGuidance)
		return err
	}

	segments := entities.PlanSegments(info.Duration, s.config.ChunkDuration)

	if err := s.messenger.Edit(ctx, status, fmt.Sprintf(
		"⚙️ Audio segmentado en %d partes. Iniciando transcripción con Whisper...", len(segments))); err != nil {
		return err
	}

	transcript, err := s.transcribeSegments(ctx, payload, segments, status)
	if err != nil {
		return err
	}

	if mode == entities.ModeSung {
		return s.deliverSungTranscript(ctx, session, transcript, status)
	}
	return s.deliverSummaryDocument(ctx, chatID, transcript, status)
}

// transcribeSegments submits every segment in order and concatenates the
// results. Calls are issued and awaited one at a time so the transcript
// order always matches the segment order; a single failure aborts the whole
// request with no partial recovery.
func (s *PipelineService) transcribeSegments(ctx context.Context, payload []byte, segments []entities.Segment, status repositories.MessageRef) (string, error) {
	var transcript entities.Transcript

	for _, segment := range segments {
		if err := s.messenger.Edit(ctx, status, fmt.Sprintf(
			"🎤 Transcribiendo segmento %d de %d...", segment.Index+1, len(segments))); err != nil {
			return "", err
		}

		encoded, err := s.media.ExtractMP3(ctx, payload, segment.Offset, segment.Duration)
		if err != nil {
			return "", fmt.Errorf("segment %d re-encoding failed: %w", segment.Index, err)
		}

		text, err := s.stt.TranscribeAudio(ctx, encoded, repositories.AudioConfig{
			Language: s.config.Language,
			FileName: "audio.mp3",
		})
		if err != nil {
			return "", fmt.Errorf("segment %d transcription failed: %w", segment.Index, err)
		}

		transcript.Append(text)
	}

	return transcript.Text(), nil
}

// deliverSungTranscript stores the transcript for manual review and offers
// the edit/save actions. No summary and no document on this path, ever.
func (s *PipelineService) deliverSungTranscript(ctx context.Context, session *entities.Session, transcript string, status repositories.MessageRef) error {
	session.StoreTranscript(transcript)

	if err := s.messenger.Edit(ctx, status,
		"✅ Transcripción completada (modo CANTO). Revisa la transcripción y elige una acción:"); err != nil {
		return err
	}

	if _, err := s.messenger.Send(ctx, session.ChatID(), transcript); err != nil {
		return err
	}

	return s.messenger.SendActions(ctx, session.ChatID(), "Elige una opción:", []repositories.Action{
		{Label: "✏️ Editar", Data: ActionEditSung},
		{Label: "💾 Guardar", Data: ActionSaveSung},
	})
}

// deliverSummaryDocument summarizes the transcript and delivers the rendered
// document. A rendering failure degrades to a failure message; the summary
// and transcript are not retried.
func (s *PipelineService) deliverSummaryDocument(ctx context.Context, chatID int64, transcript string, status repositories.MessageRef) error {
	if err := s.messenger.Edit(ctx, status, "🧠 Generando resumen optimizado…"); err != nil {
		return err
	}

	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	document, err := s.renderer.Render(repositories.Document{
		Title:      documentTitle,
		Summary:    summary,
		Transcript: transcript,
	})
	if err != nil {
		s.logger.Error("Document rendering failed", zap.Int64("chatID", chatID), zap.Error(err))
		return s.messenger.Edit(ctx, status, "❌ Error al generar el archivo PDF.")
	}

	if err := s.messenger.Edit(ctx, status, "✅ RESUMEN GENERADO CON ÉXITO\n\n"+summary); err != nil {
		return err
	}

	fileName := fmt.Sprintf("resumen_audio_%d_%s.pdf", chatID, uuid.NewString())
	return s.messenger.SendDocument(ctx, chatID, fileName, document,
		"📄 Aquí tienes el archivo PDF con el resumen completo y la transcripción.")
}
