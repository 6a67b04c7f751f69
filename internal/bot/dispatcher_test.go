package bot

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yescribe/transcriptor/domain/entities"
	"github.com/yescribe/transcriptor/domain/repositories"
)

type recordingMessenger struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingMessenger) Send(ctx context.Context, chatID int64, text string) (repositories.MessageRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return repositories.MessageRef{ChatID: chatID, MessageID: len(r.sent)}, nil
}

func (r *recordingMessenger) Edit(ctx context.Context, ref repositories.MessageRef, text string) error {
	return nil
}

func (r *recordingMessenger) SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error {
	return nil
}

func (r *recordingMessenger) SendActions(ctx context.Context, chatID int64, text string, actions []repositories.Action) error {
	return nil
}

func (r *recordingMessenger) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return ""
	}
	return r.sent[len(r.sent)-1]
}

type recordingProcessor struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	runs    []entities.Mode
	fileIDs []string
}

func newRecordingProcessor() *recordingProcessor {
	return &recordingProcessor{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (p *recordingProcessor) Process(ctx context.Context, session *entities.Session, fileID string, mode entities.Mode) {
	p.mu.Lock()
	p.runs = append(p.runs, mode)
	p.fileIDs = append(p.fileIDs, fileID)
	p.mu.Unlock()

	p.started <- struct{}{}
	<-p.release
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingMessenger, *recordingProcessor) {
	messenger := &recordingMessenger{}
	processor := newRecordingProcessor()
	dispatcher := NewDispatcher(nil, messenger, NewSessions(), processor, zaptest.NewLogger(t))
	return dispatcher, messenger, processor
}

func TestAudioPromptsForMode(t *testing.T) {
	dispatcher, messenger, _ := newTestDispatcher(t)
	ctx := context.Background()

	dispatcher.HandleAudio(ctx, 1, "file-1")

	if !strings.Contains(messenger.last(), "VOZ") || !strings.Contains(messenger.last(), "CANTO") {
		t.Errorf("Expected mode prompt, got %q", messenger.last())
	}
	if dispatcher.sessions.Get(1).Stage() != entities.StageAwaitingModeChoice {
		t.Error("Expected session awaiting mode choice")
	}
}

func TestInvalidModeWordReprompts(t *testing.T) {
	dispatcher, messenger, processor := newTestDispatcher(t)
	ctx := context.Background()

	dispatcher.HandleAudio(ctx, 1, "file-1")
	dispatcher.HandleText(ctx, 1, "no sé")

	if !strings.Contains(messenger.last(), "VOZ o CANTO") {
		t.Errorf("Expected re-prompt, got %q", messenger.last())
	}
	if len(processor.runs) != 0 {
		t.Error("Expected no pipeline run after an invalid mode word")
	}
	if dispatcher.sessions.Get(1).Stage() != entities.StageAwaitingModeChoice {
		t.Error("Expected session still awaiting mode choice")
	}
}

func TestValidModeDispatchesPipeline(t *testing.T) {
	dispatcher, _, processor := newTestDispatcher(t)
	ctx := context.Background()

	dispatcher.HandleAudio(ctx, 1, "file-1")
	dispatcher.HandleText(ctx, 1, " voz ")

	<-processor.started
	defer close(processor.release)

	if len(processor.fileIDs) != 1 || processor.fileIDs[0] != "file-1" {
		t.Errorf("Expected pipeline run for file-1, got %v", processor.fileIDs)
	}
	if processor.runs[0] != entities.ModeSpoken {
		t.Errorf("Expected spoken mode, got %s", processor.runs[0])
	}
}

func TestAudioWhileProcessingIsRejected(t *testing.T) {
	dispatcher, messenger, processor := newTestDispatcher(t)
	ctx := context.Background()

	dispatcher.HandleAudio(ctx, 1, "file-1")
	dispatcher.HandleText(ctx, 1, "VOZ")
	<-processor.started

	dispatcher.HandleAudio(ctx, 1, "file-2")
	if !strings.Contains(messenger.last(), "Espera a que termine") {
		t.Errorf("Expected busy notice, got %q", messenger.last())
	}

	close(processor.release)

	processor.mu.Lock()
	runs := len(processor.runs)
	processor.mu.Unlock()
	if runs != 1 {
		t.Errorf("Expected a single in-flight run, got %d", runs)
	}
}

func TestSungCorrectionFlow(t *testing.T) {
	dispatcher, messenger, _ := newTestDispatcher(t)
	ctx := context.Background()

	session := dispatcher.sessions.Get(1)
	session.StoreTranscript("letra original")

	dispatcher.HandleCallback(ctx, 1, "EDIT_CANTO")
	if !strings.Contains(messenger.last(), "letra original") {
		t.Errorf("Expected edit prompt with current transcript, got %q", messenger.last())
	}
	if session.Stage() != entities.StageAwaitingCorrection {
		t.Error("Expected session awaiting correction")
	}

	dispatcher.HandleText(ctx, 1, "letra corregida")
	if session.FinalTranscript() != "letra corregida" {
		t.Errorf("Expected corrected transcript saved, got %q", session.FinalTranscript())
	}
	if session.Stage() != entities.StageIdle {
		t.Error("Expected idle session after correction")
	}
}

func TestSungSaveFlow(t *testing.T) {
	dispatcher, messenger, _ := newTestDispatcher(t)
	ctx := context.Background()

	session := dispatcher.sessions.Get(1)
	session.StoreTranscript("letra original")

	dispatcher.HandleCallback(ctx, 1, "SAVE_CANTO")
	if session.FinalTranscript() != "letra original" {
		t.Errorf("Expected transcript saved unmodified, got %q", session.FinalTranscript())
	}
	if !strings.Contains(messenger.last(), "letra original") {
		t.Errorf("Expected save confirmation with the final version, got %q", messenger.last())
	}
}

func TestPlainTextOutsideFlowGetsReminder(t *testing.T) {
	dispatcher, messenger, _ := newTestDispatcher(t)

	dispatcher.HandleText(context.Background(), 1, "hola bot")

	if !strings.Contains(messenger.last(), "mensaje de voz") {
		t.Errorf("Expected audio-only reminder, got %q", messenger.last())
	}
}
