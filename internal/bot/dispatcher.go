package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/adapters/telegram"
	"github.com/yescribe/transcriptor/domain/entities"
	"github.com/yescribe/transcriptor/domain/repositories"
	"github.com/yescribe/transcriptor/usecase"
)

const pollTimeoutSeconds = 60

const modePrompt = "🎧 Audio recibido\n\n" +
	"Responde con una opción:\n\n" +
	"🎙️ Escribe: VOZ  → si es audio hablado\n" +
	"🎵 Escribe: CANTO → si es un cántico o canción\n\n" +
	"⏳ El procesamiento iniciará según tu elección."

const sungModeNotice = "🎵 Modo CÁNTICO activado\n\n" +
	"⚠️ Puede haber errores en la letra.\n" +
	"✏️ Recomendado solo para referencia."

const busyNotice = "⏳ Ya estoy procesando un audio tuyo. Espera a que termine antes de enviar otro."

const textOnlyNotice = "Por favor, envíame o reenvíame un mensaje de voz o un archivo de audio. " +
	"No puedo procesar mensajes de texto. 😉"

// Processor runs the transcription pipeline for one audio reference.
type Processor interface {
	Process(ctx context.Context, session *entities.Session, fileID string, mode entities.Mode)
}

// Dispatcher routes every inbound update to exactly one handler based on the
// chat's current session stage, so no two handlers can compete for the same
// text message.
type Dispatcher struct {
	client    *telegram.Client
	messenger repositories.Messenger
	sessions  *Sessions
	pipeline  Processor
	logger    *zap.Logger
}

// NewDispatcher creates a new update dispatcher
func NewDispatcher(
	client *telegram.Client,
	messenger repositories.Messenger,
	sessions *Sessions,
	pipeline Processor,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		client:    client,
		messenger: messenger,
		sessions:  sessions,
		pipeline:  pipeline,
		logger:    logger,
	}
}

// Run consumes the long-polling update channel until the context is
// cancelled. Each pipeline run is dispatched on its own goroutine so one
// user's transcription does not block other users' events.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("Bot started, waiting for messages")
	updates := d.client.Updates(pollTimeoutSeconds)

	for {
		select {
		case <-ctx.Done():
			d.client.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.dispatch(ctx, update)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		d.client.AnswerCallback(update.CallbackQuery.ID)
		if update.CallbackQuery.Message != nil {
			d.HandleCallback(ctx, update.CallbackQuery.Message.Chat.ID, update.CallbackQuery.Data)
		}
		return
	}

	message := update.Message
	if message == nil {
		return
	}
	chatID := message.Chat.ID

	switch {
	case message.IsCommand() && message.Command() == "start":
		d.sendGreeting(ctx, chatID, message.From.FirstName)
	case message.Voice != nil:
		d.HandleAudio(ctx, chatID, message.Voice.FileID)
	case message.Audio != nil:
		d.HandleAudio(ctx, chatID, message.Audio.FileID)
	case message.Text != "":
		d.HandleText(ctx, chatID, message.Text)
	}
}

func (d *Dispatcher) sendGreeting(ctx context.Context, chatID int64, firstName string) {
	greeting := fmt.Sprintf("¡Hola, %s 👋!\n\n"+
		"Soy tu bot transcriptor y resumidor de audios largos.\n\n"+
		"Para iniciar, simplemente reenvía o sube un mensaje de voz o un archivo "+
		"de audio (MP3, OGG, M4A, etc.) y yo me encargaré del resto.", firstName)
	d.send(ctx, chatID, greeting)
}

// HandleAudio registers a received voice/audio message and prompts for the
// content mode. While a pipeline run is in flight the audio is rejected
// instead of silently overwriting the pending reference.
func (d *Dispatcher) HandleAudio(ctx context.Context, chatID int64, fileID string) {
	session := d.sessions.Get(chatID)

	if session.Processing() {
		d.send(ctx, chatID, busyNotice)
		return
	}

	session.ReceiveAudio(fileID)
	d.logger.Info("Audio received", zap.Int64("chatID", chatID), zap.String("fileID", fileID))
	d.send(ctx, chatID, modePrompt)
}

// HandleText routes a plain text message according to the session stage:
// mode choice, correction text, or the generic audio-only reminder.
func (d *Dispatcher) HandleText(ctx context.Context, chatID int64, text string) {
	session := d.sessions.Get(chatID)

	switch session.Stage() {
	case entities.StageAwaitingModeChoice:
		d.handleModeChoice(ctx, session, text)
	case entities.StageAwaitingCorrection:
		session.ApplyCorrection(text)
		d.send(ctx, chatID, "✅ Transcripción actualizada y guardada. Aquí está la versión final:\n\n"+session.FinalTranscript())
	default:
		d.send(ctx, chatID, textOnlyNotice)
	}
}

func (d *Dispatcher) handleModeChoice(ctx context.Context, session *entities.Session, text string) {
	chatID := session.ChatID()

	mode, fileID, ok := session.ChooseMode(text)
	if !ok {
		d.send(ctx, chatID, "❌ Responde solo con: VOZ o CANTO")
		return
	}

	if mode == entities.ModeSung {
		d.send(ctx, chatID, sungModeNotice)
	}
	d.send(ctx, chatID, "⏳ Iniciando transcripción…")

	if !session.BeginProcessing() {
		d.send(ctx, chatID, busyNotice)
		return
	}

	go func() {
		defer session.EndProcessing()
		d.pipeline.Process(ctx, session, fileID, mode)
	}()
}

// HandleCallback routes the sung-mode inline actions.
func (d *Dispatcher) HandleCallback(ctx context.Context, chatID int64, data string) {
	session := d.sessions.Get(chatID)

	switch data {
	case usecase.ActionEditSung:
		session.BeginCorrection()
		d.send(ctx, chatID, "✏️ Envíame la transcripción corregida. Actualmente:\n\n"+session.LastTranscript())
	case usecase.ActionSaveSung:
		final := session.Save()
		d.send(ctx, chatID, "💾 Transcripción guardada. Aquí está la versión final:\n\n"+final)
	}
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if _, err := d.messenger.Send(ctx, chatID, text); err != nil {
		d.logger.Error("Failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
