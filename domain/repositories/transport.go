package repositories

import (
	"context"
	"errors"
)

// ErrFileTooBig is the distinguished acquisition failure for payloads the
// transport refuses to hand over. It is guidance, not a real failure: the
// user is told to pre-split the audio externally.
var ErrFileTooBig = errors.New("file exceeds the transport download limit")

// Downloader fetches a raw audio payload by its opaque file reference
type Downloader interface {
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// MessageRef identifies a sent message so it can be edited later, keeping a
// single evolving status line per request
type MessageRef struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
}

// Action is a labeled inline button offered to the user
type Action struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Messenger abstracts the outbound side of the messaging transport
type Messenger interface {
	// Send delivers a text message and returns a reference to it
	Send(ctx context.Context, chatID int64, text string) (MessageRef, error)
	// Edit replaces the text of a previously sent message
	Edit(ctx context.Context, ref MessageRef, text string) error
	// SendDocument delivers a file attachment with a caption
	SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error
	// SendActions delivers a text message with inline action buttons
	SendActions(ctx context.Context, chatID int64, text string, actions []Action) error
}
