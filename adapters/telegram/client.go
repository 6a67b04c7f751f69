package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

const defaultTimeoutSeconds = 60

// Config holds configuration for the Telegram transport adapter.
// Required fields:
// - Token: the bot authentication token
// Optional fields with defaults:
// - TimeoutSeconds: HTTP timeout for API calls and downloads (default: 60)
type Config struct {
	Token          string
	TimeoutSeconds int
}

// Client wraps the Telegram Bot API and implements the transport interfaces
// the pipeline depends on.
type Client struct {
	api    *tgbotapi.BotAPI
	http   *http.Client
	logger *zap.Logger
}

// Ensure Client implements the transport interfaces
var (
	_ repositories.Downloader = (*Client)(nil)
	_ repositories.Messenger  = (*Client)(nil)
)

// ValidateConfig validates the Config
func ValidateConfig(config Config) error {
	if config.Token == "" {
		return fmt.Errorf("bot token is required")
	}
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must be positive, got %d", config.TimeoutSeconds)
	}
	return nil
}

// NewClient creates a new Telegram transport adapter
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	httpClient := &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}

	api, err := tgbotapi.NewBotAPIWithClient(config.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API client: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	return &Client{
		api:    api,
		http:   httpClient,
		logger: logger,
	}, nil
}

// Updates returns the long-polling update channel
func (c *Client) Updates(timeoutSeconds int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSeconds
	return c.api.GetUpdatesChan(u)
}

// StopReceivingUpdates stops the long-polling loop
func (c *Client) StopReceivingUpdates() {
	c.api.StopReceivingUpdates()
}

// AnswerCallback acknowledges an inline-button press
func (c *Client) AnswerCallback(callbackID string) {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		c.logger.Warn("Failed to answer callback query", zap.Error(err))
	}
}

// Download fetches a file payload by its opaque reference. Known
// size-rejection responses from the transport are classified as
// ErrFileTooBig so the caller can answer with guidance instead of an error.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		if isTooBigError(err) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrFileTooBig, err)
		}
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(c.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}

	c.logger.Info("Audio downloaded", zap.String("fileID", fileID), zap.Int("size", len(data)))
	return data, nil
}

// isTooBigError matches the known error texts Telegram returns when a file
// exceeds the bot download limit.
func isTooBigError(err error) bool {
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "file is too big") ||
		strings.Contains(text, "file is too large") ||
		strings.Contains(text, "too large")
}

// Send delivers a text message and returns a reference for later edits
func (c *Client) Send(ctx context.Context, chatID int64, text string) (repositories.MessageRef, error) {
	sent, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return repositories.MessageRef{}, fmt.Errorf("failed to send message: %w", err)
	}
	return repositories.MessageRef{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// Edit replaces the text of a previously sent message
func (c *Client) Edit(ctx context.Context, ref repositories.MessageRef, text string) error {
	if _, err := c.api.Send(tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)); err != nil {
		return fmt.Errorf("failed to edit message %d: %w", ref.MessageID, err)
	}
	return nil
}

// SendDocument delivers a file attachment with a caption
func (c *Client) SendDocument(ctx context.Context, chatID int64, fileName string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = caption
	if _, err := c.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// SendActions delivers a text message with one inline button per action
func (c *Client) SendActions(ctx context.Context, chatID int64, text string, actions []repositories.Action) error {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(actions))
	for _, action := range actions {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(action.Label, action.Data),
		))
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send actions: %w", err)
	}
	return nil
}
