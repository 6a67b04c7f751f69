package entities

import (
	"strings"
	"sync"
)

// Stage is the position of a chat in the interactive flow. Exactly one stage
// holds at a time, so the awaiting-mode and awaiting-correction conditions
// can never be true together.
type Stage int

const (
	StageIdle Stage = iota
	StageAwaitingModeChoice
	StageAwaitingCorrection
)

// Mode classifies the audio content as declared by the user, not inferred
// from the audio itself.
type Mode string

const (
	ModeSpoken Mode = "VOZ"
	ModeSung   Mode = "CANTO"
)

// ParseMode interprets a user's text reply as a mode choice. The match is
// case-insensitive after trimming whitespace.
func ParseMode(text string) (Mode, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case string(ModeSpoken):
		return ModeSpoken, true
	case string(ModeSung):
		return ModeSung, true
	}
	return "", false
}

// Session is the transient per-chat state of the interactive flow. A session
// is created on the first audio receipt and its fields are overwritten when
// a new audio arrives; no history is kept.
type Session struct {
	mu sync.Mutex

	chatID          int64
	stage           Stage
	pendingFileID   string
	lastTranscript  string
	finalTranscript string
	processing      bool
}

// NewSession creates an idle session for a chat.
func NewSession(chatID int64) *Session {
	return &Session{chatID: chatID}
}

// ChatID returns the chat this session belongs to.
func (s *Session) ChatID() int64 {
	return s.chatID
}

// Stage returns the current flow stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// ReceiveAudio stores the pending audio reference and moves the session to
// the mode-choice stage. A new audio overwrites any pending reference or
// correction in progress.
func (s *Session) ReceiveAudio(fileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingFileID = fileID
	s.stage = StageAwaitingModeChoice
}

// ChooseMode consumes a text reply while a mode choice is pending. It
// returns the chosen mode and the pending file reference; ok is false when
// the reply is not a valid mode word, in which case the stage is unchanged
// so the user can be re-prompted.
func (s *Session) ChooseMode(text string) (mode Mode, fileID string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageAwaitingModeChoice {
		return "", "", false
	}
	mode, ok = ParseMode(text)
	if !ok {
		return "", "", false
	}
	s.stage = StageIdle
	return mode, s.pendingFileID, true
}

// StoreTranscript caches a sung-mode transcript pending manual review.
func (s *Session) StoreTranscript(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTranscript = text
}

// LastTranscript returns the cached sung-mode transcript.
func (s *Session) LastTranscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTranscript
}

// BeginCorrection moves the session to the correction stage; the next free
// text message becomes the final transcript.
func (s *Session) BeginCorrection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = StageAwaitingCorrection
}

// ApplyCorrection stores the corrected text as the final transcript and
// returns the session to idle. The text is stored verbatim.
func (s *Session) ApplyCorrection(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalTranscript = text
	s.stage = StageIdle
}

// Save copies the last transcript as final without modification and returns
// the saved value. Saving twice over the same transcript yields the same
// result.
func (s *Session) Save() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalTranscript = s.lastTranscript
	s.stage = StageIdle
	return s.finalTranscript
}

// FinalTranscript returns the saved final transcript.
func (s *Session) FinalTranscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalTranscript
}

// BeginProcessing marks the session as having a pipeline run in flight. It
// reports false when a run is already active, enforcing a single in-flight
// request per chat.
func (s *Session) BeginProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing {
		return false
	}
	s.processing = true
	return true
}

// EndProcessing clears the in-flight marker.
func (s *Session) EndProcessing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
}

// Processing reports whether a pipeline run is active for this chat.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}
