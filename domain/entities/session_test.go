package entities

import "testing"

func TestSessionCreation(t *testing.T) {
	session := NewSession(42)

	if session.ChatID() != 42 {
		t.Errorf("Expected chat ID 42, got %d", session.ChatID())
	}

	if session.Stage() != StageIdle {
		t.Errorf("Expected idle stage, got %d", session.Stage())
	}
}

func TestReceiveAudioAwaitsModeChoice(t *testing.T) {
	session := NewSession(1)
	session.ReceiveAudio("file-123")

	if session.Stage() != StageAwaitingModeChoice {
		t.Errorf("Expected awaiting-mode stage, got %d", session.Stage())
	}
}

func TestChooseMode(t *testing.T) {
	session := NewSession(1)
	session.ReceiveAudio("file-123")

	// Invalid reply keeps the stage so the user can be re-prompted
	if _, _, ok := session.ChooseMode("quizás"); ok {
		t.Error("Expected invalid mode word to be rejected")
	}
	if session.Stage() != StageAwaitingModeChoice {
		t.Errorf("Expected stage unchanged after invalid reply, got %d", session.Stage())
	}

	mode, fileID, ok := session.ChooseMode("  voz ")
	if !ok {
		t.Fatal("Expected trimmed lowercase reply to be accepted")
	}
	if mode != ModeSpoken {
		t.Errorf("Expected mode %s, got %s", ModeSpoken, mode)
	}
	if fileID != "file-123" {
		t.Errorf("Expected pending file file-123, got %s", fileID)
	}
	if session.Stage() != StageIdle {
		t.Errorf("Expected idle stage after choice, got %d", session.Stage())
	}
}

func TestChooseModeOutsideAwaitingStage(t *testing.T) {
	session := NewSession(1)
	if _, _, ok := session.ChooseMode("VOZ"); ok {
		t.Error("Expected mode choice to be ignored while idle")
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		text string
		mode Mode
		ok   bool
	}{
		{"VOZ", ModeSpoken, true},
		{"canto", ModeSung, true},
		{" Canto\n", ModeSung, true},
		{"cancion", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		mode, ok := ParseMode(c.text)
		if ok != c.ok || mode != c.mode {
			t.Errorf("ParseMode(%q) = (%q, %v), expected (%q, %v)", c.text, mode, ok, c.mode, c.ok)
		}
	}
}

func TestStageExclusivity(t *testing.T) {
	// The stage enum makes awaiting-mode and awaiting-correction mutually
	// exclusive; walk the full flow and check the stage at every step.
	session := NewSession(1)

	session.ReceiveAudio("file-1")
	if session.Stage() != StageAwaitingModeChoice {
		t.Fatalf("Expected awaiting-mode, got %d", session.Stage())
	}

	if _, _, ok := session.ChooseMode("CANTO"); !ok {
		t.Fatal("Expected CANTO to be accepted")
	}

	session.StoreTranscript("letra del canto")
	session.BeginCorrection()
	if session.Stage() != StageAwaitingCorrection {
		t.Fatalf("Expected awaiting-correction, got %d", session.Stage())
	}

	session.ApplyCorrection("letra corregida")
	if session.Stage() != StageIdle {
		t.Errorf("Expected idle after correction, got %d", session.Stage())
	}
	if session.FinalTranscript() != "letra corregida" {
		t.Errorf("Expected corrected text stored verbatim, got %q", session.FinalTranscript())
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	session := NewSession(1)
	session.StoreTranscript("letra del canto")

	first := session.Save()
	second := session.Save()

	if first != "letra del canto" || second != first {
		t.Errorf("Expected both saves to yield %q, got %q and %q", "letra del canto", first, second)
	}
	if session.Stage() != StageIdle {
		t.Errorf("Expected idle stage after save, got %d", session.Stage())
	}
}

func TestNewAudioOverwritesPendingReference(t *testing.T) {
	session := NewSession(1)
	session.ReceiveAudio("file-1")
	session.ReceiveAudio("file-2")

	_, fileID, ok := session.ChooseMode("VOZ")
	if !ok {
		t.Fatal("Expected mode choice to be accepted")
	}
	if fileID != "file-2" {
		t.Errorf("Expected the newer audio reference, got %s", fileID)
	}
}

func TestSingleInFlightRequest(t *testing.T) {
	session := NewSession(1)

	if !session.BeginProcessing() {
		t.Fatal("Expected first BeginProcessing to succeed")
	}
	if session.BeginProcessing() {
		t.Error("Expected second BeginProcessing to be rejected while in flight")
	}

	session.EndProcessing()
	if !session.BeginProcessing() {
		t.Error("Expected BeginProcessing to succeed after EndProcessing")
	}
}
