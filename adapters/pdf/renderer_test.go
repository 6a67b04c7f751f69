package pdf

import (
	"bytes"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/yescribe/transcriptor/domain/repositories"
)

func TestRenderProducesPDF(t *testing.T) {
	renderer := NewRenderer(zaptest.NewLogger(t))

	data, err := renderer.Render(repositories.Document{
		Title:      "Resumen y Transcripción de Audio",
		Summary:    "Primer párrafo.\nSegundo párrafo con acentos: transcripción, cántico.\n\n",
		Transcript: "a b c ",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Expected non-empty PDF output")
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Expected output to start with %%PDF header, got %q", data[:min(8, len(data))])
	}
}

func TestRenderLongTranscriptPaginates(t *testing.T) {
	renderer := NewRenderer(zaptest.NewLogger(t))

	long := bytes.Repeat([]byte("palabra transcrita "), 5000)
	data, err := renderer.Render(repositories.Document{
		Title:      "Documento largo",
		Summary:    "Resumen breve.",
		Transcript: string(long),
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Expected non-empty PDF output for a long transcript")
	}
}
