package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/repositories"
)

const (
	pageMargin     = 36 // points
	titleFontSize  = 16
	headerFontSize = 12
	bodyFontSize   = 10
	bodyLeading    = 12
)

// Renderer implements DocumentRenderer producing a Letter-sized PDF with a
// title block, a summary section and a full-transcript section.
type Renderer struct {
	logger *zap.Logger
}

// Ensure Renderer implements the DocumentRenderer interface
var _ repositories.DocumentRenderer = (*Renderer)(nil)

// NewRenderer creates a new PDF renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render builds the document. On any internal error it returns no bytes so
// the caller reports a rendering failure instead of sending an attachment.
func (r *Renderer) Render(doc repositories.Document) ([]byte, error) {
	p := fpdf.New("P", "pt", "Letter", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, pageMargin)
	p.AddPage()

	// Core fonts are cp1252; translate so accented Spanish text renders.
	tr := p.UnicodeTranslatorFromDescriptor("")

	p.SetFont("Helvetica", "B", titleFontSize)
	p.MultiCell(0, titleFontSize+2, tr(doc.Title), "", "L", false)
	p.Ln(12)

	p.SetFont("Helvetica", "B", headerFontSize)
	p.MultiCell(0, headerFontSize+2, tr("1. Resumen"), "", "L", false)
	p.Ln(8)

	// Each non-blank summary line becomes its own paragraph block.
	p.SetFont("Helvetica", "", bodyFontSize)
	for _, paragraph := range strings.Split(doc.Summary, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		p.MultiCell(0, bodyLeading, tr(paragraph), "", "L", false)
		p.Ln(6)
	}

	p.Ln(24)

	p.SetFont("Helvetica", "B", headerFontSize)
	p.MultiCell(0, headerFontSize+2, tr("2. Transcripción Completa"), "", "L", false)
	p.Ln(12)

	p.SetFont("Helvetica", "", bodyFontSize)
	p.MultiCell(0, bodyLeading, tr(doc.Transcript), "", "L", false)

	var buffer bytes.Buffer
	if err := p.Output(&buffer); err != nil {
		r.logger.Error("Failed to build PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}

	return buffer.Bytes(), nil
}
