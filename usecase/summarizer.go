package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/domain/entities"
	"github.com/yescribe/transcriptor/domain/repositories"
)

// MaxSummaryInputChars bounds how much of the transcript is submitted for
// summarization. The cut is a hard character truncation, accepted as lossy.
const MaxSummaryInputChars = 8000

// summaryTemperature keeps provider variance low without eliminating it.
const summaryTemperature = 0.2

const summarySystemPrompt = "Eres un asistente experto en resumir textos extensos."

const summaryInstruction = "Resume el siguiente contenido en español en un máximo de TRES párrafos claros y concisos. " +
	"Extrae únicamente las ideas principales, conclusiones y temas relevantes. " +
	"No agregues información externa ni títulos.\n\n---\n\n"

// Summarizer produces a bounded prose summary of a transcript through a
// language-model provider.
type Summarizer struct {
	llm      repositories.LargeLanguageModel
	logger   *zap.Logger
	maxChars int
}

// NewSummarizer creates a new summarizer over the given provider
func NewSummarizer(llm repositories.LargeLanguageModel, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		llm:      llm,
		logger:   logger,
		maxChars: MaxSummaryInputChars,
	}
}

// Summarize submits the transcript prefix with the fixed instruction
// template and returns the generated summary.
func (s *Summarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	input := entities.Prefix(transcript, s.maxChars)

	s.logger.Info("Generating summary",
		zap.Int("transcriptLength", len(transcript)),
		zap.Int("inputLength", len(input)))

	messages := []repositories.ChatMessage{
		{Role: repositories.SystemRole, Content: summarySystemPrompt},
		{Role: repositories.UserRole, Content: summaryInstruction + input},
	}

	return s.llm.Complete(ctx, messages, summaryTemperature)
}
