package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/yescribe/transcriptor/adapters/llm"
	"github.com/yescribe/transcriptor/adapters/pdf"
	"github.com/yescribe/transcriptor/adapters/stt"
	"github.com/yescribe/transcriptor/adapters/telegram"
	"github.com/yescribe/transcriptor/domain/repositories"
	"github.com/yescribe/transcriptor/internal/api"
	"github.com/yescribe/transcriptor/internal/audio"
	"github.com/yescribe/transcriptor/internal/bot"
	"github.com/yescribe/transcriptor/internal/config"
	"github.com/yescribe/transcriptor/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize adapters
	client, err := telegram.NewClient(telegram.Config{
		Token:          cfg.BotToken,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create telegram client", zap.Error(err))
	}

	transcriber, err := stt.NewWhisperTranscriber(stt.WhisperConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.WhisperModel,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create transcriber", zap.Error(err))
	}

	model, err := newSummaryModel(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create summary model", zap.Error(err))
	}

	// Initialize usecase services
	stats := usecase.NewStats()
	pipeline := usecase.NewPipelineService(
		client,
		client,
		audio.NewProcessor(logger),
		transcriber,
		usecase.NewSummarizer(model, logger),
		pdf.NewRenderer(logger),
		stats,
		logger,
		usecase.DefaultPipelineConfig(),
	)

	dispatcher := bot.NewDispatcher(client, client, bot.NewSessions(), pipeline, logger)
	go dispatcher.Run(ctx)

	// Ops endpoints
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	api.InitRoutes(e, stats, logger)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Transcriptor bot started",
		zap.String("port", cfg.HTTPPort),
		zap.String("summaryProvider", cfg.SummaryProvider))

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Bot exited")
}

// newSummaryModel selects the summarization backend by configuration.
func newSummaryModel(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.LargeLanguageModel, error) {
	if cfg.SummaryProvider == config.ProviderGemini {
		return llm.NewGeminiLLM(ctx, llm.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.SummaryModel,
			TimeoutSeconds: cfg.TimeoutSeconds,
		}, logger)
	}
	return llm.NewOpenAILLM(llm.OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.SummaryModel,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, logger)
}
