package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aetheris-backend/internal/config"
	"aetheris-backend/internal/http"
	"aetheris-backend/internal/llm"
	"aetheris-backend/internal/markdown"
	"aetheris-backend/internal/service"
)

// Aetheris backend
//
// Answers questions about the web page a browser extension is showing, using a
// Gemini model on Vertex AI.
//
//	GET  /          service status
//	POST /api/chat  {url, title, content, query, history?} -> {response}

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create model client. A failure here is not fatal: the server still comes
	// up and every chat request reports the cause.
	var modelClient service.ModelClient
	vertexClient, err := llm.NewVertexClient(ctx, llm.Config{
		ProjectID:       cfg.ProjectID,
		Region:          cfg.Region,
		Model:           cfg.ModelName,
		Mode:            cfg.ModelMode,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
	})
	if err != nil {
		slog.Warn("Vertex AI client initialization failed, chat requests will fail", "error", err)
		modelClient = llm.Unavailable(err)
	} else {
		slog.Info("Vertex AI client initialized",
			"project", cfg.ProjectID,
			"region", cfg.Region,
			"model", cfg.ModelName,
			"mode", vertexClient.Mode,
		)
		modelClient = vertexClient
	}

	chatService := service.NewChatService(modelClient, markdown.NewRenderer(), cfg.ContentMaxChars)

	router := http.NewRouter(&http.Deps{
		ChatService: chatService,
	})

	// No WriteTimeout: model calls and SSE streams can outlast any fixed bound.
	server := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", server.Addr, "content_max_chars", cfg.ContentMaxChars)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
