package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_model_client.go -package=mocks aetheris-backend/internal/service ModelClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService aetheris-backend/internal/service ChatService

import (
	"context"
	"fmt"

	"aetheris-backend/internal/contextutil"
	"aetheris-backend/internal/llm"
	"aetheris-backend/internal/prompt"
)

// Response formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// ModelClient is an interface for the remote generation model.
// This interface is defined from the service layer's perspective (consumer-first).
type ModelClient interface {
	// Generate sends a request to the model and returns the generated text.
	Generate(ctx context.Context, req llm.Request) (string, error)
	// GenerateStream sends a request to the model and streams the text via callback.
	GenerateStream(ctx context.Context, req llm.Request, callback func(chunk string) error) error
}

// Renderer converts a Markdown answer to HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// ChatRequest is a question about a webpage.
type ChatRequest struct {
	URL     string
	Title   string
	Content string
	Query   string
	// History is accepted from clients but not sent to the model.
	History []map[string]any
	// Format is FormatText (default) or FormatHTML.
	Format string
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Response string
}

// ChatService provides chat functionality.
type ChatService interface {
	// ProcessChat answers a question about a page.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	// StreamChat answers a question about a page and streams the answer via callback.
	StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error
}

// chatService implements ChatService.
type chatService struct {
	modelClient ModelClient
	renderer    Renderer
	contentCap  int
}

// NewChatService creates a new ChatService. Page content longer than contentCap
// characters is cut before it reaches the model. renderer may be nil, in which
// case HTML output is rejected.
func NewChatService(modelClient ModelClient, renderer Renderer, contentCap int) ChatService {
	return &chatService{
		modelClient: modelClient,
		renderer:    renderer,
		contentCap:  contentCap,
	}
}

// ProcessChat processes a chat request.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.validate(req); err != nil {
		logger.WarnContext(ctx, "invalid chat request", "error", err)
		return ChatResponse{}, err
	}

	modelReq := s.buildRequest(ctx, req)

	reply, err := s.modelClient.Generate(ctx, modelReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get model response", "error", err, "url", req.URL)
		return ChatResponse{}, fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	if req.Format == FormatHTML {
		html, err := s.renderer.Render(reply)
		if err != nil {
			logger.ErrorContext(ctx, "failed to render response", "error", err)
			return ChatResponse{}, WrapError(err, "failed to render response")
		}
		reply = html
	}

	logger.InfoContext(ctx, "chat request processed successfully",
		"query_length", len(req.Query),
		"reply_length", len(reply),
	)
	return ChatResponse{
		Response: reply,
	}, nil
}

// StreamChat processes a chat request and streams the response.
// Streamed chunks are always raw model text.
func (s *chatService) StreamChat(ctx context.Context, req ChatRequest, callback func(chunk string) error) error {
	logger := contextutil.LoggerFromContext(ctx)

	if err := s.validate(req); err != nil {
		logger.WarnContext(ctx, "invalid streaming chat request", "error", err)
		return err
	}

	modelReq := s.buildRequest(ctx, req)

	if err := s.modelClient.GenerateStream(ctx, modelReq, callback); err != nil {
		logger.ErrorContext(ctx, "failed to stream model response", "error", err, "url", req.URL)
		return fmt.Errorf("%w: %w", ErrExternalService, err)
	}

	logger.InfoContext(ctx, "streaming chat request processed successfully", "query_length", len(req.Query))
	return nil
}

func (s *chatService) validate(req ChatRequest) error {
	switch req.Format {
	case "", FormatText:
	case FormatHTML:
		if s.renderer == nil {
			return &ValidationError{Field: "format", Message: "html output is not available"}
		}
	default:
		return &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported format %q", req.Format)}
	}
	return nil
}

// buildRequest truncates the page content and renders both prompt shapes.
func (s *chatService) buildRequest(ctx context.Context, req ChatRequest) llm.Request {
	logger := contextutil.LoggerFromContext(ctx)

	page := prompt.Page{
		URL:     req.URL,
		Title:   req.Title,
		Content: prompt.Truncate(req.Content, s.contentCap),
	}

	logger.DebugContext(ctx, "prompt assembled",
		"url", req.URL,
		"content_length", len(req.Content),
		"forwarded_content_length", len(page.Content),
		"truncated", len(page.Content) < len(req.Content),
		"history_length", len(req.History),
	)

	return llm.Request{
		Prompt:  prompt.Build(page, req.Query),
		Context: prompt.BuildContext(page),
		Message: req.Query,
	}
}
