package llm

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"aetheris-backend/internal/contextutil"
)

// Client is a client for a Gemini model hosted on Vertex AI.
// It is safe for concurrent use; every call is an independent request.
type Client struct {
	Model string
	Mode  string

	models generator
	chats  chatStarter
	config *genai.GenerateContentConfig
}

// NewVertexClient creates a Client authenticated with Application Default Credentials.
func NewVertexClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("project id is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("region is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Region,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return newClient(cfg, client.Models, &chatsWrapper{chats: client.Chats})
}

func newClient(cfg Config, models generator, chats chatStarter) (*Client, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeGenerate
	}
	if mode != ModeGenerate && mode != ModeChat {
		return nil, fmt.Errorf("unknown model mode %q", cfg.Mode)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	return &Client{
		Model:  cfg.Model,
		Mode:   mode,
		models: models,
		chats:  chats,
		config: &genai.GenerateContentConfig{
			MaxOutputTokens: cfg.MaxOutputTokens,
			Temperature:     genai.Ptr(cfg.Temperature),
			TopP:            genai.Ptr(cfg.TopP),
			TopK:            genai.Ptr(cfg.TopK),
		},
	}, nil
}

// Generate sends req to the model and returns the generated text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	var (
		resp *genai.GenerateContentResponse
		err  error
	)

	if c.Mode == ModeChat {
		var chat chatSession
		chat, err = c.chats.Create(ctx, c.Model, c.chatConfig(req), nil)
		if err != nil {
			return "", fmt.Errorf("failed to start chat: %w", err)
		}
		resp, err = chat.SendMessage(ctx, genai.Part{Text: req.Message})
	} else {
		resp, err = c.models.GenerateContent(ctx, c.Model, genai.Text(req.Prompt), c.config)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractText(ctx, resp)
}

// GenerateStream sends req to the model and calls callback for each text chunk as it arrives.
func (c *Client) GenerateStream(ctx context.Context, req Request, callback func(chunk string) error) error {
	var stream iter.Seq2[*genai.GenerateContentResponse, error]

	if c.Mode == ModeChat {
		chat, err := c.chats.Create(ctx, c.Model, c.chatConfig(req), nil)
		if err != nil {
			return fmt.Errorf("failed to start chat: %w", err)
		}
		stream = chat.SendMessageStream(ctx, genai.Part{Text: req.Message})
	} else {
		stream = c.models.GenerateContentStream(ctx, c.Model, genai.Text(req.Prompt), c.config)
	}

	sent := 0
	for resp, err := range stream {
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		if err := callback(chunk); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}
		sent++
	}

	if sent == 0 {
		return ErrEmptyResponse
	}
	return nil
}

// chatConfig returns the decoding config with the page context as system instruction.
func (c *Client) chatConfig(req Request) *genai.GenerateContentConfig {
	cfg := *c.config
	cfg.SystemInstruction = &genai.Content{
		Parts: []*genai.Part{{Text: req.Context}},
	}
	return &cfg
}

// extractText returns the text of the first candidate.
func extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	logger := contextutil.LoggerFromContext(ctx)
	candidate := resp.Candidates[0]
	if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		logger.WarnContext(ctx, "model stopped early", "finish_reason", candidate.FinishReason)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w (finish reason: %s)", ErrEmptyResponse, candidate.FinishReason)
	}
	return text, nil
}

// UnavailableClient stands in for a Client that could not be created at startup.
// Every call fails with ErrClientUnavailable wrapping the original cause.
type UnavailableClient struct {
	cause error
}

// Unavailable returns a client whose calls all fail with cause.
func Unavailable(cause error) *UnavailableClient {
	return &UnavailableClient{cause: cause}
}

// Generate always fails.
func (u *UnavailableClient) Generate(ctx context.Context, req Request) (string, error) {
	return "", u.err()
}

// GenerateStream always fails.
func (u *UnavailableClient) GenerateStream(ctx context.Context, req Request, callback func(chunk string) error) error {
	return u.err()
}

func (u *UnavailableClient) err() error {
	return fmt.Errorf("%w: %w", ErrClientUnavailable, u.cause)
}
