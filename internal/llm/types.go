package llm

import "errors"

// Call shapes. They mirror config.ModeGenerate and config.ModeChat.
const (
	ModeGenerate = "generate"
	ModeChat     = "chat"
)

var (
	// ErrClientUnavailable is returned by every call on a client that failed to initialize.
	ErrClientUnavailable = errors.New("model client unavailable")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("model returned empty response")
)

// Request is a page question in both renderings the call shapes need.
type Request struct {
	// Prompt is the full single-shot prompt (generate shape).
	Prompt string
	// Context is the page context installed as the chat's system instruction (chat shape).
	Context string
	// Message is the user turn sent into the chat (chat shape).
	Message string
}

// Config holds the Vertex AI target and the fixed decoding parameters.
type Config struct {
	ProjectID string
	Region    string
	Model     string
	// Mode is ModeGenerate or ModeChat. Empty means ModeGenerate.
	Mode string

	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            float32
}
