package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"aetheris-backend/internal/contextutil"
	"aetheris-backend/internal/service"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatRequest represents the HTTP request payload for chat.
// Pointer fields distinguish a missing key from an empty string.
type ChatRequest struct {
	URL     *string          `json:"url"`
	Title   *string          `json:"title"`
	Content *string          `json:"content"`
	Query   *string          `json:"query"`
	History []map[string]any `json:"history,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// toService checks that every required field is present and converts the
// payload to a service request.
func (r ChatRequest) toService(format string) (service.ChatRequest, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"url", r.URL},
		{"title", r.Title},
		{"content", r.Content},
		{"query", r.Query},
	}
	for _, f := range required {
		if f.value == nil {
			return service.ChatRequest{}, &service.ValidationError{Field: f.name, Message: "field required"}
		}
	}

	return service.ChatRequest{
		URL:     *r.URL,
		Title:   *r.Title,
		Content: *r.Content,
		Query:   *r.Query,
		History: r.History,
		Format:  format,
	}, nil
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	svcReq, err := req.toService(r.URL.Query().Get("format"))
	if err != nil {
		h.handleServiceError(w, ctx, err)
		return
	}

	if r.URL.Query().Get("stream") == "true" {
		h.handleStreamingChat(w, ctx, svcReq)
		return
	}

	svcResp, err := h.chatService.ProcessChat(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ChatResponse{Response: svcResp.Response}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleStreamingChat streams the answer as Server-Sent Events.
// Headers are only committed once the first chunk arrives, so failures before
// that point still get a regular JSON error response.
func (h *ChatHandler) handleStreamingChat(w http.ResponseWriter, ctx context.Context, svcReq service.ChatRequest) {
	logger := contextutil.LoggerFromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		h.writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	started := false
	start := func() {
		if started {
			return
		}
		started = true
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
	}

	err := h.chatService.StreamChat(ctx, svcReq, func(chunk string) error {
		start()
		if err := writeEvent(w, chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if !started {
			h.handleServiceError(w, ctx, err)
			return
		}
		logger.ErrorContext(ctx, "error streaming chat", "error", err)
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		_, _ = fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return
	}

	start()
	_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// writeEvent writes chunk as one SSE event. Multi-line chunks become
// several data lines, which clients join back with newlines.
func writeEvent(w http.ResponseWriter, chunk string) error {
	for _, line := range strings.Split(chunk, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

// handleServiceError maps service errors to HTTP status codes. Anything that
// is not the caller's fault is a 500 carrying the raw error text.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	if service.IsClientError(err) {
		logger.WarnContext(ctx, "rejected chat request", "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.ErrorContext(ctx, "error processing request", "error", err)
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

// writeError writes an error response.
func (h *ChatHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{
		Detail: message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
