package handlers

import (
	"net/http"
)

// DefaultStatusMessage is reported by StatusHandler when no message is configured.
const DefaultStatusMessage = "Aetheris Backend (Vertex AI Powered) is running"

// StatusHandler reports that the process is up. It does not probe the model,
// so it answers 200 even when the model client is unavailable.
type StatusHandler struct {
	message string
}

// NewStatusHandler creates a new StatusHandler. An empty message falls back to DefaultStatusMessage.
func NewStatusHandler(message string) *StatusHandler {
	if message == "" {
		message = DefaultStatusMessage
	}
	return &StatusHandler{message: message}
}

// StatusResponse represents the status response.
type StatusResponse struct {
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for the service status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Message: h.message})
}
