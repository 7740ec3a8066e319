package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantMessage string
	}{
		{name: "default message", message: "", wantMessage: DefaultStatusMessage},
		{name: "custom message", message: "up", wantMessage: "up"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewStatusHandler(tt.message)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("ServeHTTP() status = %v, want %v", w.Code, http.StatusOK)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("ServeHTTP() Content-Type = %q, want application/json", ct)
			}

			var resp StatusResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("ServeHTTP() invalid JSON: %v", err)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("ServeHTTP() message = %q, want %q", resp.Message, tt.wantMessage)
			}
		})
	}
}
