package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"aetheris-backend/internal/handlers"
	"aetheris-backend/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService service.ChatService
	// StatusMessage is returned by GET /. Empty means handlers.DefaultStatusMessage.
	StatusMessage string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// CORS must run before routing so preflights for any path are answered
	r.Use(CORS)

	statusHandler := handlers.NewStatusHandler(deps.StatusMessage)
	chatHandler := handlers.NewChatHandler(deps.ChatService)

	r.Method(http.MethodGet, "/", statusHandler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
	})

	return r
}
