package api

import (
	"baro-server/auth"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface.
//
// The chat endpoints are deliberately unauthenticated: the mobile client
// calls them before any login flow. Whether they should require identity
// verification like the profile endpoints is an open product question,
// recorded in DESIGN.md rather than silently decided here.
func NewRouter(h *Handler, verifier auth.IIdentityVerifier, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)

	r.Route("/bot", func(r chi.Router) {
		r.Get("/rooms", h.ListRooms)
		r.Get("/rooms/{roomID}/messages", h.ListMessages)
		r.Post("/rooms/{roomID}/messages", h.SendMessage)
		r.Get("/rooms/{roomID}/messages/search", h.SearchMessages)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))
			r.Post("/signup", h.SignUp)
			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)
		})
	})

	r.Get("/stats", h.Stats)

	return r
}

// requestLogger logs one line per request with latency and status.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("Request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"latency", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
