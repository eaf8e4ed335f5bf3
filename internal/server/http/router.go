package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Options struct {
	// WebDir, when set, is served under /web/ and / redirects there.
	WebDir string
}

func NewRouter(h *Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", h.handlePing)
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.handleNewGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleState)
			r.Post("/select", h.handleSelect)
			r.Post("/move", h.handleMove)
			r.Post("/cancel", h.handleCancel)
			r.Get("/save", h.handleSave)
			r.Post("/load", h.handleLoad)
		})
	})
	r.Get("/ws/games/{id}", h.handleWS)

	if opts.WebDir != "" {
		RegisterStaticRoutes(r, opts.WebDir)
	}
	return r
}

// requestLogger is middleware.Logger writing through zerolog.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Debug().
					Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("took", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
