package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const defaultHandlerTimeout = 30 * time.Second

type Server struct{ mux *chi.Mux }

// New builds the router. timeout bounds each handler and should exceed the
// backend client timeout, so a slow backend surfaces as an error block rather
// than a cut-off page.
func New(timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	m.Use(Session)

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
