package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Briefer produces a scenario briefing for a date and mitigation choice.
type Briefer interface {
	Briefing(ctx context.Context, date, choice string) (domain.ResponsePayload, error)
}

// Options configures the HTTP surface.
type Options struct {
	Addr           string
	StaticDir      string
	AllowedOrigins []string
}

// Server exposes the briefing API, the static front end, and health,
// readiness and metrics endpoints.
type Server struct {
	httpServer *http.Server
	briefer    Briefer
	staticDir  string
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, static and operational routes.
func NewServer(opts Options, briefer Briefer, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		briefer:   briefer,
		staticDir: opts.StaticDir,
		logger:    logger,
	}

	mux.HandleFunc("GET /asteroid", s.handleAsteroid)
	mux.HandleFunc("GET /demo", s.handleDemo)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	var handler http.Handler = mux
	handler = requestLogger(logger)(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)(handler)

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAsteroid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	payload, err := s.briefer.Briefing(r.Context(), q.Get("date"), q.Get("choice"))
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, payload)
}

func (s *Server) handleDemo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, domain.DemoPayload())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}
