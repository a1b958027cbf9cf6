package relay

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"mcp-probe/internal/config"
	"mcp-probe/internal/metrics"
	"mcp-probe/internal/provider/openai"
	"mcp-probe/internal/store"
)

// Server is the long-running relay surface: it accepts probe requests over
// HTTP, forwards them through the same builder/dispatcher as the one-shot
// mode, and relays whatever the upstream returned.
type Server struct {
	cfg     config.Config
	up      openai.Upstream
	metrics *metrics.Metrics
	store   *store.Store
}

func New(cfg config.Config, up openai.Upstream, m *metrics.Metrics, st *store.Store) *Server {
	return &Server{cfg: cfg, up: up, metrics: m, store: st}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(requestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Post("/v1/probe", s.handleProbe)
	r.Get("/v1/logs", s.handleLogs)
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		r.Header.Set("X-Request-ID", id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
