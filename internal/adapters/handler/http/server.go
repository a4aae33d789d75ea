package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"bioportal/internal/core/services"
)

const defaultMaxUploadBytes = 32 << 20

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Design   *services.DesignService
	Batch    *services.BatchService
	Tools    *services.ToolService
	Sessions *services.SessionService
	Auth     *services.AuthService
	Health   *services.HealthService
	Progress *services.ProgressFanout
	Hub      *Hub

	MaxUploadBytes int64
	EnableMetrics  bool
	SecureCookies  bool
}

type Server struct {
	router *chi.Mux
	deps   Deps
	http   *http.Server
}

func NewServer(deps Deps) *Server {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = defaultMaxUploadBytes
	}
	if deps.Progress == nil {
		deps.Progress = services.NewProgressFanout()
	}
	s := &Server{
		router: chi.NewRouter(),
		deps:   deps,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(MetricsMiddleware)

	if s.deps.EnableMetrics {
		s.router.Handle("/metrics", MetricsHandler())
	}

	// Kubernetes probes
	s.router.Get("/health/live", s.handleLiveness)
	s.router.Get("/health/ready", s.handleReadiness)
	s.router.Get("/api/health", s.handleReadiness)
	s.router.Get("/api/health/detailed", s.handleDetailedHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/login", s.page(s.handleLoginPage))
		r.Post("/login", s.page(s.handleLogin))
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/", s.page(s.handleHome))

			r.Route("/tools", func(r chi.Router) {
				r.Get("/rfdiffusion3", s.page(s.handleRFD3Page))
				r.Post("/rfdiffusion3", s.page(s.handleRFD3Run))
				r.Post("/rfdiffusion3/batch", s.page(s.handleRFD3Batch))
				r.Get("/alphafold", s.page(s.handleAlphaFold))
				r.Post("/alphafold", s.page(s.handleAlphaFold))
				r.Get("/proteinmpnn", s.page(s.handleMPNN))
				r.Post("/proteinmpnn", s.page(s.handleMPNN))
				r.Get("/docking", s.page(s.handleDocking))
				r.Post("/docking", s.page(s.handleDocking))
				r.Get("/admet", s.page(s.handleADMET))
				r.Post("/admet", s.page(s.handleADMET))
			})

			r.Get("/downloads/{archive}", s.handleZipDownload)
			r.Get("/downloads/{set}/{name}", s.handleDownload)

			r.Route("/api", func(r chi.Router) {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins:   []string{"*"},
					AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
					AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
					ExposedHeaders:   []string{"Link"},
					AllowCredentials: false,
					MaxAge:           300,
				}))
				r.Get("/tools", s.handleListTools)
				r.Post("/rfdiffusion3/runs", s.handleCreateRun)
				r.Get("/ws", s.handleWS)
			})
		})
	})

	s.router.NotFound(s.page(s.handleNotFound))
	s.router.MethodNotAllowed(s.page(s.handleMethodNotAllowed))
}

// Handler returns the instrumented root handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "bioportal.http",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/metrics" && r.URL.Path != "/health/live"
		}),
	)
}

// Run serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Run(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	status, code := s.deps.Health.SimpleHealthCheck(r.Context())
	w.WriteHeader(code)
	_, _ = w.Write([]byte(status))
}

func (s *Server) handleDetailedHealth(w http.ResponseWriter, r *http.Request) {
	report := s.deps.Health.CheckHealth(r.Context())

	statusCode := http.StatusOK
	if report.Status == services.HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, report)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ServeWs(s.deps.Hub, w, r)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, code int, msg, details string) {
	writeJSON(w, code, errorBody{Error: msg, Details: details})
}
