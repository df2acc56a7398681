package internal

import (
	"context"
	"embed"
	"net/http"
	"os"

	"asset-management-app/internal/auth"
	"asset-management-app/internal/config"
	"asset-management-app/internal/gateway"
	"asset-management-app/internal/models"
	"asset-management-app/internal/session"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi
var openapiFS embed.FS

type Server struct {
	Gateway    gateway.Gateway
	Sessions   *session.Manager
	Orch       *Orchestrator
	Router     *chi.Mux
	JWTManager *auth.JWTManager
	Metrics    *Metrics

	cfg *config.Config
}

// NewServer wires the gateway, session manager and orchestrator into a
// routed HTTP server. The JWT config must already be validated.
func NewServer(gw gateway.Gateway, cfg *config.Config) *Server {
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)

	s := &Server{
		Gateway:    gw,
		Sessions:   session.NewManager(gw),
		Orch:       NewOrchestrator(gw),
		Router:     chi.NewRouter(),
		JWTManager: jwtManager,
		Metrics:    NewMetrics(),
		cfg:        cfg,
	}

	// Metrics middleware must be installed before any route is mounted.
	metricsEnabled := os.Getenv("ENABLE_METRICS") == "true"
	if metricsEnabled {
		s.Router.Use(s.Metrics.Middleware())
	}

	// Public routes (no JWT required)
	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Post("/auth/login", s.loginUser)
	s.Router.Post("/auth/register", s.registerUser)
	s.mountDocs(s.Router)

	if metricsEnabled {
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	// Create a protected route group with middleware
	s.Router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.JWTManager))

		s.mountProtectedRoutes(r)
	})

	return s
}

// gatewayCtx bounds every backend call with the configured timeout.
func (s *Server) gatewayCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.cfg.GatewayTimeout)
}

// mountDocs serves the OpenAPI spec and Swagger UI
func (s *Server) mountDocs(mux *chi.Mux) {
	if os.Getenv("ENABLE_SWAGGER") != "true" {
		return
	}

	// Serve the raw YAML
	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := openapiFS.ReadFile("openapi/openapi.yaml")
		if err != nil {
			http.Error(w, "Failed to read OpenAPI spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		w.Write([]byte(`<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Asset Management API - Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: '/openapi.yaml',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.presets.standalone
                ],
                layout: "StandaloneLayout",
                tryItOutEnabled: true
            });
        };
    </script>
</body>
</html>`))
	})
}

// mountProtectedRoutes mounts all routes that require authentication
func (s *Server) mountProtectedRoutes(r chi.Router) {
	// Asset list and detail are visible to every authenticated role;
	// writes are admin only.
	r.Get("/assets", s.listAssets)
	r.Get("/assets/export", s.exportAssets)
	r.Get("/assets/{id}", s.getAsset)
	r.Post("/assets", auth.MustRole(models.RoleAdmin)(http.HandlerFunc(s.createAsset)).(http.HandlerFunc))
	r.Put("/assets/{id}", auth.MustRole(models.RoleAdmin)(http.HandlerFunc(s.updateAsset)).(http.HandlerFunc))
	r.Delete("/assets/{id}", auth.MustRole(models.RoleAdmin)(http.HandlerFunc(s.deleteAsset)).(http.HandlerFunc))

	// Self-service routes
	r.Post("/auth/logout", s.logoutUser)
	r.Get("/auth/profile", s.getProfile)
	r.Put("/auth/profile", s.updateProfile)
}
