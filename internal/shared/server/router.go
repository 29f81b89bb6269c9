package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "folio-backend/internal/auth"
	"folio-backend/internal/payments"
	"folio-backend/internal/pipeline"
	"folio-backend/internal/profiles"
	"folio-backend/internal/resumes"
	"folio-backend/internal/shared/config"
	"folio-backend/internal/shared/metrics"
	"folio-backend/internal/shared/server/middleware"
	"folio-backend/internal/shared/server/respond"
	"folio-backend/internal/usernames"
	"folio-backend/internal/users"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config           config.Config
	GoogleAuth       *googleauth.GoogleService
	UsersHandler     *users.Handler
	ResumesHandler   *resumes.Handler
	PipelineHandler  *pipeline.Handler
	UsernamesHandler *usernames.Handler
	ProfilesHandler  *profiles.Handler
	PaymentsHandler  *payments.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	// Public surface: login, published pages, username availability, and
	// the provider webhook. Keyed by client IP for rate limiting.
	public := api.Group("")
	public.Use(middleware.RateLimit(publicRateLimits()))
	deps.GoogleAuth.RegisterRoutes(public)
	deps.ProfilesHandler.RegisterRoutes(public)
	deps.UsernamesHandler.RegisterPublicRoutes(public)
	deps.ResumesHandler.RegisterPublicRoutes(public)
	deps.PaymentsHandler.RegisterPublicRoutes(public)
	deps.PaymentsHandler.RegisterWebhookRoutes(public)

	// Everything else requires a bearer token; limits are per user.
	authed := api.Group("")
	authed.Use(middleware.Auth(), middleware.RateLimit(authedRateLimits()))
	deps.UsersHandler.RegisterRoutes(authed)
	deps.ResumesHandler.RegisterRoutes(authed)
	deps.PipelineHandler.RegisterRoutes(authed)
	deps.UsernamesHandler.RegisterRoutes(authed)
	deps.PaymentsHandler.RegisterRoutes(authed)

	return r
}

func publicRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "PUBLIC",
		GroupFor: func(c *gin.Context) string {
			if c.FullPath() == "/api/v1/webhooks/payments" {
				return "WEBHOOK"
			}
			return "PUBLIC"
		},
		Rules: map[string]middleware.RateLimitRule{
			"PUBLIC":  {Rate: 10, Burst: 50},
			"WEBHOOK": {Rate: 20, Burst: 100},
		},
	}
}

func authedRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.FullPath() == "/api/v1/process-resume" {
				return "PROCESS"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 5, Burst: 20},
			// The pipeline is expensive; roughly ten runs per minute.
			"PROCESS": {Rate: 0.17, Burst: 3},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
