package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa-backend/internal/answers"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/services/health"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/server/respond"
)

// RouterDeps holds handlers needed to build the router.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	AnswerHandler   *answers.Handler
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	cfg := deps.Config

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Session(cfg.SessionsEnabled),
		middleware.LegacyStatus(cfg.LegacyStatusCodes),
	)
	if cfg.AnswerRateLimit > 0 && cfg.AnswerRateBurst > 0 {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rule:    middleware.RateLimitRule{Rate: cfg.AnswerRateLimit, Burst: cfg.AnswerRateBurst},
			Limited: isAnswerRequest,
		}))
	}

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(cfg.QAProvider, cfg.ModelName)
	}
	healthHandler := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	}

	r.GET("/health", healthHandler)
	r.GET("/metrics", metrics.Handler())

	// The browser client posts to the root paths.
	deps.DocumentHandler.RegisterRoutes(r)
	deps.AnswerHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler)
	deps.DocumentHandler.RegisterRoutes(api)
	deps.AnswerHandler.RegisterRoutes(api)

	return r
}

func isAnswerRequest(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		return false
	}
	switch c.FullPath() {
	case "/answer", "/api/v1/answer":
		return true
	default:
		return false
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
