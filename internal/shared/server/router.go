package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-forge/internal/generations"
	"resume-forge/internal/services/health"
	"resume-forge/internal/shared/config"
	"resume-forge/internal/shared/metrics"
	"resume-forge/internal/shared/server/middleware"
	"resume-forge/internal/shared/server/respond"
	"resume-forge/internal/usage"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	GenerationHandler *generations.Handler
	UsageHandler      *usage.Handler
	Health            *health.Service
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
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	deps.GenerationHandler.RegisterRoutes(api)
	deps.UsageHandler.RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Generation requests fan out to the LLM and the compile service, so they
// get a stricter bucket than reads.
func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	perSecond := float64(cfg.RateLimitPerMin) / 60.0
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/generations" {
				return "GENERATE"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: perSecond, Burst: 5},
			"DEFAULT":  {Rate: perSecond * 4, Burst: 20},
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
