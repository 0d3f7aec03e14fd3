package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"customerapp/internal/adapter/http/handler"
	"customerapp/internal/adapter/http/middleware"
	"customerapp/internal/adapter/telemetry"
	"customerapp/pkg/config"
)

// BatchRoute is the rate limiter key of the batch lookup.
const BatchRoute = "POST " + handler.CustomersPath + "/batch"

type HandlersConfig struct {
	CustomerHandler *handler.CustomerHandler
}

// Options carries the optional pieces of the middleware chain. Nil values
// disable the corresponding middleware.
type Options struct {
	Config  *config.AppConfig
	Logger  *config.LokiLogger
	Metrics *telemetry.AppMetrics
}

func SetupRouter(handlers HandlersConfig, opts Options) *gin.Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}

	logger := opts.Logger
	if logger == nil {
		logger = config.NewNopLogger()
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))

	if opts.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	router.Use(middleware.NewHTTPSEnforcer(cfg.EnforceHTTPS, logger.Logger.Logger).HTTPSMiddleware())
	router.Use(middleware.CORSMiddleware())

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			Requests: cfg.RateLimitRequests,
			Window:   cfg.RateLimitWindow,
		}, logger.Logger.Logger, opts.Metrics)
		limiter.SetConfig(BatchRoute, middleware.RateLimitConfig{
			Requests: cfg.RateLimitBatchRequests,
			Window:   cfg.RateLimitWindow,
		})
		router.Use(limiter.RateLimitMiddleware())
	}

	if handlers.CustomerHandler != nil {
		setupCustomerRoutes(router, handlers.CustomerHandler)
	}

	return router
}

func setupCustomerRoutes(router *gin.Engine, h *handler.CustomerHandler) {
	router.GET("/health", h.Health)

	customers := router.Group(handler.CustomersPath)
	{
		customers.POST("/register", h.Register)
		customers.POST("/batch", h.GetBatch)
		customers.GET("", h.List)
		customers.GET("/cpf/:cpf", h.GetByCPF)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}
