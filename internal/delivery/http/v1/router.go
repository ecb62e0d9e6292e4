package v1

import (
	"net/http"

	"agentic-landing-site/config"
	"agentic-landing-site/internal/delivery/http/middleware"
	"agentic-landing-site/internal/delivery/http/response"
	"agentic-landing-site/internal/domain"
	"agentic-landing-site/pkg/audit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContentUC domain.ContentUsecase
	FormUC    domain.FormSessionUsecase
	HealthUC  domain.HealthUsecase
	// Shared rate limit store; nil keeps counters in memory
	RateCounter middleware.Counter
	Audit       *audit.Logger
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(PageTemplates())

	cfg := deps.Config

	globalLimit := middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, cfg.RateLimitWindow())
	globalLimit.Counter = deps.RateCounter
	globalLimit.Audit = deps.Audit

	contactLimit := middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, cfg.RateLimitWindow())
	contactLimit.Counter = deps.RateCounter
	contactLimit.Audit = deps.Audit
	submitGuard := middleware.RateLimitMiddleware(contactLimit)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(globalLimit))

	// Landing page
	NewPageHandler(r, deps.ContentUC, deps.FormUC, submitGuard)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Public routes
	NewContentHandler(v1, deps.ContentUC)
	NewContactFormHandler(v1, deps.FormUC, submitGuard)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
