package router

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-supply-chain/internal/container"
	handlers "github.com/oksasatya/go-ddd-supply-chain/internal/interface/http"
	"github.com/oksasatya/go-ddd-supply-chain/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-supply-chain/internal/router/modules"
)

// mutationLimiter limits writes per principal; it is a no-op without Redis.
func mutationLimiter() gin.HandlerFunc {
	cfg := container.GetConfig()
	return middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByPrincipal(), middleware.AllowPrivateIP())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	svc := container.GetService()
	logger := container.GetLogger()
	limiter := mutationLimiter()

	r.Use(middleware.Identity(container.GetJWT()))

	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc, logger), limiter))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(svc, logger), limiter))

	if cfg.DevTokensEnabled {
		dev := handlers.NewDevHandler(container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)
		r.Add(modules.NewDevModule(dev, container.GetRedis()))
		logger.Warn("dev token endpoint enabled")
	}
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
