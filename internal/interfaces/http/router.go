// Package http wires repositories, usecases, handlers, and middleware into
// the gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/novastream-inc/novastream/internal/application/subscription/usecases"
	"github.com/novastream-inc/novastream/internal/infrastructure/config"
	"github.com/novastream-inc/novastream/internal/infrastructure/repository"
	subscriptionhandlers "github.com/novastream-inc/novastream/internal/interfaces/http/handlers/subscription"
	"github.com/novastream-inc/novastream/internal/interfaces/http/middleware"
	"github.com/novastream-inc/novastream/internal/interfaces/http/routes"
	"github.com/novastream-inc/novastream/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine *gin.Engine
}

// NewRouter creates a new HTTP router with all dependencies. redisClient may
// be nil, in which case the rate limiter is not installed.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	if redisClient != nil && cfg.RateLimit.RequestsPerMinute > 0 {
		engine.Use(middleware.RateLimit(redisClient, cfg.RateLimit.RequestsPerMinute))
	}

	subscriptionRepo := repository.NewSubscriptionRepository(db, log)

	subscriptionHandler := subscriptionhandlers.NewHandler(
		usecases.NewCreateSubscriptionUseCase(subscriptionRepo, log),
		usecases.NewGetSubscriptionUseCase(subscriptionRepo, log),
		usecases.NewUpdateSubscriptionUseCase(subscriptionRepo, log),
		usecases.NewCancelSubscriptionUseCase(subscriptionRepo, log),
		usecases.NewListUserSubscriptionsUseCase(subscriptionRepo, log),
		usecases.NewListSubscriptionsByDurationUseCase(subscriptionRepo, log),
		usecases.NewListPlansUseCase(),
		log,
	)

	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: subscriptionHandler,
	})

	engine.GET("/healthz", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{"status": status})
	})

	return &Router{engine: engine}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
