package routes

import (
	"github.com/gin-gonic/gin"

	subscriptionhandlers "github.com/novastream-inc/novastream/internal/interfaces/http/handlers/subscription"
)

type SubscriptionRouteConfig struct {
	SubscriptionHandler *subscriptionhandlers.Handler
}

func SetupSubscriptionRoutes(engine *gin.Engine, config *SubscriptionRouteConfig) {
	api := engine.Group("/api")
	{
		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("", config.SubscriptionHandler.CreateSubscription)
			// Collection listing filters by ?userName= or ?duration= query
			// parameters so the parameterized ID routes stay unambiguous.
			subscriptions.GET("", config.SubscriptionHandler.ListSubscriptions)

			subscriptions.GET("/:id", config.SubscriptionHandler.GetSubscription)
			subscriptions.PUT("/:id", config.SubscriptionHandler.UpdateSubscription)
			subscriptions.DELETE("/:id", config.SubscriptionHandler.CancelSubscription)
		}

		api.GET("/plans", config.SubscriptionHandler.ListPlans)
	}
}
