package routes

import (
	"quanta-backend/handlers/subscriptions"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func SubscriptionsRoutes(r *gin.Engine) {
	// Payment verification is reference-based and reachable without a token,
	// the gateway redirect page may not carry one
	r.POST("/subscriptions/check-payment", subscriptions.CheckPayment)
	r.GET("/subscriptions/check-payment", subscriptions.CheckPaymentStatus)

	r.POST("/subscriptions/check-access", middleware.OptionalJWTAuth(), subscriptions.CheckAccess)

	subscriptionsRoutes := r.Group("/subscriptions")
	subscriptionsRoutes.Use(middleware.JWTAuth())
	{
		subscriptionsRoutes.POST("/create-payment", subscriptions.CreatePayment)
		subscriptionsRoutes.POST("/status", subscriptions.GetStatus)
		subscriptionsRoutes.POST("/follow", subscriptions.Follow)
		subscriptionsRoutes.POST("/unfollow", subscriptions.Unfollow)
		subscriptionsRoutes.GET("", subscriptions.GetUserSubscriptions)
		subscriptionsRoutes.DELETE("/:subscriptionId", subscriptions.CancelSubscription)
	}

	adminRoutes := r.Group("/subscriptions")
	adminRoutes.Use(middleware.AdminAuth())
	{
		adminRoutes.GET("/revenue", subscriptions.GetTotalRevenue)
		adminRoutes.GET("/top-creators", subscriptions.GetTopContentCreators)
	}
}
