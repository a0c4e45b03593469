package routes

import (
	"quanta-backend/handlers/notifications"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func NotificationsRoutes(r *gin.Engine) {
	notificationsRoutes := r.Group("/notifications")
	notificationsRoutes.Use(middleware.JWTAuth())
	{
		notificationsRoutes.GET("", notifications.GetNotifications)
		notificationsRoutes.PUT("/:id/read", notifications.MarkNotificationRead)
	}
}
