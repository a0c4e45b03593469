package routes

import (
	"quanta-backend/handlers/auth"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.POST("/auth/wallet-login", auth.WalletLogin)
	r.GET("/auth/me", middleware.JWTAuth(), auth.GetMe)
}
