package routes

import (
	"quanta-backend/handlers/users"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	// Public routes. The wallet lookup lives under its own prefix, gin does not
	// allow a static segment next to the :id wildcard.
	r.GET("/users/:id", users.GetUserByID)
	r.GET("/wallets/:wallet", users.GetUserByWallet)

	// Protected routes
	usersRoutes := r.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.PUT("/me", users.UpdateMe)
	}
}
