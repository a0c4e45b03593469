package routes

import (
	"quanta-backend/handlers/content/comment"
	"quanta-backend/handlers/content/likes"
	"quanta-backend/handlers/content/views"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ContentRoutes(r *gin.Engine) {
	// Public routes
	r.GET("/content/:contentType/:contentId/comments", comment.GetComments)
	r.GET("/content/:contentType/:contentId/likes", middleware.OptionalJWTAuth(), likes.GetLikes)
	r.GET("/content/:contentType/:contentId/views", views.GetViews)
	r.POST("/content/:contentType/:contentId/view", middleware.OptionalJWTAuth(), views.RecordView)

	// Protected routes
	contentRoutes := r.Group("/content")
	contentRoutes.Use(middleware.JWTAuth())
	{
		contentRoutes.POST("/:contentType/:contentId/comments", comment.CreateComment)
		contentRoutes.DELETE("/comments/:commentId", comment.DeleteComment)
		contentRoutes.POST("/:contentType/:contentId/like", likes.ToggleLike)
	}
}
