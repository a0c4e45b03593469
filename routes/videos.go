package routes

import (
	"quanta-backend/handlers/videos"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func VideosRoutes(r *gin.Engine) {
	r.GET("/videos", middleware.OptionalJWTAuth(), videos.GetAllVideos)
	r.GET("/videos/:id", middleware.OptionalJWTAuth(), videos.GetVideoByID)

	videosRoutes := r.Group("/videos")
	videosRoutes.Use(middleware.JWTAuth())
	{
		videosRoutes.POST("", videos.CreateVideo)
		videosRoutes.PUT("/:id", videos.UpdateVideo)
		videosRoutes.DELETE("/:id", videos.DeleteVideo)
	}
}
