package routes

import (
	"quanta-backend/handlers/audio"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AudioRoutes(r *gin.Engine) {
	r.GET("/audio", middleware.OptionalJWTAuth(), audio.GetAllAudio)
	r.GET("/audio/:id", middleware.OptionalJWTAuth(), audio.GetAudioByID)

	audioRoutes := r.Group("/audio")
	audioRoutes.Use(middleware.JWTAuth())
	{
		audioRoutes.POST("", audio.CreateAudio)
		audioRoutes.PUT("/:id", audio.UpdateAudio)
		audioRoutes.DELETE("/:id", audio.DeleteAudio)
	}
}
