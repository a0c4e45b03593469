package routes

import (
	"quanta-backend/handlers/articles"
	"quanta-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ArticlesRoutes(r *gin.Engine) {
	// Public routes, the optional token unlocks premium content and ?mine=true
	r.GET("/articles", middleware.OptionalJWTAuth(), articles.GetAllArticles)
	r.GET("/articles/:id", middleware.OptionalJWTAuth(), articles.GetArticleByID)

	// Protected routes
	articlesRoutes := r.Group("/articles")
	articlesRoutes.Use(middleware.JWTAuth())
	{
		articlesRoutes.POST("", articles.CreateArticle)
		articlesRoutes.PUT("/:id", articles.UpdateArticle)
		articlesRoutes.DELETE("/:id", articles.DeleteArticle)
	}
}
