package main

import (
	"context"
	"log"

	"quanta-backend/db"
	_ "quanta-backend/docs"
	"quanta-backend/routes"
	"quanta-backend/utils"
	"quanta-backend/workers"

	"github.com/gin-gonic/gin"
)

// @title API Quanta Backend
// @version 1.0
// @description API for the Quanta content platform
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = utils.LogWriter()

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Media uploads will not work correctly.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewSubscriptionWorker(db.DB).Start(ctx)

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
