package main

import (
	"log"

	"github.com/Nerfise/bossing/config"
	_ "github.com/Nerfise/bossing/docs"
	"github.com/Nerfise/bossing/middleware"
	"github.com/Nerfise/bossing/routes"
	"github.com/gin-gonic/gin"
)

// @title Bossing Shop API
// @version 1.0
// @description Checkout and profile backend for the Bossing shopping app
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()
	config.MigrateDB()

	config.ConnectRedis()
	defer config.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
