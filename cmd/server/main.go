package main

import (
	"log"
	"net/http"
	"os"

	"atuna_estate/internal/config"
	"atuna_estate/internal/controllers"
	"atuna_estate/internal/logger"
	"atuna_estate/internal/middleware"
	"atuna_estate/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and run migrations
	config.InitDB()

	// Wire controllers to the database and external services
	controllers.Init(config.GetDB())

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	log.Printf("Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
