//go:build !lambda
// +build !lambda

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "github.com/kinlabs/kin-paymaster/docs"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/server"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		// Missing .env is fine when variables are set directly in the
		// environment.
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	logger.InitLogger()
	defer logger.Sync()

	r := gin.Default()
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	log.Printf("Server starting on :8000")
	if err := r.Run(":8000"); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
