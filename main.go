// @title QuizMaster API
// @version 1.0
// @description Backend server for the QuizMaster exam preparation platform.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"quizmaster_backend/internal/app"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
