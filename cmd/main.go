package main

import (
	"fmt"
	"os"

	redisbus "github.com/saemcare/saem-backend/internal/clients/redis"
	"github.com/saemcare/saem-backend/internal/db"
	"github.com/saemcare/saem-backend/internal/handlers"
	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/repos"
	"github.com/saemcare/saem-backend/internal/server"
	"github.com/saemcare/saem-backend/internal/services"
	"github.com/saemcare/saem-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	embedConcurrency := utils.GetEnvAsInt("REPORT_EMBED_CONCURRENCY", 4, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	elderRepo := repos.NewElderRepo(thePG, log)
	guideRepo := repos.NewActivityGuideRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	reportRepo := repos.NewReportRepo(thePG, log)
	analysisRepo := repos.NewAnalysisRepo(thePG, log)

	// Redis (optional; reports still work without the event bus)
	var reportBus redisbus.ReportBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err := redisbus.NewReportBus(log)
		if err != nil {
			log.Warn("Could not init report bus, events disabled", "error", err)
		} else {
			reportBus = bus
			defer bus.Close()
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	reportService := services.NewReportService(
		thePG,
		log,
		elderRepo,
		guideRepo,
		questionRepo,
		answerRepo,
		reportRepo,
		analysisRepo,
		openaiClient,
		reportBus,
		embedConcurrency,
	)

	// Handlers
	log.Info("Setting up handlers from main...")
	reportHandler := handlers.NewReportHandler(reportService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ReportHandler: reportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
