package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"recycle-service/internal/consumers"
	"recycle-service/internal/database"
	"recycle-service/internal/services"
	"recycle-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Init Services
	wasteTypeService := services.NewWasteTypeService(db)
	rewardService := services.NewRewardService(db, wasteTypeService)

	// Processor
	processor := consumers.NewRewardProcessor(db, rewardService)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
