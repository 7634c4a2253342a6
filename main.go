package main

import (
	"log"
	"os"

	"recycle-service/internal/database"
	"recycle-service/internal/handlers"
	"recycle-service/internal/middleware"
	"recycle-service/internal/services"
	"recycle-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	wasteTypeService := services.NewWasteTypeService(db)
	collectionPointService := services.NewCollectionPointService(db)
	rewardService := services.NewRewardService(db, wasteTypeService)
	enqueuer := worker.NewEnqueuer(asynqClient)
	transactionService := services.NewTransactionService(db, collectionPointService, wasteTypeService, rewardService, enqueuer)
	statisticsService := services.NewStatisticsService(db)
	recyclingService := services.NewRecyclingService(db, wasteTypeService)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	rewardHandler := handlers.NewRewardHandler(rewardService)
	wasteTypeHandler := handlers.NewWasteTypeHandler(wasteTypeService)
	collectionPointHandler := handlers.NewCollectionPointHandler(collectionPointService)
	recyclingHandler := handlers.NewRecyclingHandler(recyclingService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Identity())

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Recycle service",
		})
	})

	api := r.Group("/api/v1")
	auth := middleware.RequireAuth()
	admin := middleware.RequireAdmin()

	// Transactions
	api.POST("/transactions", auth, transactionHandler.Create)
	api.GET("/transactions", admin, transactionHandler.List)
	api.GET("/transactions/my", auth, transactionHandler.ListMine)
	api.GET("/transactions/statistics", admin, statisticsHandler.Transactions)
	api.GET("/transactions/:id", auth, transactionHandler.Get)
	api.PUT("/transactions/:id", auth, transactionHandler.Update)
	api.DELETE("/transactions/:id", auth, transactionHandler.Delete)
	api.PATCH("/transactions/:id/status", admin, transactionHandler.UpdateStatus)
	api.GET("/transactions/:id/history", auth, transactionHandler.History)

	// Rewards
	api.GET("/rewards/my", auth, rewardHandler.ListMine)
	api.GET("/rewards/my/total", auth, rewardHandler.TotalMine)
	api.GET("/rewards/my/statistics", auth, rewardHandler.StatisticsMine)
	api.GET("/rewards/rankings", rewardHandler.Rankings)
	api.GET("/rewards/users/:userId", admin, rewardHandler.ListUser)
	api.POST("/rewards", admin, rewardHandler.Create)
	api.GET("/rewards/:id", auth, rewardHandler.Get)
	api.PUT("/rewards/:id", admin, rewardHandler.AdjustPoints)
	api.DELETE("/rewards/:id", admin, rewardHandler.Delete)
	api.POST("/rewards/transactions/:transactionId/process", admin, rewardHandler.Reprocess)

	// Waste type directory; reads are open to any caller behind the gateway
	api.GET("/waste-types", wasteTypeHandler.List)
	api.GET("/waste-types/:id", wasteTypeHandler.Get)
	api.POST("/waste-types", admin, wasteTypeHandler.Create)
	api.PUT("/waste-types/:id", admin, wasteTypeHandler.Update)
	api.DELETE("/waste-types/:id", admin, wasteTypeHandler.Delete)

	// Collection point directory
	api.GET("/collection-points", collectionPointHandler.List)
	api.GET("/collection-points/:id", collectionPointHandler.Get)
	api.POST("/collection-points", admin, collectionPointHandler.Create)
	api.PUT("/collection-points/:id", admin, collectionPointHandler.Update)
	api.DELETE("/collection-points/:id", admin, collectionPointHandler.Delete)

	// Recycling processes
	api.POST("/recycling", admin, recyclingHandler.Create)
	api.GET("/recycling/my", auth, recyclingHandler.ListMine)
	api.GET("/recycling/report", admin, recyclingHandler.Report)
	api.GET("/recycling/:id", auth, recyclingHandler.Get)
	api.PUT("/recycling/:id", admin, recyclingHandler.Update)

	// Start Cron Schedulers
	archiveService := services.NewArchiveService(db)
	archiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
