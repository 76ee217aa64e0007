package main

import (
	"log"
	"os"
	"time"

	"poll-service/internal/cache"
	"poll-service/internal/db"
	"poll-service/internal/event"
	"poll-service/internal/handlers"
	"poll-service/internal/middleware"
	"poll-service/internal/repository"
	"poll-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db.InitMongo(mongoURI)
	defer db.DisconnectMongo()

	// Redis poll-view cache; optional
	var pollCache *cache.PollCache
	if os.Getenv("REDIS_ADDR") != "" {
		db.InitRedis()
		pollCache = cache.NewPollCache(db.RedisClient, 5*time.Minute)
	} else {
		log.Println("Redis not configured, poll views will not be cached")
	}

	// RabbitMQ event publisher; optional
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, poll events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("poll_service")

	pollRepo := repository.NewPollRepository(database)
	submissionRepo := repository.NewSubmissionRepository(database)
	analyticsRepo := repository.NewAnalyticsRepository(database)

	pollService := service.NewPollService(pollRepo, analyticsRepo, pollCache, publisher)
	submissionService := service.NewSubmissionService(pollRepo, submissionRepo, analyticsRepo, pollCache, publisher, db.Client)
	analyticsService := service.NewAnalyticsService(pollRepo, submissionRepo, analyticsRepo)

	pollHandler := handlers.NewPollHandler(pollService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	v1 := r.Group("/api/v1")

	// Public participant surface
	poll := v1.Group("/poll")
	{
		poll.POST("/submit", submissionHandler.Submit)
		poll.GET("/", pollHandler.ListPolls)
		poll.GET("/:id", pollHandler.GetPoll)
	}

	// Creator surface
	manage := v1.Group("/manage/poll")
	manage.Use(middleware.RequireAuth([]byte(jwtSecret)))
	{
		manage.POST("/", pollHandler.CreatePoll)
		manage.GET("/:id", pollHandler.GetOwnedPoll)
		manage.PUT("/:id", pollHandler.UpdatePoll)
		manage.DELETE("/:id", pollHandler.DeletePoll)

		manage.POST("/:id/question", pollHandler.AddQuestion)
		manage.PUT("/:id/question/:qid", pollHandler.UpdateQuestion)
		manage.POST("/:id/question/:qid/choice", pollHandler.AddChoice)
		manage.DELETE("/:id/question/:qid/choice/:cid", pollHandler.DeactivateChoice)

		manage.GET("/:id/submissions", submissionHandler.ListSubmissions)
		manage.GET("/:id/submissions/:sid", submissionHandler.GetSubmission)
		manage.GET("/:id/analytics", analyticsHandler.GetSummary)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
