package main

import (
	"log"

	"studypal-backend/internal/config"
	"studypal-backend/internal/database"
	"studypal-backend/internal/handlers"
	"studypal-backend/internal/quiz"
	"studypal-backend/internal/services"
	"studypal-backend/internal/ws"

	_ "studypal-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           StudyPal API
// @version         1.0
// @description     Adaptive quiz sessions with scoring, streaks and AI feedback
// @host            localhost:8000
// @BasePath        /

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	accountService := services.NewAccountService(db)
	generator := services.NewGeneratorService(cfg.AIAPIKey, cfg.AIAPIURL, cfg.AIModel, cfg.AITimeout)
	if !generator.IsAvailable() {
		log.Println("AI_API_KEY not set, using template questions")
	}

	var scorer quiz.Scorer = quiz.NewLocalScorer()
	if cfg.EvaluatorURL != "" {
		scorer = services.NewRemoteScorer(cfg.EvaluatorURL, cfg.EvaluatorTimeout)
	}

	var feedback quiz.FeedbackService
	if cfg.FeedbackURL != "" {
		feedback = services.NewFeedbackClient(cfg.FeedbackURL, cfg.FeedbackTimeout)
	} else {
		log.Println("FEEDBACK_URL not set, reports use the default feedback")
	}

	playService := services.NewPlayService(
		generator, scorer, accountService,
		quiz.NewFeedbackOrchestrator(feedback, cfg.FeedbackTimeout),
		hub,
	)
	sweeper, err := services.StartSweeper(playService, cfg.SweepSchedule, cfg.SessionIdleTTL)
	if err != nil {
		log.Fatalf("failed to start session sweeper: %v", err)
	}
	defer sweeper.Stop()

	userHandler := handlers.NewUserHandler(accountService)
	quizHandler := handlers.NewQuizHandler(playService, generator)
	wsHandler := handlers.NewWSHandler(hub, playService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/quiz/:id", wsHandler.HandleWebSocket)

	handlers.RegisterRoutes(r.Group("/api"), userHandler, quizHandler)

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
