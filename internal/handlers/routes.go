package handlers

import "github.com/gin-gonic/gin"

func RegisterRoutes(api *gin.RouterGroup, userHandler *UserHandler, quizHandler *QuizHandler) {
	users := api.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/stats", userHandler.GetStats)
		users.GET("/:id/suggest-difficulty", userHandler.SuggestDifficulty)
	}
	api.GET("/leaderboard", userHandler.Leaderboard)

	api.GET("/ai-status", quizHandler.CheckAI)
	api.POST("/questions/generate", quizHandler.GenerateQuestions)

	quizzes := api.Group("/quizzes")
	{
		quizzes.POST("", quizHandler.StartQuiz)
		quizzes.GET("/:id", quizHandler.GetQuiz)
		quizzes.POST("/:id/answer", quizHandler.SubmitAnswer)
		quizzes.POST("/:id/next", quizHandler.NextQuestion)
		quizzes.POST("/:id/report", quizHandler.Report)
		quizzes.DELETE("/:id", quizHandler.DiscardQuiz)
	}
}
