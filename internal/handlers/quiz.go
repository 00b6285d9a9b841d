package handlers

import (
	"net/http"

	"studypal-backend/internal/quiz"
	"studypal-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	playService *services.PlayService
	generator   *services.GeneratorService
}

func NewQuizHandler(playService *services.PlayService, generator *services.GeneratorService) *QuizHandler {
	return &QuizHandler{playService: playService, generator: generator}
}

type GenerateQuestionsRequest struct {
	Topic        string `json:"topic" binding:"required,min=1,max=200" example:"Photosynthesis"`
	Difficulty   string `json:"difficulty" binding:"required,oneof=easy medium hard" example:"medium"`
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=20" example:"5"`
}

type StartQuizRequest struct {
	UserID uint `json:"user_id" example:"1"`
	GenerateQuestionsRequest
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required" example:"Chlorophyll"`
}

type ReportRequest struct {
	Liked bool `json:"liked" example:"true"`
}

type QuestionsResponse struct {
	Questions []quiz.Question `json:"questions"`
}

// CheckAI godoc
// @Summary      Check if AI question generation is configured
// @Tags         quizzes
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/ai-status [get]
func (h *QuizHandler) CheckAI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available": h.generator.IsAvailable()})
}

// GenerateQuestions godoc
// @Summary      Generate questions
// @Description  Generate multiple choice questions without starting a session. Falls back to template questions when the AI backend fails.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body GenerateQuestionsRequest true "Generation parameters"
// @Success      200 {object} QuestionsResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/questions/generate [post]
func (h *QuizHandler) GenerateQuestions(c *gin.Context) {
	var req GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	questions, err := h.generator.Generate(c.Request.Context(), req.Topic, quiz.Difficulty(req.Difficulty), req.NumQuestions)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, QuestionsResponse{Questions: questions})
}

// StartQuiz godoc
// @Summary      Start a quiz session
// @Description  Generates questions for the topic and opens a session awaiting the first answer. user_id 0 plays anonymously.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body StartQuizRequest true "Quiz parameters"
// @Success      201 {object} services.PlayState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quizzes [post]
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.playService.Start(c.Request.Context(), req.UserID, req.Topic, quiz.Difficulty(req.Difficulty), req.NumQuestions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetQuiz godoc
// @Summary      Get quiz session state
// @Description  Current question, or the revealed outcome after an answer
// @Tags         quizzes
// @Produce      json
// @Param        id path string true "Quiz session ID"
// @Success      200 {object} services.PlayState
// @Failure      404 {object} ErrorResponse
// @Router       /api/quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	state, err := h.playService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitAnswer godoc
// @Summary      Submit an answer
// @Description  Scores the answer for the current question and reveals the outcome
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quiz session ID"
// @Param        request body SubmitAnswerRequest true "Selected option"
// @Success      200 {object} services.PlayState
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/quizzes/{id}/answer [post]
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.playService.SubmitAnswer(c.Request.Context(), c.Param("id"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// NextQuestion godoc
// @Summary      Move to next question
// @Description  Leaves the reveal state. Completes the quiz after the last question.
// @Tags         quizzes
// @Produce      json
// @Param        id path string true "Quiz session ID"
// @Success      200 {object} services.PlayState
// @Failure      409 {object} ErrorResponse
// @Router       /api/quizzes/{id}/next [post]
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	state, err := h.playService.Next(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Report godoc
// @Summary      Get the session report
// @Description  Builds the report of a completed quiz and asks the feedback service for feedback and bonus points
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        id path string true "Quiz session ID"
// @Param        request body ReportRequest false "Whether the user liked the quiz"
// @Success      200 {object} services.ReportResult
// @Failure      409 {object} ErrorResponse
// @Router       /api/quizzes/{id}/report [post]
func (h *QuizHandler) Report(c *gin.Context) {
	var req ReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	result, err := h.playService.Report(c.Request.Context(), c.Param("id"), req.Liked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DiscardQuiz godoc
// @Summary      Discard a quiz session
// @Tags         quizzes
// @Produce      json
// @Param        id path string true "Quiz session ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quizzes/{id} [delete]
func (h *QuizHandler) DiscardQuiz(c *gin.Context) {
	if err := h.playService.Discard(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "quiz discarded"})
}
