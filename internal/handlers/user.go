package handlers

import (
	"net/http"

	"studypal-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	accountService *services.AccountService
}

func NewUserHandler(accountService *services.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100" example:"Student42"`
	Email    string `json:"email" binding:"required,email" example:"student42@studypal.com"`
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User data"
// @Success      201 {object} User
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.accountService.CreateUser(req.Username, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} User
// @Failure      404 {object} ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	user, err := h.accountService.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetStats godoc
// @Summary      Get user statistics
// @Description  Totals and accuracy over all study sessions of the user
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} services.UserStats
// @Failure      404 {object} ErrorResponse
// @Router       /api/users/{id}/stats [get]
func (h *UserHandler) GetStats(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	stats, err := h.accountService.Stats(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SuggestDifficulty godoc
// @Summary      Suggest a difficulty
// @Description  Based on accuracy over the five most recent study sessions
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} services.DifficultySuggestion
// @Failure      404 {object} ErrorResponse
// @Router       /api/users/{id}/suggest-difficulty [get]
func (h *UserHandler) SuggestDifficulty(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	suggestion, err := h.accountService.SuggestDifficulty(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// Leaderboard godoc
// @Summary      Top users by points
// @Tags         users
// @Produce      json
// @Success      200 {array} User
// @Router       /api/leaderboard [get]
func (h *UserHandler) Leaderboard(c *gin.Context) {
	users, err := h.accountService.Leaderboard(10)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
