package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studypal-backend/internal/database"
	"studypal-backend/internal/quiz"
	"studypal-backend/internal/services"
	"studypal-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	accounts := services.NewAccountService(db)
	generator := services.NewGeneratorService("", "http://127.0.0.1:1", "none", time.Second)
	hub := ws.NewHub()
	play := services.NewPlayService(generator, nil, accounts, quiz.NewFeedbackOrchestrator(nil, 0), hub)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewUserHandler(accounts), NewQuizHandler(play, generator))
	r.GET("/ws/quiz/:id", NewWSHandler(hub, play).HandleWebSocket)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type stateBody struct {
	ID             string `json:"id"`
	State          string `json:"state"`
	CurrentIndex   int    `json:"current_index"`
	TotalQuestions int    `json:"total_questions"`
	Score          int    `json:"score"`
	Question       *struct {
		Text    string   `json:"question"`
		Options []string `json:"options"`
	} `json:"question"`
	Outcome *struct {
		IsCorrect     bool   `json:"is_correct"`
		PointsEarned  int    `json:"points_earned"`
		CorrectAnswer string `json:"correct_answer"`
	} `json:"outcome"`
	Account *struct {
		TotalPoints   int `json:"total_points"`
		CurrentStreak int `json:"current_streak"`
	} `json:"account"`
}

func TestUserEndpoints(t *testing.T) {
	r := newTestRouter(t)

	var user map[string]interface{}
	code := doJSON(t, r, http.MethodPost, "/api/users", gin.H{"username": "ana", "email": "ana@studypal.com"}, &user)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "ana", user["username"])

	var errBody ErrorResponse
	code = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"username": "ana", "email": "other@studypal.com"}, &errBody)
	assert.Equal(t, http.StatusConflict, code)

	code = doJSON(t, r, http.MethodPost, "/api/users", gin.H{"username": "bob", "email": "not-an-email"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, r, http.MethodGet, "/api/users/abc", nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid user id", errBody.Error)

	code = doJSON(t, r, http.MethodGet, "/api/users/999", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, code)

	var suggestion map[string]interface{}
	code = doJSON(t, r, http.MethodGet, "/api/users/1/suggest-difficulty", nil, &suggestion)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "medium", suggestion["suggested_difficulty"])

	var board []map[string]interface{}
	code = doJSON(t, r, http.MethodGet, "/api/leaderboard", nil, &board)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, board, 1)
}

func TestQuizFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/users",
		gin.H{"username": "kim", "email": "kim@studypal.com"}, nil))

	var st stateBody
	code := doJSON(t, r, http.MethodPost, "/api/quizzes", gin.H{
		"user_id": 1, "topic": "biology", "difficulty": "hard", "num_questions": 2,
	}, &st)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "awaiting_answer", st.State)
	assert.Equal(t, 2, st.TotalQuestions)
	require.NotNil(t, st.Question)
	id := st.ID

	var errBody ErrorResponse
	code = doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/next", nil, &errBody)
	assert.Equal(t, http.StatusConflict, code)

	code = doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/answer", gin.H{"answer": "made up"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/report", nil, &errBody)
	assert.Equal(t, http.StatusConflict, code)

	for i := 0; i < 2; i++ {
		var cur stateBody
		require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/quizzes/"+id, nil, &cur))
		require.NotNil(t, cur.Question)
		assert.Equal(t, i, cur.CurrentIndex)

		answer := ""
		for _, o := range cur.Question.Options {
			if strings.HasPrefix(o, "Correct understanding") {
				answer = o
			}
		}
		var scored stateBody
		require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/answer", gin.H{"answer": answer}, &scored))
		assert.Equal(t, "revealing", scored.State)
		require.NotNil(t, scored.Outcome)
		assert.True(t, scored.Outcome.IsCorrect)
		assert.Equal(t, 30, scored.Outcome.PointsEarned)
		require.NotNil(t, scored.Account)
		assert.Equal(t, 30*(i+1), scored.Account.TotalPoints)

		code = doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/answer", gin.H{"answer": answer}, &errBody)
		assert.Equal(t, http.StatusConflict, code)

		require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/next", nil, &cur))
	}

	var report struct {
		Report struct {
			FinalScore      int     `json:"final_score"`
			CorrectCount    int     `json:"correct_count"`
			AccuracyPercent float64 `json:"accuracy_percent"`
			FeedbackText    string  `json:"feedback_text"`
			BonusGiven      bool    `json:"bonus_given"`
		} `json:"report"`
	}
	code = doJSON(t, r, http.MethodPost, "/api/quizzes/"+id+"/report", gin.H{"liked": true}, &report)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 60, report.Report.FinalScore)
	assert.Equal(t, 2, report.Report.CorrectCount)
	assert.Equal(t, 100.0, report.Report.AccuracyPercent)
	assert.Equal(t, quiz.FallbackFeedback, report.Report.FeedbackText)
	assert.False(t, report.Report.BonusGiven)

	var msg MessageResponse
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, "/api/quizzes/"+id, nil, &msg))
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/api/quizzes/"+id, nil, &errBody))
}

func TestStartQuizValidation(t *testing.T) {
	r := newTestRouter(t)
	var errBody ErrorResponse

	code := doJSON(t, r, http.MethodPost, "/api/quizzes", gin.H{"topic": "x", "difficulty": "impossible"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, r, http.MethodPost, "/api/quizzes", gin.H{"difficulty": "easy"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, r, http.MethodPost, "/api/quizzes", gin.H{"user_id": 42, "topic": "x", "difficulty": "easy"}, &errBody)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGenerateAndAIStatus(t *testing.T) {
	r := newTestRouter(t)

	var status map[string]bool
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/ai-status", nil, &status))
	assert.False(t, status["available"])

	var qs QuestionsResponse
	code := doJSON(t, r, http.MethodPost, "/api/questions/generate", gin.H{"topic": "chemistry", "difficulty": "easy", "num_questions": 3}, &qs)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, qs.Questions, 3)
	for _, q := range qs.Questions {
		assert.NoError(t, q.Validate())
	}
}

type slowScorer struct{}

func (slowScorer) Score(ctx context.Context, _ quiz.ScoreRequest) (quiz.ScoreResult, error) {
	<-ctx.Done()
	return quiz.ScoreResult{}, ctx.Err()
}

func TestSubmitAnswerTimeoutIsRetryable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	generator := services.NewGeneratorService("", "http://127.0.0.1:1", "none", time.Second)
	play := services.NewPlayService(generator, slowScorer{}, nil, nil, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Millisecond)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	RegisterRoutes(r.Group("/api"), nil, NewQuizHandler(play, generator))

	var st stateBody
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/api/quizzes", gin.H{"topic": "time", "difficulty": "easy", "num_questions": 1}, &st))
	require.NotNil(t, st.Question)

	var errBody ErrorResponse
	code := doJSON(t, r, http.MethodPost, "/api/quizzes/"+st.ID+"/answer", gin.H{"answer": st.Question.Options[0]}, &errBody)
	assert.Equal(t, http.StatusGatewayTimeout, code)

	var cur stateBody
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/api/quizzes/"+st.ID, nil, &cur))
	assert.Equal(t, "awaiting_answer", cur.State)
}

func TestWebSocketUnknownQuiz(t *testing.T) {
	r := newTestRouter(t)
	var errBody ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/ws/quiz/nope", nil, &errBody))
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		services.ErrSessionNotFound: http.StatusNotFound,
		services.ErrUserNotFound:    http.StatusNotFound,
		services.ErrUsernameTaken:   http.StatusConflict,
		quiz.ErrInvalidTransition:   http.StatusConflict,
		quiz.ErrSessionNotComplete:  http.StatusConflict,
		quiz.ErrInvalidAnswer:       http.StatusBadRequest,
		quiz.ErrEmptyQuiz:           http.StatusBadRequest,
		quiz.ErrExternalService:     http.StatusBadGateway,
		context.DeadlineExceeded:    http.StatusGatewayTimeout,
		context.Canceled:            statusClientClosedRequest,
		assert.AnError:              http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
