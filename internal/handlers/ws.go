package handlers

import (
	"log"
	"net/http"

	"studypal-backend/internal/services"
	"studypal-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	playService *services.PlayService
}

func NewWSHandler(hub *ws.Hub, playService *services.PlayService) *WSHandler {
	return &WSHandler{hub: hub, playService: playService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket connection for quiz updates
// @Description  Connect via WebSocket to receive answer_scored, advanced, completed, report and discarded events of a quiz session
// @Tags         websocket
// @Param        id path string true "Quiz session ID"
// @Failure      404 {object} ErrorResponse
// @Router       /ws/quiz/{id} [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.playService.Get(sessionID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(sessionID, conn)
	defer h.hub.RemoveConnection(sessionID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
