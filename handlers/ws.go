package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

// WSHandler pushes live-update signals to the partner's open sessions
// so clients can refetch instead of polling.
type WSHandler struct {
	M       *melody.Melody
	Couples *services.CoupleService
}

func NewWSHandler(couples *services.CoupleService) *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		coupleID, _ := s.Get("couple_id")
		log.Printf("ws disconnect, couple: %v", coupleID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("ws error: %v", err)
	})

	return &WSHandler{M: m, Couples: couples}
}

// HandleWS upgrades the request. Browsers cannot set headers on
// WebSocket requests, so the access token arrives as a query param.
func (h *WSHandler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	userID, err := utils.ValidateAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"couple_id": coupleID,
		"user_id":   userID,
	}); err != nil {
		log.Printf("ws upgrade failed: %v", err)
	}
}

type wsUpdate struct {
	Type string `json:"type"`
	User string `json:"user"`
}

// BroadcastUpdate signals every session attached to the couple that
// something changed. The payload carries the kind of change and who
// made it; clients refetch the affected resource.
func (h *WSHandler) BroadcastUpdate(coupleID, updateType, userID string) {
	msg, err := json.Marshal(wsUpdate{Type: updateType, User: userID})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, ok := s.Get("couple_id")
		return ok && id == coupleID
	})
	if err != nil {
		log.Printf("ws broadcast failed: %v", err)
	}
}
