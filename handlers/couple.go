package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/services"
)

type CoupleHandler struct {
	Couples *services.CoupleService
	WS      *WSHandler
}

// GetCouple returns both partners and the relationship start date.
func (h *CoupleHandler) GetCouple(c *gin.Context) {
	userID := middleware.GetUserID(c)

	couple, err := h.Couples.GetCouple(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, couple)
}

// EndRelationship cascades the couple and everything scoped to it away
// in a single transaction.
func (h *CoupleHandler) EndRelationship(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.Couples.EndRelationship(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(coupleID, "couple_deleted", userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship ended successfully"})
}
