package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/services"
)

type InvitationHandler struct {
	Couples *services.CoupleService
}

// SendInvitation creates a pending pairing invitation addressed to the
// owner of the posted invite code.
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.SendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.Couples.SendInvitation(c.Request.Context(), userID, req.InviteCode, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": inv, "message": "Invitation sent"})
}

// GetInvitations lists pending invitations received by the caller.
func (h *InvitationHandler) GetInvitations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	invitations, err := h.Couples.PendingInvitations(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invitations})
}

// RespondInvitation accepts or rejects a pending invitation. Accepting
// pairs both users into a new couple atomically.
func (h *InvitationHandler) RespondInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Action == "reject" {
		if err := h.Couples.RejectInvitation(c.Request.Context(), userID, req.InvitationID); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation rejected"})
		return
	}

	coupleID, err := h.Couples.AcceptInvitation(c.Request.Context(), userID, req.InvitationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted", "couple_id": coupleID})
}
