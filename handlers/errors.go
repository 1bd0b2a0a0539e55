package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

// respondServiceError maps service sentinels to client statuses.
// Unknown errors become a generic 500; internals never reach clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotInCouple):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not in a couple"})
	case errors.Is(err, services.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
	case errors.Is(err, services.ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
	case errors.Is(err, services.ErrInvalidInviteCode):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
	case errors.Is(err, services.ErrNotBorrower):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the borrower can pay this loan"})
	case errors.Is(err, services.ErrOverpayment):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment exceeds the remaining balance"})
	case errors.Is(err, services.ErrPartiesNotInCouple):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lender and borrower must both be members of your couple"})
	case errors.Is(err, services.ErrAlreadyPaired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already belong to a couple"})
	case errors.Is(err, services.ErrSelfInvite):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot invite yourself"})
	case errors.Is(err, services.ErrReceiverPaired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This person already belongs to a couple"})
	case errors.Is(err, services.ErrDuplicateInvitation):
		c.JSON(http.StatusConflict, gin.H{"error": "A pending invitation to this user already exists"})
	case errors.Is(err, utils.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive decimal"})
	default:
		utils.SafeError("unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
