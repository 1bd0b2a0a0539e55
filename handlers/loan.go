package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

type LoanHandler struct {
	Ledger *services.LedgerService
	WS     *WSHandler
}

// CreateLoan records a debt between the two partners.
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountCents, err := utils.ParseAmountToCents(req.Amount.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive decimal"})
		return
	}

	loan, err := h.Ledger.CreateLoan(c.Request.Context(), userID, req, amountCents)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(loan.CoupleID, "loan_created", userID)
	}

	c.JSON(http.StatusCreated, gin.H{"data": loan})
}

// GetLoans lists the couple's loans with lender/borrower names.
func (h *LoanHandler) GetLoans(c *gin.Context) {
	userID := middleware.GetUserID(c)

	loans, err := h.Ledger.ListLoans(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": loans})
}

// UpdateLoan is the manual settlement override. It does not consult the
// payment balance.
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.Ledger.SetLoanSettled(c.Request.Context(), userID, req.ID, *req.Settled)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(loan.CoupleID, "loan_updated", userID)
	}

	c.JSON(http.StatusOK, gin.H{"data": loan})
}

// CreatePayment records a partial payment by the borrower. The service
// enforces the balance invariant under a row lock and settles the loan
// when the balance reaches zero.
func (h *LoanHandler) CreatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountCents, err := utils.ParseAmountToCents(req.Amount.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive decimal"})
		return
	}

	resp, err := h.Ledger.RecordPayment(c.Request.Context(), userID, req.LoanID, amountCents, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(resp.Payment.CoupleID, "payment_created", userID)
	}

	c.JSON(http.StatusCreated, resp)
}

// GetPayments lists a loan's payments, couple-scoped so a foreign loan
// id reads as empty.
func (h *LoanHandler) GetPayments(c *gin.Context) {
	userID := middleware.GetUserID(c)

	loanID := c.Query("loan_id")
	if loanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loan_id is required"})
		return
	}

	payments, err := h.Ledger.ListPayments(c.Request.Context(), userID, loanID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}
