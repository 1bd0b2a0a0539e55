package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

type ExpenseHandler struct {
	DB      *sql.DB
	Couples *services.CoupleService
	WS      *WSHandler
}

// CreateExpense appends a dated expense to the couple's ledger.
// Expenses are immutable once created.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountCents, err := utils.ParseAmountToCents(req.Amount.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive decimal"})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	expenseDate := req.ExpenseDate
	if expenseDate == "" {
		expenseDate = time.Now().Format("2006-01-02")
	}

	expense := models.Expense{
		ID:          uuid.New().String(),
		CoupleID:    coupleID,
		UserID:      userID,
		AmountCents: amountCents,
		Amount:      utils.FormatCents(amountCents),
		Description: req.Description,
		ExpenseDate: expenseDate,
		CreatedAt:   time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO expenses (id, couple_id, user_id, amount_cents, description, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, expense.ID, expense.CoupleID, expense.UserID, expense.AmountCents,
		expense.Description, expense.ExpenseDate, expense.CreatedAt)
	if err != nil {
		utils.SafeError("inserting expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
		return
	}

	utils.LogLedgerAction("expense recorded", coupleID, userID)
	if h.WS != nil {
		h.WS.BroadcastUpdate(coupleID, "expense_created", userID)
	}

	c.JSON(http.StatusCreated, gin.H{"data": expense})
}

// GetExpenses lists the couple's expenses, newest expense date first.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, couple_id, user_id, amount_cents, description, expense_date::text, created_at
		FROM expenses
		WHERE couple_id = $1
		ORDER BY expense_date DESC
	`, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.CoupleID, &e.UserID, &e.AmountCents,
			&e.Description, &e.ExpenseDate, &e.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
			return
		}
		e.Amount = utils.FormatCents(e.AmountCents)
		expenses = append(expenses, e)
	}

	c.JSON(http.StatusOK, gin.H{"data": expenses})
}
