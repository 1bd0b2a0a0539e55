package models

import (
	"encoding/json"
	"time"
)

// Ledger rows carry amounts both as exact integer cents and as a
// decimal string for display. Clients should treat the string as
// presentation only.

type Expense struct {
	ID          string    `json:"id"`
	CoupleID    string    `json:"couple_id"`
	UserID      string    `json:"user_id"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	ExpenseDate string    `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type Loan struct {
	ID             string     `json:"id"`
	CoupleID       string     `json:"couple_id"`
	LenderUserID   string     `json:"lender_user_id"`
	BorrowerUserID string     `json:"borrower_user_id"`
	LenderName     string     `json:"lender_name,omitempty"`
	BorrowerName   string     `json:"borrower_name,omitempty"`
	AmountCents    int64      `json:"amount_cents"`
	Amount         string     `json:"amount"`
	Description    string     `json:"description,omitempty"`
	LoanDate       string     `json:"loan_date"`
	Settled        bool       `json:"settled"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type LoanPayment struct {
	ID          string    `json:"id"`
	LoanID      string    `json:"loan_id"`
	CoupleID    string    `json:"couple_id"`
	PayerUserID string    `json:"payer_user_id"`
	PayerName   string    `json:"payer_name,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Notes       string    `json:"notes,omitempty"`
	PaymentDate string    `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Request amounts arrive as json.Number so "12.34" and 12.34 both bind
// without passing through a float64.

type CreateExpenseRequest struct {
	Amount      json.Number `json:"amount" binding:"required"`
	Description string      `json:"description" binding:"required"`
	ExpenseDate string      `json:"expense_date"`
}

type CreateLoanRequest struct {
	Amount         json.Number `json:"amount" binding:"required"`
	BorrowerUserID string      `json:"borrower_user_id" binding:"required"`
	LenderUserID   string      `json:"lender_user_id"`
	Description    string      `json:"description"`
	LoanDate       string      `json:"loan_date"`
}

type UpdateLoanRequest struct {
	ID      string `json:"id" binding:"required"`
	Settled *bool  `json:"settled" binding:"required"`
}

type CreatePaymentRequest struct {
	LoanID string      `json:"loan_id" binding:"required"`
	Amount json.Number `json:"amount" binding:"required"`
	Notes  string      `json:"notes"`
}

type PaymentResponse struct {
	Payment        LoanPayment `json:"payment"`
	RemainingCents int64       `json:"remaining_cents"`
	Remaining      string      `json:"remaining"`
	Settled        bool        `json:"settled"`
}
