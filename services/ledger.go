package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/utils"
)

// LedgerService owns loan creation and the payment algorithm. Payments
// are serialized per loan with a row lock so two concurrent payments
// can never jointly overshoot the principal.
type LedgerService struct {
	db      *sql.DB
	couples *CoupleService
}

func NewLedgerService(db *sql.DB) *LedgerService {
	return &LedgerService{db: db, couples: NewCoupleService(db)}
}

// applyPayment computes the outcome of paying paymentCents against a
// loan with the given principal and already-paid total. The invariant
// sum(payments) <= principal holds on every accepted payment.
func applyPayment(principalCents, paidCents, paymentCents int64) (remaining int64, settles bool, err error) {
	if paymentCents <= 0 {
		return 0, false, utils.ErrInvalidAmount
	}
	outstanding := principalCents - paidCents
	if paymentCents > outstanding {
		return 0, false, ErrOverpayment
	}
	remaining = outstanding - paymentCents
	return remaining, remaining == 0, nil
}

// CreateLoan records a debt between the two partners. Both parties must
// be members of the caller's couple; the lender defaults to the caller.
func (s *LedgerService) CreateLoan(ctx context.Context, userID string, req models.CreateLoanRequest, amountCents int64) (*models.Loan, error) {
	coupleID, err := s.couples.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lenderID := req.LenderUserID
	if lenderID == "" {
		lenderID = userID
	}

	var lenderOK, borrowerOK bool
	err = s.db.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM couple_members WHERE couple_id = $1 AND user_id = $2),
			EXISTS(SELECT 1 FROM couple_members WHERE couple_id = $1 AND user_id = $3)
	`, coupleID, lenderID, req.BorrowerUserID).Scan(&lenderOK, &borrowerOK)
	if err != nil {
		return nil, err
	}
	if !lenderOK || !borrowerOK {
		return nil, ErrPartiesNotInCouple
	}

	loanDate := req.LoanDate
	if loanDate == "" {
		loanDate = time.Now().Format("2006-01-02")
	}

	loan := &models.Loan{
		ID:             uuid.New().String(),
		CoupleID:       coupleID,
		LenderUserID:   lenderID,
		BorrowerUserID: req.BorrowerUserID,
		AmountCents:    amountCents,
		Amount:         utils.FormatCents(amountCents),
		Description:    req.Description,
		LoanDate:       loanDate,
		Settled:        false,
		CreatedAt:      time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO loans (id, couple_id, lender_user_id, borrower_user_id, amount_cents, description, loan_date, settled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`, loan.ID, loan.CoupleID, loan.LenderUserID, loan.BorrowerUserID, loan.AmountCents, loan.Description, loan.LoanDate, loan.CreatedAt)
	if err != nil {
		return nil, err
	}

	utils.LogLedgerAction("loan created", coupleID, userID)
	return loan, nil
}

// ListLoans returns all loans for the caller's couple, newest loan_date
// first, with party display names.
func (s *LedgerService) ListLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	coupleID, err := s.couples.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.couple_id, l.lender_user_id, l.borrower_user_id,
		       lu.display_name, bu.display_name,
		       l.amount_cents, COALESCE(l.description, ''), l.loan_date::text,
		       l.settled, l.settled_at, l.created_at
		FROM loans l
		JOIN users lu ON l.lender_user_id = lu.id
		JOIN users bu ON l.borrower_user_id = bu.id
		WHERE l.couple_id = $1
		ORDER BY l.loan_date DESC
	`, coupleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var l models.Loan
		var settledAt sql.NullTime
		if err := rows.Scan(&l.ID, &l.CoupleID, &l.LenderUserID, &l.BorrowerUserID,
			&l.LenderName, &l.BorrowerName,
			&l.AmountCents, &l.Description, &l.LoanDate,
			&l.Settled, &settledAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		if settledAt.Valid {
			l.SettledAt = &settledAt.Time
		}
		l.Amount = utils.FormatCents(l.AmountCents)
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// SetLoanSettled is the manual settlement override. It bypasses the
// payment balance entirely; the payment path is the only one that
// validates against the principal.
func (s *LedgerService) SetLoanSettled(ctx context.Context, userID, loanID string, settled bool) (*models.Loan, error) {
	coupleID, err := s.couples.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var l models.Loan
	var settledAt sql.NullTime
	err = s.db.QueryRowContext(ctx, `
		UPDATE loans
		SET settled = $1,
		    settled_at = CASE WHEN $1 THEN NOW() ELSE NULL END
		WHERE id = $2 AND couple_id = $3
		RETURNING id, couple_id, lender_user_id, borrower_user_id, amount_cents,
		          COALESCE(description, ''), loan_date::text, settled, settled_at, created_at
	`, settled, loanID, coupleID).Scan(&l.ID, &l.CoupleID, &l.LenderUserID, &l.BorrowerUserID,
		&l.AmountCents, &l.Description, &l.LoanDate, &l.Settled, &settledAt, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}

	if settledAt.Valid {
		l.SettledAt = &settledAt.Time
	}
	l.Amount = utils.FormatCents(l.AmountCents)

	utils.LogLedgerAction("loan settlement updated", coupleID, userID)
	return &l, nil
}

// RecordPayment inserts a partial payment against a loan and settles
// the loan when the balance reaches zero. The loan row is locked for
// the duration of the transaction, so the overpayment check and the
// insert are atomic with respect to concurrent payments.
func (s *LedgerService) RecordPayment(ctx context.Context, userID, loanID string, amountCents int64, notes string) (*models.PaymentResponse, error) {
	coupleID, err := s.couples.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	payment := models.LoanPayment{
		ID:          uuid.New().String(),
		LoanID:      loanID,
		CoupleID:    coupleID,
		PayerUserID: userID,
		AmountCents: amountCents,
		Amount:      utils.FormatCents(amountCents),
		Notes:       notes,
		PaymentDate: time.Now().Format("2006-01-02"),
		CreatedAt:   time.Now(),
	}

	var remaining int64
	var settles bool

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var principal int64
		var borrowerID string
		err := tx.QueryRowContext(ctx, `
			SELECT amount_cents, borrower_user_id
			FROM loans
			WHERE id = $1 AND couple_id = $2
			FOR UPDATE
		`, loanID, coupleID).Scan(&principal, &borrowerID)
		if err == sql.ErrNoRows {
			return ErrLoanNotFound
		}
		if err != nil {
			return err
		}

		if borrowerID != userID {
			return ErrNotBorrower
		}

		var paid int64
		if err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount_cents), 0) FROM loan_payments WHERE loan_id = $1
		`, loanID).Scan(&paid); err != nil {
			return err
		}

		remaining, settles, err = applyPayment(principal, paid, amountCents)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO loan_payments (id, loan_id, couple_id, payer_user_id, amount_cents, notes, payment_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, payment.ID, payment.LoanID, payment.CoupleID, payment.PayerUserID,
			payment.AmountCents, payment.Notes, payment.PaymentDate, payment.CreatedAt); err != nil {
			return err
		}

		if settles {
			if _, err := tx.ExecContext(ctx, `
				UPDATE loans SET settled = TRUE, settled_at = NOW() WHERE id = $1
			`, loanID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogLedgerAction("payment recorded", coupleID, userID)

	return &models.PaymentResponse{
		Payment:        payment,
		RemainingCents: remaining,
		Remaining:      utils.FormatCents(remaining),
		Settled:        settles,
	}, nil
}

// ListPayments returns payments for a loan, filtered by the caller's
// couple so a foreign loan id reads as empty, payment_date descending.
func (s *LedgerService) ListPayments(ctx context.Context, userID, loanID string) ([]models.LoanPayment, error) {
	coupleID, err := s.couples.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.loan_id, p.couple_id, p.payer_user_id, u.display_name,
		       p.amount_cents, COALESCE(p.notes, ''), p.payment_date::text, p.created_at
		FROM loan_payments p
		JOIN users u ON p.payer_user_id = u.id
		WHERE p.loan_id = $1 AND p.couple_id = $2
		ORDER BY p.payment_date DESC, p.created_at DESC
	`, loanID, coupleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.LoanPayment{}
	for rows.Next() {
		var p models.LoanPayment
		if err := rows.Scan(&p.ID, &p.LoanID, &p.CoupleID, &p.PayerUserID, &p.PayerName,
			&p.AmountCents, &p.Notes, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Amount = utils.FormatCents(p.AmountCents)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
