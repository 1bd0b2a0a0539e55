package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/utils"
)

// CoupleService owns couple membership resolution, the invitation
// handshake, and relationship teardown. Everything that touches more
// than one row runs inside a single transaction.
type CoupleService struct {
	db *sql.DB
}

func NewCoupleService(db *sql.DB) *CoupleService {
	return &CoupleService{db: db}
}

// ResolveCoupleID returns the couple the user belongs to. Every ledger,
// todo and wellness operation calls this first; ErrNotInCouple surfaces
// as a 404.
func (s *CoupleService) ResolveCoupleID(ctx context.Context, userID string) (string, error) {
	var coupleID string
	err := s.db.QueryRowContext(ctx, `
		SELECT couple_id FROM couple_members WHERE user_id = $1
	`, userID).Scan(&coupleID)

	if err == sql.ErrNoRows {
		return "", ErrNotInCouple
	}
	if err != nil {
		return "", err
	}
	return coupleID, nil
}

// SendInvitation creates a pending invitation from sender to the user
// owning inviteCode.
func (s *CoupleService) SendInvitation(ctx context.Context, senderID, inviteCode, message string) (*models.Invitation, error) {
	if _, err := s.ResolveCoupleID(ctx, senderID); err == nil {
		return nil, ErrAlreadyPaired
	} else if err != ErrNotInCouple {
		return nil, err
	}

	var receiverID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM users WHERE invite_code = $1
	`, inviteCode).Scan(&receiverID)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidInviteCode
	}
	if err != nil {
		return nil, err
	}

	if receiverID == senderID {
		return nil, ErrSelfInvite
	}

	if _, err := s.ResolveCoupleID(ctx, receiverID); err == nil {
		return nil, ErrReceiverPaired
	} else if err != ErrNotInCouple {
		return nil, err
	}

	var duplicate bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM couple_invitations
			WHERE sender_user_id = $1 AND receiver_user_id = $2 AND status = 'pending'
		)
	`, senderID, receiverID).Scan(&duplicate)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateInvitation
	}

	inv := &models.Invitation{
		ID:             uuid.New().String(),
		SenderUserID:   senderID,
		ReceiverUserID: receiverID,
		Message:        message,
		Status:         models.InvitationPending,
		CreatedAt:      time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO couple_invitations (id, sender_user_id, receiver_user_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, inv.ID, inv.SenderUserID, inv.ReceiverUserID, inv.Message, inv.Status, inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	utils.LogPairingAction("invitation sent", senderID, receiverID)
	return inv, nil
}

// PendingInvitations lists pending invitations addressed to the user,
// newest first, with sender display names.
func (s *CoupleService) PendingInvitations(ctx context.Context, receiverID string) ([]models.Invitation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.sender_user_id, i.receiver_user_id, COALESCE(i.message, ''),
		       i.status, i.created_at, u.display_name
		FROM couple_invitations i
		JOIN users u ON i.sender_user_id = u.id
		WHERE i.receiver_user_id = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []models.Invitation{}
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(&inv.ID, &inv.SenderUserID, &inv.ReceiverUserID, &inv.Message,
			&inv.Status, &inv.CreatedAt, &inv.SenderName); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// AcceptInvitation creates the couple, both membership rows, and marks
// the invitation accepted, all in one transaction. The UNIQUE(user_id)
// constraint on couple_members rejects concurrent double-pairing.
func (s *CoupleService) AcceptInvitation(ctx context.Context, receiverID, invitationID string) (string, error) {
	coupleID := uuid.New().String()

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var senderID string
		err := tx.QueryRowContext(ctx, `
			SELECT sender_user_id FROM couple_invitations
			WHERE id = $1 AND receiver_user_id = $2 AND status = 'pending'
			FOR UPDATE
		`, invitationID, receiverID).Scan(&senderID)
		if err == sql.ErrNoRows {
			return ErrInvitationNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO couples (id, relationship_start_date) VALUES ($1, CURRENT_DATE)
		`, coupleID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO couple_members (couple_id, user_id) VALUES ($1, $2), ($1, $3)
		`, coupleID, senderID, receiverID); err != nil {
			// UNIQUE(user_id) fires when either party got paired since
			// the invitation was sent
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrAlreadyPaired
			}
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE couple_invitations
			SET status = 'accepted', couple_id = $1, responded_at = NOW()
			WHERE id = $2
		`, coupleID, invitationID)
		return err
	})
	if err != nil {
		return "", err
	}

	utils.LogPairingAction("invitation accepted", receiverID, coupleID)
	return coupleID, nil
}

// RejectInvitation marks a pending invitation rejected.
func (s *CoupleService) RejectInvitation(ctx context.Context, receiverID, invitationID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE couple_invitations
		SET status = 'rejected', responded_at = NOW()
		WHERE id = $1 AND receiver_user_id = $2 AND status = 'pending'
	`, invitationID, receiverID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// GetCouple returns both partners and the relationship start date.
func (s *CoupleService) GetCouple(ctx context.Context, userID string) (*models.CoupleResponse, error) {
	coupleID, err := s.ResolveCoupleID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &models.CoupleResponse{CurrentUserID: userID}

	err = s.db.QueryRowContext(ctx, `
		SELECT relationship_start_date::text FROM couples WHERE id = $1
	`, coupleID).Scan(&resp.RelationshipStartDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cm.user_id, u.display_name
		FROM couple_members cm
		JOIN users u ON cm.user_id = u.id
		WHERE cm.couple_id = $1
		ORDER BY cm.joined_at
	`, coupleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.UserID, &p.DisplayName); err != nil {
			return nil, err
		}
		resp.Partners = append(resp.Partners, p)
	}
	return resp, rows.Err()
}

// EndRelationship deletes every row scoped to the caller's couple,
// children before parents, in one transaction.
func (s *CoupleService) EndRelationship(ctx context.Context, userID string) error {
	coupleID, err := s.ResolveCoupleID(ctx, userID)
	if err != nil {
		return err
	}

	err = utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		statements := []string{
			`DELETE FROM loan_payments WHERE couple_id = $1`,
			`DELETE FROM loans WHERE couple_id = $1`,
			`DELETE FROM expenses WHERE couple_id = $1`,
			`DELETE FROM todo_items WHERE couple_id = $1`,
			`DELETE FROM intimacy_events WHERE couple_id = $1`,
			`DELETE FROM contraceptive_events WHERE couple_id = $1`,
			`DELETE FROM cycle_phases WHERE couple_id = $1`,
			`UPDATE couple_invitations SET couple_id = NULL WHERE couple_id = $1`,
			`DELETE FROM couple_members WHERE couple_id = $1`,
			`DELETE FROM couples WHERE id = $1`,
		}
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt, coupleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.LogPairingAction("relationship ended", userID, coupleID)
	return nil
}
