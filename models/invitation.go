package models

import "time"

// Invitation statuses. Pending invitations resolve to exactly one of
// the terminal states.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

type Invitation struct {
	ID             string     `json:"id"`
	SenderUserID   string     `json:"sender_user_id"`
	ReceiverUserID string     `json:"receiver_user_id"`
	SenderName     string     `json:"sender_name,omitempty"`
	Message        string     `json:"message,omitempty"`
	Status         string     `json:"status"`
	CoupleID       string     `json:"couple_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
}

type SendInvitationRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
	Message    string `json:"message"`
}

type RespondInvitationRequest struct {
	InvitationID string `json:"invitation_id" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=accept reject"`
}
