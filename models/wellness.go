package models

import "time"

type CyclePhase struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CoupleID  string    `json:"couple_id"`
	PhaseType string    `json:"phase_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type IntimacyEvent struct {
	ID              string    `json:"id"`
	CoupleID        string    `json:"couple_id"`
	CreatedByUserID string    `json:"created_by_user_id"`
	EventDate       string    `json:"event_date"`
	UsedCondom      bool      `json:"used_condom"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type ContraceptiveEvent struct {
	ID        string    `json:"id"`
	CoupleID  string    `json:"couple_id"`
	UserID    string    `json:"user_id"`
	Method    string    `json:"method"`
	EventDate string    `json:"event_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCyclePhaseRequest struct {
	PhaseType string `json:"phase_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
}

type EndCyclePhaseRequest struct {
	ID      string `json:"id" binding:"required"`
	EndDate string `json:"end_date" binding:"required"`
}

type CreateIntimacyEventRequest struct {
	EventDate  string `json:"event_date" binding:"required"`
	UsedCondom *bool  `json:"used_condom" binding:"required"`
	Notes      string `json:"notes"`
}

type CreateContraceptiveEventRequest struct {
	Method    string `json:"method" binding:"required"`
	EventDate string `json:"event_date" binding:"required"`
	Notes     string `json:"notes"`
}
