package models

import "time"

// TodoItem is a shared "panorama" on the couple's list.
type TodoItem struct {
	ID              string    `json:"id"`
	CoupleID        string    `json:"couple_id"`
	CreatedByUserID string    `json:"created_by_user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	TargetDate      string    `json:"target_date,omitempty"`
	TargetTime      string    `json:"target_time,omitempty"`
	Status          string    `json:"status"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	TargetTime  string `json:"target_time"`
}

type UpdateTodoRequest struct {
	ID        string  `json:"id" binding:"required"`
	Status    *string `json:"status"`
	Completed *bool   `json:"completed"`
}
