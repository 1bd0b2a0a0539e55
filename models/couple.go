package models

import "time"

type Couple struct {
	ID                    string    `json:"id"`
	RelationshipStartDate string    `json:"relationship_start_date"`
	CreatedAt             time.Time `json:"created_at"`
}

// Partner is one member of a couple as seen by the other member.
type Partner struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type CoupleResponse struct {
	CurrentUserID         string    `json:"current_user_id"`
	Partners              []Partner `json:"partners"`
	RelationshipStartDate string    `json:"relationship_start_date"`
}
