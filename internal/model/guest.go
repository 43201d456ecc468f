package model

import "time"

type Guest struct {
	ID              int64  `json:"id"`
	WeddingID       int64  `json:"wedding_id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	TableAssignment string `json:"table_assignment"`
	DietaryNote     string `json:"dietary_note"`
	// CheckinToken is minted once at creation and never regenerated;
	// guest edits leave it untouched.
	CheckinToken string    `json:"checkin_token"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GuestStatus is a guest joined against the attendance ledger.
type GuestStatus struct {
	Guest
	CheckedIn   bool       `json:"checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}
