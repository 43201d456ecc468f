package model

import "time"

type Wedding struct {
	ID          int64      `json:"id"`
	CoupleID    int64      `json:"couple_id"`
	Title       string     `json:"title"`
	WeddingDate *time.Time `json:"wedding_date"`
	Venue       string     `json:"venue"`
	// PublicCode is the short code staff enter together with the PIN.
	// Nil until the couple enables staff access.
	PublicCode *string   `json:"public_code"`
	PINHash    string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
