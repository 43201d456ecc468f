package model

import "time"

// Vendor profile moderation states.
const (
	VendorPending   = "pending"
	VendorApproved  = "approved"
	VendorSuspended = "suspended"
)

type VendorProfile struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Category     string    `json:"category"`
	City         string    `json:"city"`
	Description  string    `json:"description"`
	PriceRange   string    `json:"price_range"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
