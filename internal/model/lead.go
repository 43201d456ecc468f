package model

import "time"

// Lead states.
const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadClosed    = "closed"
)

type Lead struct {
	ID        int64     `json:"id"`
	VendorID  int64     `json:"vendor_id"`
	WeddingID int64     `json:"wedding_id"`
	CoupleID  int64     `json:"couple_id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadMessage struct {
	ID        int64     `json:"id"`
	LeadID    int64     `json:"lead_id"`
	SenderID  int64     `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
