package model

import "time"

// Check-in methods.
const (
	CheckInMethodScan   = "scan"
	CheckInMethodManual = "manual"
)

// CheckInRecord is one row of the attendance ledger. At most one exists per
// guest, enforced by a UNIQUE constraint; records are never updated or
// deleted in normal operation.
type CheckInRecord struct {
	ID             int64     `json:"id"`
	GuestID        int64     `json:"guest_id"`
	WeddingID      int64     `json:"wedding_id"`
	StaffSessionID int64     `json:"staff_session_id"`
	Method         string    `json:"method"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

// RecentCheckIn is a ledger row with the guest name for activity feeds.
type RecentCheckIn struct {
	GuestID     int64     `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	Method      string    `json:"method"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// WeddingStats is the live attendance summary, recomputed per request.
type WeddingStats struct {
	Total     int             `json:"total"`
	CheckedIn int             `json:"checked_in"`
	Pending   int             `json:"pending"`
	Rate      float64         `json:"rate"`
	Recent    []RecentCheckIn `json:"recent"`
}
