package model

import "time"

// StaffSession is an ephemeral credential binding an opaque token to one
// wedding. Many devices may hold independent sessions for the same wedding.
type StaffSession struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	WeddingID int64     `json:"wedding_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
