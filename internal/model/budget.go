package model

import "time"

type BudgetItem struct {
	ID             int64     `json:"id"`
	WeddingID      int64     `json:"wedding_id"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	EstimatedCents int64     `json:"estimated_cents"`
	ActualCents    int64     `json:"actual_cents"`
	Paid           bool      `json:"paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BudgetSummary is computed in SQL from the wedding's items.
type BudgetSummary struct {
	EstimatedCents int64 `json:"estimated_cents"`
	ActualCents    int64 `json:"actual_cents"`
	PaidCents      int64 `json:"paid_cents"`
	UnpaidCents    int64 `json:"unpaid_cents"`
	ItemCount      int   `json:"item_count"`
}
