package store

import (
	"testing"
)

func TestBudgetSummary(t *testing.T) {
	db := testDB(t)
	bs := NewBudgetStore(db)
	w := seedWedding(t, db, "a@example.com")

	if _, err := bs.Create(w.ID, "Venue", "deposit", 500000, 520000, true); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := bs.Create(w.ID, "Flowers", "", 80000, 75000, false); err != nil {
		t.Fatalf("create item: %v", err)
	}

	sum, err := bs.Summary(w.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.EstimatedCents != 580000 {
		t.Errorf("estimated = %d, want 580000", sum.EstimatedCents)
	}
	if sum.ActualCents != 595000 {
		t.Errorf("actual = %d, want 595000", sum.ActualCents)
	}
	if sum.PaidCents != 520000 {
		t.Errorf("paid = %d, want 520000", sum.PaidCents)
	}
	if sum.UnpaidCents != 75000 {
		t.Errorf("unpaid = %d, want 75000", sum.UnpaidCents)
	}
	if sum.ItemCount != 2 {
		t.Errorf("items = %d, want 2", sum.ItemCount)
	}
}

func TestBudgetSummaryEmpty(t *testing.T) {
	db := testDB(t)
	bs := NewBudgetStore(db)
	w := seedWedding(t, db, "a@example.com")

	sum, err := bs.Summary(w.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.EstimatedCents != 0 || sum.ActualCents != 0 || sum.ItemCount != 0 {
		t.Errorf("empty summary = %+v, want zeros", sum)
	}
}

func TestBudgetUpdateAndDelete(t *testing.T) {
	db := testDB(t)
	bs := NewBudgetStore(db)
	w := seedWedding(t, db, "a@example.com")

	item, _ := bs.Create(w.ID, "Catering", "", 300000, 0, false)

	updated, err := bs.Update(item.ID, "Catering", "final headcount", 300000, 310000, true)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Paid || updated.ActualCents != 310000 {
		t.Errorf("updated = %+v", updated)
	}

	if err := bs.Delete(item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := bs.GetByID(item.ID)
	if got != nil {
		t.Error("expected nil after delete")
	}
}
