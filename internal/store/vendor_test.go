package store

import (
	"database/sql"
	"testing"

	"github.com/rowanhale/seatwell/internal/model"
)

func seedVendorUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	us := NewUserStore(db)
	u, err := us.Create(email, "Vendor", "x", model.RoleVendor)
	if err != nil {
		t.Fatalf("create vendor user: %v", err)
	}
	return u.ID
}

func TestVendorUpsertResetsStatus(t *testing.T) {
	db := testDB(t)
	vs := NewVendorStore(db)
	userID := seedVendorUser(t, db, "v@example.com")

	p, err := vs.Upsert(userID, "Bloom & Co", "florist", "Portland", "", "$$")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.Status != model.VendorPending {
		t.Errorf("status = %q, want pending", p.Status)
	}

	if _, err := vs.SetStatus(p.ID, model.VendorApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Edits re-enter moderation.
	p2, err := vs.Upsert(userID, "Bloom & Co", "florist", "Portland", "updated copy", "$$")
	if err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	if p2.ID != p.ID {
		t.Errorf("upsert created a second profile: %d vs %d", p2.ID, p.ID)
	}
	if p2.Status != model.VendorPending {
		t.Errorf("status after edit = %q, want pending", p2.Status)
	}
}

func TestVendorSearchApprovedOnly(t *testing.T) {
	db := testDB(t)
	vs := NewVendorStore(db)

	u1 := seedVendorUser(t, db, "v1@example.com")
	u2 := seedVendorUser(t, db, "v2@example.com")

	approved, _ := vs.Upsert(u1, "Bloom & Co", "florist", "Portland", "", "$$")
	vs.Upsert(u2, "Shady Cakes", "bakery", "Portland", "", "$")
	vs.SetStatus(approved.ID, model.VendorApproved)

	results, err := vs.Search("", "", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1 (approved only)", len(results))
	}
	if results[0].BusinessName != "Bloom & Co" {
		t.Errorf("got %q", results[0].BusinessName)
	}

	byCategory, _ := vs.Search("bakery", "", "")
	if len(byCategory) != 0 {
		t.Error("pending bakery must not appear in search")
	}

	byName, _ := vs.Search("florist", "portland", "bloom")
	if len(byName) != 1 {
		t.Errorf("filtered search = %d, want 1", len(byName))
	}
}
