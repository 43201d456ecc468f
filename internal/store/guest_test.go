package store

import (
	"testing"
)

func TestGuestCreateMintsToken(t *testing.T) {
	db := testDB(t)
	gs := NewGuestStore(db)
	w := seedWedding(t, db, "a@example.com")

	g, err := gs.Create(w.ID, "Alice Guest", "", "", "", "")
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if g.CheckinToken == "" {
		t.Fatal("expected non-empty check-in token")
	}

	g2, err := gs.Create(w.ID, "Bob Guest", "", "", "", "")
	if err != nil {
		t.Fatalf("create second guest: %v", err)
	}
	if g.CheckinToken == g2.CheckinToken {
		t.Error("expected distinct tokens for distinct guests")
	}
}

func TestGuestUpdatePreservesToken(t *testing.T) {
	db := testDB(t)
	gs := NewGuestStore(db)
	w := seedWedding(t, db, "a@example.com")

	g, err := gs.Create(w.ID, "Alice", "555-1000", "", "", "")
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	token := g.CheckinToken

	updated, err := gs.Update(g.ID, "Alice Renamed", "555-2000", "alice@example.com", "Table 9", "vegan")
	if err != nil {
		t.Fatalf("update guest: %v", err)
	}
	if updated.Name != "Alice Renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice Renamed")
	}
	if updated.CheckinToken != token {
		t.Errorf("token changed on update: %q -> %q", token, updated.CheckinToken)
	}
}

func TestGuestTokenScopedToWedding(t *testing.T) {
	db := testDB(t)
	gs := NewGuestStore(db)
	w1 := seedWedding(t, db, "a@example.com")
	w2 := seedWedding(t, db, "b@example.com")

	g, err := gs.Create(w1.ID, "Alice", "", "", "", "")
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}

	found, err := gs.GetByTokenForWedding(g.CheckinToken, w1.ID)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if found == nil || found.ID != g.ID {
		t.Fatal("expected guest under its own wedding")
	}

	// Same token, other wedding's scope: must miss.
	cross, err := gs.GetByTokenForWedding(g.CheckinToken, w2.ID)
	if err != nil {
		t.Fatalf("cross-wedding lookup: %v", err)
	}
	if cross != nil {
		t.Error("expected nil for token queried under another wedding")
	}
}

func TestGuestGetByIDForWedding(t *testing.T) {
	db := testDB(t)
	gs := NewGuestStore(db)
	w1 := seedWedding(t, db, "a@example.com")
	w2 := seedWedding(t, db, "b@example.com")

	g, _ := gs.Create(w1.ID, "Alice", "", "", "", "")

	cross, err := gs.GetByIDForWedding(g.ID, w2.ID)
	if err != nil {
		t.Fatalf("cross-wedding lookup: %v", err)
	}
	if cross != nil {
		t.Error("expected nil for guest id queried under another wedding")
	}
}

func TestGuestListWithStatusSearch(t *testing.T) {
	db := testDB(t)
	gs := NewGuestStore(db)
	cs := NewCheckInStore(db)
	w := seedWedding(t, db, "a@example.com")
	sess := seedStaffSession(t, db, w.ID)

	alice, _ := gs.Create(w.ID, "Alice Appleton", "", "", "", "")
	gs.Create(w.ID, "Bob Birch", "", "", "", "")

	if _, _, err := cs.CreateIfAbsent(alice.ID, w.ID, sess.ID, "scan"); err != nil {
		t.Fatalf("check in alice: %v", err)
	}

	all, err := gs.ListWithStatus(w.ID, "")
	if err != nil {
		t.Fatalf("list with status: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	// Case-insensitive substring on name.
	found, err := gs.ListWithStatus(w.ID, "alice")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("search len = %d, want 1", len(found))
	}
	if !found[0].CheckedIn {
		t.Error("expected alice to be flagged checked in")
	}
	if found[0].CheckedInAt == nil {
		t.Error("expected checked_in_at timestamp")
	}

	none, err := gs.ListWithStatus(w.ID, "%")
	if err != nil {
		t.Fatalf("metacharacter search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("LIKE metacharacters must match literally, got %d rows", len(none))
	}
}
