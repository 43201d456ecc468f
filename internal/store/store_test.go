package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rowanhale/seatwell/internal/database"
	"github.com/rowanhale/seatwell/internal/model"
)

// testDB opens an in-memory database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// The pool must stay on one connection or each new connection would get
	// its own empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// testFileDB opens a file-backed database for tests that need real
// concurrent connections.
func testFileDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedWedding creates a couple user and a wedding, returning the wedding.
func seedWedding(t *testing.T, db *sql.DB, email string) *model.Wedding {
	t.Helper()
	us := NewUserStore(db)
	ws := NewWeddingStore(db)

	u, err := us.Create(email, "Test Couple", "x", model.RoleCouple)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	w, err := ws.Create(u.ID, "Test Wedding", nil, "The Barn")
	if err != nil {
		t.Fatalf("create wedding: %v", err)
	}
	return w
}

// seedStaffSession creates a staff session for the wedding.
func seedStaffSession(t *testing.T, db *sql.DB, weddingID int64) *model.StaffSession {
	t.Helper()
	ss := NewStaffSessionStore(db)
	sess, err := ss.Create(weddingID, 4*time.Hour)
	if err != nil {
		t.Fatalf("create staff session: %v", err)
	}
	return sess
}

// mustHash is a bcrypt helper for seeding PINs.
func mustHash(t *testing.T, s string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}
