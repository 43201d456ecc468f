package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rowanhale/seatwell/internal/model"
)

type StaffSessionStore struct {
	db *sql.DB
}

func NewStaffSessionStore(db *sql.DB) *StaffSessionStore {
	return &StaffSessionStore{db: db}
}

func scanStaffSession(scanner interface{ Scan(...any) error }) (*model.StaffSession, error) {
	var s model.StaffSession
	err := scanner.Scan(&s.ID, &s.Token, &s.WeddingID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const staffSessionCols = `id, token, wedding_id, expires_at, created_at`

// Create mints a crypto-random token and persists a session scoped to the
// wedding with the given validity window.
func (s *StaffSessionStore) Create(weddingID int64, ttl time.Duration) (*model.StaffSession, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().UTC().Add(ttl)

	result, err := s.db.Exec(
		`INSERT INTO staff_sessions (token, wedding_id, expires_at) VALUES (?, ?, ?)`,
		token, weddingID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert staff session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+staffSessionCols+` FROM staff_sessions WHERE id = ?`, id)
	return scanStaffSession(row)
}

// GetByToken returns the session for the token, or nil if absent or expired.
// The join guards against sessions whose wedding has been deleted.
func (s *StaffSessionStore) GetByToken(token string) (*model.StaffSession, error) {
	row := s.db.QueryRow(
		`SELECT s.id, s.token, s.wedding_id, s.expires_at, s.created_at
		 FROM staff_sessions s
		 JOIN weddings w ON w.id = s.wedding_id
		 WHERE s.token = ? AND s.expires_at > datetime('now')`,
		token,
	)
	sess, err := scanStaffSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get staff session: %w", err)
	}
	return sess, nil
}

// DeleteByToken revokes a single session (staff logout).
func (s *StaffSessionStore) DeleteByToken(token string) error {
	_, err := s.db.Exec(`DELETE FROM staff_sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete staff session: %w", err)
	}
	return nil
}

func (s *StaffSessionStore) DeleteExpired() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM staff_sessions WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("delete expired staff sessions: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
