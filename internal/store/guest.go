package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rowanhale/seatwell/internal/model"
)

type GuestStore struct {
	db *sql.DB
}

func NewGuestStore(db *sql.DB) *GuestStore {
	return &GuestStore{db: db}
}

func scanGuest(scanner interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	err := scanner.Scan(
		&g.ID, &g.WeddingID, &g.Name, &g.Phone, &g.Email,
		&g.TableAssignment, &g.DietaryNote, &g.CheckinToken,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

const guestCols = `id, wedding_id, name, phone, email, table_assignment, dietary_note, checkin_token, created_at, updated_at`

// Create inserts a guest and mints its check-in token. The token is never
// regenerated afterward; Update deliberately does not touch the column.
func (s *GuestStore) Create(weddingID int64, name, phone, email, tableAssignment, dietaryNote string) (*model.Guest, error) {
	token := uuid.NewString()
	result, err := s.db.Exec(
		`INSERT INTO guests (wedding_id, name, phone, email, table_assignment, dietary_note, checkin_token)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		weddingID, name, phone, email, tableAssignment, dietaryNote, token,
	)
	if err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *GuestStore) GetByID(id int64) (*model.Guest, error) {
	row := s.db.QueryRow(`SELECT `+guestCols+` FROM guests WHERE id = ?`, id)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

// GetByIDForWedding looks up a guest constrained to one wedding. Returns nil
// when the guest exists but belongs to a different wedding.
func (s *GuestStore) GetByIDForWedding(id, weddingID int64) (*model.Guest, error) {
	row := s.db.QueryRow(`SELECT `+guestCols+` FROM guests WHERE id = ? AND wedding_id = ?`, id, weddingID)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guest for wedding: %w", err)
	}
	return g, nil
}

// GetByTokenForWedding resolves a check-in token within one wedding's scope.
// Exact match only; a token from another wedding comes back nil.
func (s *GuestStore) GetByTokenForWedding(token string, weddingID int64) (*model.Guest, error) {
	row := s.db.QueryRow(`SELECT `+guestCols+` FROM guests WHERE checkin_token = ? AND wedding_id = ?`, token, weddingID)
	g, err := scanGuest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get guest by token: %w", err)
	}
	return g, nil
}

// ListWithStatus returns every guest joined against the attendance ledger.
// search, when non-empty, is a case-insensitive substring match on name.
func (s *GuestStore) ListWithStatus(weddingID int64, search string) ([]model.GuestStatus, error) {
	query := `SELECT g.id, g.wedding_id, g.name, g.phone, g.email, g.table_assignment,
	                 g.dietary_note, g.checkin_token, g.created_at, g.updated_at,
	                 c.checked_in_at
	          FROM guests g
	          LEFT JOIN check_in_records c ON c.guest_id = g.id
	          WHERE g.wedding_id = ?`
	args := []any{weddingID}
	if search != "" {
		query += ` AND g.name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(search)+"%")
	}
	query += ` ORDER BY g.name ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guests with status: %w", err)
	}
	defer rows.Close()

	var guests []model.GuestStatus
	for rows.Next() {
		var gs model.GuestStatus
		var checkedInAt sql.NullTime
		err := rows.Scan(
			&gs.ID, &gs.WeddingID, &gs.Name, &gs.Phone, &gs.Email,
			&gs.TableAssignment, &gs.DietaryNote, &gs.CheckinToken,
			&gs.CreatedAt, &gs.UpdatedAt, &checkedInAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan guest status: %w", err)
		}
		if checkedInAt.Valid {
			gs.CheckedIn = true
			gs.CheckedInAt = &checkedInAt.Time
		}
		guests = append(guests, gs)
	}
	return guests, rows.Err()
}

// Update edits guest details. The checkin_token column is intentionally
// absent from the statement; the token survives all edits.
func (s *GuestStore) Update(id int64, name, phone, email, tableAssignment, dietaryNote string) (*model.Guest, error) {
	_, err := s.db.Exec(
		`UPDATE guests SET name = ?, phone = ?, email = ?, table_assignment = ?, dietary_note = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		name, phone, email, tableAssignment, dietaryNote, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return s.GetByID(id)
}

func (s *GuestStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func (s *GuestStore) CountByWedding(weddingID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM guests WHERE wedding_id = ?`, weddingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count guests: %w", err)
	}
	return n, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
