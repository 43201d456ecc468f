package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rowanhale/seatwell/internal/model"
)

type WeddingStore struct {
	db *sql.DB
}

func NewWeddingStore(db *sql.DB) *WeddingStore {
	return &WeddingStore{db: db}
}

func scanWedding(scanner interface{ Scan(...any) error }) (*model.Wedding, error) {
	var w model.Wedding
	var date sql.NullTime
	var code sql.NullString
	err := scanner.Scan(&w.ID, &w.CoupleID, &w.Title, &date, &w.Venue, &code, &w.PINHash, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		w.WeddingDate = &date.Time
	}
	if code.Valid {
		w.PublicCode = &code.String
	}
	return &w, nil
}

const weddingCols = `id, couple_id, title, wedding_date, venue, public_code, pin_hash, created_at, updated_at`

func (s *WeddingStore) Create(coupleID int64, title string, date *time.Time, venue string) (*model.Wedding, error) {
	var d sql.NullTime
	if date != nil {
		d = sql.NullTime{Time: *date, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO weddings (couple_id, title, wedding_date, venue) VALUES (?, ?, ?, ?)`,
		coupleID, title, d, venue,
	)
	if err != nil {
		return nil, fmt.Errorf("insert wedding: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *WeddingStore) GetByID(id int64) (*model.Wedding, error) {
	row := s.db.QueryRow(`SELECT `+weddingCols+` FROM weddings WHERE id = ?`, id)
	w, err := scanWedding(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wedding: %w", err)
	}
	return w, nil
}

func (s *WeddingStore) GetByPublicCode(code string) (*model.Wedding, error) {
	row := s.db.QueryRow(`SELECT `+weddingCols+` FROM weddings WHERE public_code = ?`, code)
	w, err := scanWedding(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get wedding by code: %w", err)
	}
	return w, nil
}

func (s *WeddingStore) ListByCouple(coupleID int64) ([]model.Wedding, error) {
	rows, err := s.db.Query(
		`SELECT `+weddingCols+` FROM weddings WHERE couple_id = ? ORDER BY created_at ASC`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list weddings: %w", err)
	}
	defer rows.Close()

	var weddings []model.Wedding
	for rows.Next() {
		w, err := scanWedding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wedding: %w", err)
		}
		weddings = append(weddings, *w)
	}
	return weddings, rows.Err()
}

func (s *WeddingStore) Update(id int64, title string, date *time.Time, venue string) (*model.Wedding, error) {
	var d sql.NullTime
	if date != nil {
		d = sql.NullTime{Time: *date, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE weddings SET title = ?, wedding_date = ?, venue = ?, updated_at = datetime('now') WHERE id = ?`,
		title, d, venue, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update wedding: %w", err)
	}
	return s.GetByID(id)
}

// SetStaffAccess stores the public code and PIN hash staff use at the door.
func (s *WeddingStore) SetStaffAccess(id int64, publicCode, pinHash string) (*model.Wedding, error) {
	_, err := s.db.Exec(
		`UPDATE weddings SET public_code = ?, pin_hash = ?, updated_at = datetime('now') WHERE id = ?`,
		publicCode, pinHash, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set staff access: %w", err)
	}
	return s.GetByID(id)
}

func (s *WeddingStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM weddings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete wedding: %w", err)
	}
	return nil
}
