package store

import (
	"database/sql"
	"fmt"

	"github.com/rowanhale/seatwell/internal/model"
)

type VendorStore struct {
	db *sql.DB
}

func NewVendorStore(db *sql.DB) *VendorStore {
	return &VendorStore{db: db}
}

func scanVendorProfile(scanner interface{ Scan(...any) error }) (*model.VendorProfile, error) {
	var v model.VendorProfile
	err := scanner.Scan(
		&v.ID, &v.UserID, &v.BusinessName, &v.Category, &v.City,
		&v.Description, &v.PriceRange, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const vendorCols = `id, user_id, business_name, category, city, description, price_range, status, created_at, updated_at`

// Upsert creates the vendor's profile on first save and updates it afterward.
// Re-saving resets status to pending so edits go back through moderation.
func (s *VendorStore) Upsert(userID int64, businessName, category, city, description, priceRange string) (*model.VendorProfile, error) {
	_, err := s.db.Exec(
		`INSERT INTO vendor_profiles (user_id, business_name, category, city, description, price_range)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   business_name = excluded.business_name,
		   category = excluded.category,
		   city = excluded.city,
		   description = excluded.description,
		   price_range = excluded.price_range,
		   status = 'pending',
		   updated_at = datetime('now')`,
		userID, businessName, category, city, description, priceRange,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert vendor profile: %w", err)
	}
	return s.GetByUserID(userID)
}

func (s *VendorStore) GetByID(id int64) (*model.VendorProfile, error) {
	row := s.db.QueryRow(`SELECT `+vendorCols+` FROM vendor_profiles WHERE id = ?`, id)
	v, err := scanVendorProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor profile: %w", err)
	}
	return v, nil
}

func (s *VendorStore) GetByUserID(userID int64) (*model.VendorProfile, error) {
	row := s.db.QueryRow(`SELECT `+vendorCols+` FROM vendor_profiles WHERE user_id = ?`, userID)
	v, err := scanVendorProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor profile by user: %w", err)
	}
	return v, nil
}

// Search lists approved profiles, optionally narrowed by category, city, and
// a case-insensitive substring on the business name.
func (s *VendorStore) Search(category, city, query string) ([]model.VendorProfile, error) {
	q := `SELECT ` + vendorCols + ` FROM vendor_profiles WHERE status = 'approved'`
	var args []any
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	if city != "" {
		q += ` AND city = ? COLLATE NOCASE`
		args = append(args, city)
	}
	if query != "" {
		q += ` AND business_name LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(query)+"%")
	}
	q += ` ORDER BY business_name ASC`

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("search vendors: %w", err)
	}
	defer rows.Close()

	var vendors []model.VendorProfile
	for rows.Next() {
		v, err := scanVendorProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor profile: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

// ListByStatus lists profiles in one moderation state, oldest first so the
// moderation queue is FIFO.
func (s *VendorStore) ListByStatus(status string) ([]model.VendorProfile, error) {
	rows, err := s.db.Query(
		`SELECT `+vendorCols+` FROM vendor_profiles WHERE status = ? ORDER BY created_at ASC`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("list vendors by status: %w", err)
	}
	defer rows.Close()

	var vendors []model.VendorProfile
	for rows.Next() {
		v, err := scanVendorProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor profile: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (s *VendorStore) SetStatus(id int64, status string) (*model.VendorProfile, error) {
	_, err := s.db.Exec(
		`UPDATE vendor_profiles SET status = ?, updated_at = datetime('now') WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set vendor status: %w", err)
	}
	return s.GetByID(id)
}
