package store

import (
	"database/sql"
	"fmt"

	"github.com/rowanhale/seatwell/internal/model"
)

type CheckInStore struct {
	db *sql.DB
}

func NewCheckInStore(db *sql.DB) *CheckInStore {
	return &CheckInStore{db: db}
}

func scanCheckInRecord(scanner interface{ Scan(...any) error }) (*model.CheckInRecord, error) {
	var r model.CheckInRecord
	err := scanner.Scan(&r.ID, &r.GuestID, &r.WeddingID, &r.StaffSessionID, &r.Method, &r.CheckedInAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const checkInCols = `id, guest_id, wedding_id, staff_session_id, method, checked_in_at`

// CreateIfAbsent attempts the one-and-only check-in insert for a guest.
// The insert is conditional on the UNIQUE(guest_id) constraint: under
// concurrent callers exactly one row is created and the losers read back the
// winner's row. Returns the record and whether this call created it.
//
// A check-then-insert here would race (two readers both see "no record yet"
// before either commits), so the decision is pushed into the statement itself.
func (s *CheckInStore) CreateIfAbsent(guestID, weddingID, staffSessionID int64, method string) (*model.CheckInRecord, bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO check_in_records (guest_id, wedding_id, staff_session_id, method)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(guest_id) DO NOTHING`,
		guestID, weddingID, staffSessionID, method,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert check-in: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected: %w", err)
	}

	rec, err := s.GetByGuestID(guestID)
	if err != nil {
		return nil, false, err
	}
	if rec == nil {
		// Conflict with no surviving row means the winner was deleted between
		// our insert and read; treat it as a storage error, not a duplicate.
		return nil, false, fmt.Errorf("check-in record missing after insert for guest %d", guestID)
	}
	return rec, affected == 1, nil
}

func (s *CheckInStore) GetByGuestID(guestID int64) (*model.CheckInRecord, error) {
	row := s.db.QueryRow(`SELECT `+checkInCols+` FROM check_in_records WHERE guest_id = ?`, guestID)
	rec, err := scanCheckInRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in by guest: %w", err)
	}
	return rec, nil
}

func (s *CheckInStore) CountByWedding(weddingID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM check_in_records WHERE wedding_id = ?`, weddingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count check-ins: %w", err)
	}
	return n, nil
}

// ListRecent returns the latest check-ins for a wedding with guest names,
// newest first.
func (s *CheckInStore) ListRecent(weddingID int64, limit int) ([]model.RecentCheckIn, error) {
	rows, err := s.db.Query(
		`SELECT c.guest_id, g.name, c.method, c.checked_in_at
		 FROM check_in_records c
		 JOIN guests g ON g.id = c.guest_id
		 WHERE c.wedding_id = ?
		 ORDER BY c.checked_in_at DESC, c.id DESC
		 LIMIT ?`,
		weddingID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent check-ins: %w", err)
	}
	defer rows.Close()

	var recent []model.RecentCheckIn
	for rows.Next() {
		var r model.RecentCheckIn
		if err := rows.Scan(&r.GuestID, &r.GuestName, &r.Method, &r.CheckedInAt); err != nil {
			return nil, fmt.Errorf("scan recent check-in: %w", err)
		}
		recent = append(recent, r)
	}
	return recent, rows.Err()
}
