package store

import (
	"database/sql"
	"fmt"

	"github.com/rowanhale/seatwell/internal/model"
)

type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

func scanLead(scanner interface{ Scan(...any) error }) (*model.Lead, error) {
	var l model.Lead
	err := scanner.Scan(&l.ID, &l.VendorID, &l.WeddingID, &l.CoupleID, &l.Message, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLeadMessage(scanner interface{ Scan(...any) error }) (*model.LeadMessage, error) {
	var m model.LeadMessage
	err := scanner.Scan(&m.ID, &m.LeadID, &m.SenderID, &m.Body, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const leadCols = `id, vendor_id, wedding_id, couple_id, message, status, created_at, updated_at`
const leadMessageCols = `id, lead_id, sender_id, body, created_at`

func (s *LeadStore) Create(vendorID, weddingID, coupleID int64, message string) (*model.Lead, error) {
	result, err := s.db.Exec(
		`INSERT INTO leads (vendor_id, wedding_id, couple_id, message) VALUES (?, ?, ?, ?)`,
		vendorID, weddingID, coupleID, message,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *LeadStore) GetByID(id int64) (*model.Lead, error) {
	row := s.db.QueryRow(`SELECT `+leadCols+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (s *LeadStore) ListByCouple(coupleID int64) ([]model.Lead, error) {
	return s.list(`couple_id`, coupleID)
}

func (s *LeadStore) ListByVendor(vendorID int64) ([]model.Lead, error) {
	return s.list(`vendor_id`, vendorID)
}

func (s *LeadStore) list(col string, id int64) ([]model.Lead, error) {
	rows, err := s.db.Query(
		`SELECT `+leadCols+` FROM leads WHERE `+col+` = ? ORDER BY updated_at DESC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func (s *LeadStore) SetStatus(id int64, status string) (*model.Lead, error) {
	_, err := s.db.Exec(
		`UPDATE leads SET status = ?, updated_at = datetime('now') WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set lead status: %w", err)
	}
	return s.GetByID(id)
}

func (s *LeadStore) AddMessage(leadID, senderID int64, body string) (*model.LeadMessage, error) {
	result, err := s.db.Exec(
		`INSERT INTO lead_messages (lead_id, sender_id, body) VALUES (?, ?, ?)`,
		leadID, senderID, body,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lead message: %w", err)
	}
	// Bump the thread so lead lists sort by latest activity.
	if _, err := s.db.Exec(`UPDATE leads SET updated_at = datetime('now') WHERE id = ?`, leadID); err != nil {
		return nil, fmt.Errorf("touch lead: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+leadMessageCols+` FROM lead_messages WHERE id = ?`, id)
	return scanLeadMessage(row)
}

func (s *LeadStore) ListMessages(leadID int64) ([]model.LeadMessage, error) {
	rows, err := s.db.Query(
		`SELECT `+leadMessageCols+` FROM lead_messages WHERE lead_id = ? ORDER BY created_at ASC, id ASC`,
		leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lead messages: %w", err)
	}
	defer rows.Close()

	var messages []model.LeadMessage
	for rows.Next() {
		m, err := scanLeadMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}
