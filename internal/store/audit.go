package store

import (
	"database/sql"
	"fmt"

	"github.com/rowanhale/seatwell/internal/model"
)

type AuditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

const auditCols = `id, actor_id, action, entity, entity_id, detail, created_at`

// Record appends an audit entry. Entries are write-once; there is no update
// or delete path.
func (s *AuditStore) Record(actorID int64, action, entity string, entityID int64, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO audit_log (actor_id, action, entity, entity_id, detail) VALUES (?, ?, ?, ?, ?)`,
		actorID, action, entity, entityID, detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *AuditStore) List(limit int) ([]model.AuditEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+auditCols+` FROM audit_log ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
