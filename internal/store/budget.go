package store

import (
	"database/sql"
	"fmt"

	"github.com/rowanhale/seatwell/internal/model"
)

type BudgetStore struct {
	db *sql.DB
}

func NewBudgetStore(db *sql.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

func scanBudgetItem(scanner interface{ Scan(...any) error }) (*model.BudgetItem, error) {
	var b model.BudgetItem
	err := scanner.Scan(
		&b.ID, &b.WeddingID, &b.Category, &b.Description,
		&b.EstimatedCents, &b.ActualCents, &b.Paid, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const budgetCols = `id, wedding_id, category, description, estimated_cents, actual_cents, paid, created_at, updated_at`

func (s *BudgetStore) Create(weddingID int64, category, description string, estimatedCents, actualCents int64, paid bool) (*model.BudgetItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO budget_items (wedding_id, category, description, estimated_cents, actual_cents, paid)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		weddingID, category, description, estimatedCents, actualCents, paid,
	)
	if err != nil {
		return nil, fmt.Errorf("insert budget item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *BudgetStore) GetByID(id int64) (*model.BudgetItem, error) {
	row := s.db.QueryRow(`SELECT `+budgetCols+` FROM budget_items WHERE id = ?`, id)
	b, err := scanBudgetItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget item: %w", err)
	}
	return b, nil
}

func (s *BudgetStore) ListByWedding(weddingID int64) ([]model.BudgetItem, error) {
	rows, err := s.db.Query(
		`SELECT `+budgetCols+` FROM budget_items WHERE wedding_id = ? ORDER BY category ASC, id ASC`,
		weddingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var items []model.BudgetItem
	for rows.Next() {
		b, err := scanBudgetItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (s *BudgetStore) Update(id int64, category, description string, estimatedCents, actualCents int64, paid bool) (*model.BudgetItem, error) {
	_, err := s.db.Exec(
		`UPDATE budget_items SET category = ?, description = ?, estimated_cents = ?, actual_cents = ?, paid = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		category, description, estimatedCents, actualCents, paid, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update budget item: %w", err)
	}
	return s.GetByID(id)
}

func (s *BudgetStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM budget_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget item: %w", err)
	}
	return nil
}

// Summary totals a wedding's budget in SQL rather than walking rows in Go.
func (s *BudgetStore) Summary(weddingID int64) (*model.BudgetSummary, error) {
	var sum model.BudgetSummary
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(estimated_cents), 0),
		        COALESCE(SUM(actual_cents), 0),
		        COALESCE(SUM(CASE WHEN paid THEN actual_cents ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN NOT paid THEN actual_cents ELSE 0 END), 0),
		        COUNT(*)
		 FROM budget_items WHERE wedding_id = ?`,
		weddingID,
	).Scan(&sum.EstimatedCents, &sum.ActualCents, &sum.PaidCents, &sum.UnpaidCents, &sum.ItemCount)
	if err != nil {
		return nil, fmt.Errorf("budget summary: %w", err)
	}
	return &sum, nil
}
