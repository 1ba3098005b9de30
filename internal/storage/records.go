package storage

import (
	"context"
	"fmt"

	"github.com/luke-tf/finanapp/internal/model"
	"github.com/shopspring/decimal"
)

// ListAll returns every persisted record in insertion order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]model.FinanceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, amount, occurred_at, is_expense FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]model.FinanceRecord, 0)
	for rows.Next() {
		var (
			r         model.FinanceRecord
			amount    string
			isExpense int
		)
		if err := rows.Scan(&r.ID, &r.Title, &amount, &r.OccurredAt, &isExpense); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for record %d: %w", r.ID, err)
		}
		r.IsExpense = isExpense != 0
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Add persists a new record and returns the id the database assigned.
func (s *SQLiteStore) Add(ctx context.Context, r model.FinanceRecord) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRecord(r); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO records (title, amount, occurred_at, is_expense) VALUES (?, ?, ?, ?)`,
		r.Title, r.Amount.String(), r.OccurredAt.UTC(), boolToInt(r.IsExpense))
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned id: %w", err)
	}
	return id, nil
}

// Update replaces the stored row for r.ID with r's field values.
// Returns ErrNotFound if no row has that id.
func (s *SQLiteStore) Update(ctx context.Context, r model.FinanceRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(r.ID); err != nil {
		return err
	}
	if err := validateRecord(r); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE records SET title = ?, amount = ?, occurred_at = ?, is_expense = ? WHERE id = ?`,
		r.Title, r.Amount.String(), r.OccurredAt.UTC(), boolToInt(r.IsExpense), r.ID)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", r.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, r.ID)
	}
	return nil
}

// Delete permanently removes the record with the given id. Returns
// ErrNotFound if no row has that id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// Clear removes every record. Irreversible.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// Count returns the number of persisted records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
