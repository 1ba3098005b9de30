// Package service implements validation and business rules for finance
// records. It is the only caller of the record store and the boundary
// where raw store failures become typed errors.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luke-tf/finanapp/internal/model"
)

// MaxTitleLength is the longest accepted record title, after trimming.
const MaxTitleLength = 100

// MaxAmount is the largest accepted record amount.
var MaxAmount = decimal.RequireFromString("999999999.99")

// RecordStore is the persistence surface the service depends on.
// *storage.SQLiteStore satisfies it; tests substitute fakes.
type RecordStore interface {
	ListAll(ctx context.Context) ([]model.FinanceRecord, error)
	Add(ctx context.Context, r model.FinanceRecord) (int64, error)
	Update(ctx context.Context, r model.FinanceRecord) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// RecordService validates inputs and applies business rules before
// delegating to the store.
type RecordService struct {
	store RecordStore
	now   func() time.Time
}

// New creates a record service backed by the given store.
func New(store RecordStore) *RecordService {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates a record service with an injected clock, used
// by tests to pin time-dependent behavior.
func NewWithClock(store RecordStore, now func() time.Time) *RecordService {
	return &RecordService{store: store, now: now}
}

// ListAll returns every persisted record. Individual records that have
// become malformed in storage (empty title or negative amount) are
// silently dropped; store failures propagate as typed errors.
func (s *RecordService) ListAll(ctx context.Context) ([]model.FinanceRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, Classify(fmt.Errorf("failed to list records: %w", err))
	}

	kept := make([]model.FinanceRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Title) == "" || r.Amount.Sign() < 0 {
			continue
		}
		kept = append(kept, r)
	}
	return kept, nil
}

// Add validates the input, stamps the record with the current time,
// and persists it.
func (s *RecordService) Add(ctx context.Context, title string, amount decimal.Decimal, isExpense bool) error {
	return s.AddRecord(ctx, model.FinanceRecord{
		Title:     title,
		Amount:    amount,
		IsExpense: isExpense,
	})
}

// AddRecord persists a fully specified record, validating it first.
// A zero OccurredAt defaults to the current time. Used directly by the
// statement importer, which carries its own dates.
func (s *RecordService) AddRecord(ctx context.Context, r model.FinanceRecord) error {
	if err := validateFields(r.Title, r.Amount); err != nil {
		return err
	}

	r.Title = strings.TrimSpace(r.Title)
	r.ID = 0
	if r.OccurredAt.IsZero() {
		r.OccurredAt = s.now()
	}

	if _, err := s.store.Add(ctx, r); err != nil {
		return NewStorageError("Could not save the record", err)
	}
	return nil
}

// Update replaces the persisted record identified by r.ID with r's
// field values. The record must have been persisted before.
func (s *RecordService) Update(ctx context.Context, r model.FinanceRecord) error {
	var problems []string
	if !r.Persisted() {
		problems = append(problems, "record has not been saved yet")
	}
	problems = append(problems, fieldProblems(r.Title, r.Amount)...)
	if len(problems) > 0 {
		return NewValidationError(strings.Join(problems, "; "))
	}

	r.Title = strings.TrimSpace(r.Title)
	if r.OccurredAt.IsZero() {
		r.OccurredAt = s.now()
	}

	if err := s.store.Update(ctx, r); err != nil {
		return NewStorageError("Could not update the record", err)
	}
	return nil
}

// Delete permanently removes the record with the given id.
func (s *RecordService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError(fmt.Sprintf("invalid record id: %d", id))
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return NewStorageError("Could not delete the record", err)
	}
	return nil
}

// ClearAll removes every record. Irreversible.
func (s *RecordService) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return NewStorageError("Could not clear the records", err)
	}
	return nil
}

// RecentWithinDays returns the records dated within the last `days`
// days, counting back from the current time.
func (s *RecordService) RecentWithinDays(records []model.FinanceRecord, days int) ([]model.FinanceRecord, error) {
	if days <= 0 {
		return nil, NewValidationError(fmt.Sprintf("days must be greater than zero, got %d", days))
	}

	cutoff := s.now().AddDate(0, 0, -days)
	recent := make([]model.FinanceRecord, 0, len(records))
	for _, r := range records {
		if !r.OccurredAt.Before(cutoff) {
			recent = append(recent, r)
		}
	}
	return recent, nil
}

// validateFields checks title and amount against the documented
// invariants, reporting every violation at once so a UI can show all
// problems in a single pass.
func validateFields(title string, amount decimal.Decimal) error {
	if problems := fieldProblems(title, amount); len(problems) > 0 {
		return NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}

func fieldProblems(title string, amount decimal.Decimal) []string {
	var problems []string

	trimmed := strings.TrimSpace(title)
	switch {
	case trimmed == "":
		problems = append(problems, "title must not be empty")
	case len([]rune(trimmed)) > MaxTitleLength:
		problems = append(problems, fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}

	switch {
	case amount.Sign() <= 0:
		problems = append(problems, "amount must be greater than zero")
	case amount.GreaterThan(MaxAmount):
		problems = append(problems, fmt.Sprintf("amount must not exceed %s", MaxAmount.StringFixed(2)))
	}

	return problems
}
