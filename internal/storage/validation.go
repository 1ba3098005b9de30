package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luke-tf/finanapp/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidID     = errors.New("invalid record id")
	ErrInvalidRecord = errors.New("invalid record")
	ErrNotFound      = errors.New("record not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures an id refers to a persisted record.
func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	return nil
}

// validateRecord performs the minimal structural checks the store
// needs before writing a row. Business-rule validation (length and
// amount bounds) belongs to the service layer.
func validateRecord(r model.FinanceRecord) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidRecord)
	}
	if r.Amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	return nil
}
