// Package model defines the core domain types shared by the storage,
// service, and container layers.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FinanceRecord represents a single income or expense entry.
type FinanceRecord struct {
	OccurredAt time.Time
	Title      string
	Amount     decimal.Decimal
	ID         int64
	IsExpense  bool
}

// Persisted reports whether the record has been saved to the store.
// The store assigns IDs starting at 1; an ID of zero means the record
// only exists in memory and cannot be updated or deleted.
func (r FinanceRecord) Persisted() bool {
	return r.ID > 0
}

// Signed returns the amount with expenses negated, so that summing
// signed amounts over a list of records yields the net balance.
func (r FinanceRecord) Signed() decimal.Decimal {
	if r.IsExpense {
		return r.Amount.Neg()
	}
	return r.Amount
}

func (r FinanceRecord) String() string {
	kind := "income"
	if r.IsExpense {
		kind = "expense"
	}
	return fmt.Sprintf("FinanceRecord{id=%d, title=%q, amount=%s, %s, %s}",
		r.ID, r.Title, r.Amount.StringFixed(2), kind, r.OccurredAt.Format("2006-01-02"))
}

// Summary aggregates a set of records into income, expense and net
// balance totals.
type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// BalanceIndicator classifies a balance for display purposes.
type BalanceIndicator int

const (
	// BalanceNeutral means the balance is exactly zero.
	BalanceNeutral BalanceIndicator = iota
	// BalancePositive means more has come in than gone out.
	BalancePositive
	// BalanceNegative means more has gone out than come in.
	BalanceNegative
)

func (b BalanceIndicator) String() string {
	switch b {
	case BalancePositive:
		return "positive"
	case BalanceNegative:
		return "negative"
	default:
		return "neutral"
	}
}
