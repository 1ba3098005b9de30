package model

import (
	"strings"
	"time"
)

// RecordFilter holds the active filter criteria for a record list.
// Pointer fields distinguish "not set" from zero values; an unset
// criterion never excludes a record.
type RecordFilter struct {
	From      *time.Time // Start of date range (inclusive, day granularity)
	To        *time.Time // End of date range (inclusive, day granularity)
	IsExpense *bool      // nil = both kinds, true = expenses only, false = income only
	Query     string     // Case-insensitive substring match on title
}

// Active reports whether any criterion is set. The date range only
// counts when both bounds are present.
func (f RecordFilter) Active() bool {
	return f.Query != "" || (f.From != nil && f.To != nil) || f.IsExpense != nil
}

// Matches reports whether a record satisfies every active criterion.
// Criteria combine with logical AND, so the result is independent of
// the order they were set in.
func (f RecordFilter) Matches(r FinanceRecord) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.From != nil && f.To != nil {
		day := dayOf(r.OccurredAt)
		if day.Before(dayOf(*f.From)) || day.After(dayOf(*f.To)) {
			return false
		}
	}
	if f.IsExpense != nil && r.IsExpense != *f.IsExpense {
		return false
	}
	return true
}

// Apply returns the subset of records matching the filter. The result
// is always a fresh slice; the input is never mutated.
func (f RecordFilter) Apply(records []FinanceRecord) []FinanceRecord {
	matched := make([]FinanceRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// dayOf truncates a timestamp to its calendar day so range checks are
// inclusive of records anywhere on a boundary day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
