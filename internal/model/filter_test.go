package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func record(title string, amount string, isExpense bool, occurredAt time.Time) FinanceRecord {
	return FinanceRecord{
		Title:      title,
		Amount:     decimal.RequireFromString(amount),
		IsExpense:  isExpense,
		OccurredAt: occurredAt,
	}
}

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func TestRecordFilter_Matches(t *testing.T) {
	coffee := record("Coffee Shop", "5.50", true, date(2024, 3, 10))
	salary := record("Salary", "3000", false, date(2024, 3, 1))

	tests := []struct {
		name   string
		filter RecordFilter
		record FinanceRecord
		want   bool
	}{
		{
			name:   "empty filter matches everything",
			filter: RecordFilter{},
			record: coffee,
			want:   true,
		},
		{
			name:   "query matches case-insensitively",
			filter: RecordFilter{Query: "coffee"},
			record: coffee,
			want:   true,
		},
		{
			name:   "query substring in the middle",
			filter: RecordFilter{Query: "fee"},
			record: coffee,
			want:   true,
		},
		{
			name:   "query excludes non-matching title",
			filter: RecordFilter{Query: "coffee"},
			record: salary,
			want:   false,
		},
		{
			name: "date range includes boundary days",
			filter: RecordFilter{
				From: timePtr(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)),
				To:   timePtr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
			},
			record: coffee,
			want:   true,
		},
		{
			name: "date range excludes earlier records",
			filter: RecordFilter{
				From: timePtr(date(2024, 3, 5)),
				To:   timePtr(date(2024, 3, 31)),
			},
			record: salary,
			want:   false,
		},
		{
			name:   "half-open date range is inactive",
			filter: RecordFilter{From: timePtr(date(2024, 3, 20))},
			record: coffee,
			want:   true,
		},
		{
			name:   "type filter expenses only",
			filter: RecordFilter{IsExpense: boolPtr(true)},
			record: salary,
			want:   false,
		},
		{
			name:   "type filter income only",
			filter: RecordFilter{IsExpense: boolPtr(false)},
			record: salary,
			want:   true,
		},
		{
			name: "all criteria must hold",
			filter: RecordFilter{
				Query:     "coffee",
				From:      timePtr(date(2024, 3, 1)),
				To:        timePtr(date(2024, 3, 31)),
				IsExpense: boolPtr(false),
			},
			record: coffee,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.record))
		})
	}
}

func TestRecordFilter_Active(t *testing.T) {
	assert.False(t, RecordFilter{}.Active())
	assert.True(t, RecordFilter{Query: "x"}.Active())
	assert.True(t, RecordFilter{IsExpense: boolPtr(true)}.Active())
	assert.False(t, RecordFilter{From: timePtr(date(2024, 1, 1))}.Active(),
		"a single date bound should not activate the range")
	assert.True(t, RecordFilter{
		From: timePtr(date(2024, 1, 1)),
		To:   timePtr(date(2024, 1, 31)),
	}.Active())
}

// Applying the criteria one at a time, in any order, must select the
// same records as applying them all at once.
func TestRecordFilter_CompositionOrderIndependent(t *testing.T) {
	records := []FinanceRecord{
		record("Coffee Shop", "5.50", true, date(2024, 3, 10)),
		record("Coffee Beans", "12.00", true, date(2024, 4, 2)),
		record("Coffee Refund", "5.50", false, date(2024, 3, 11)),
		record("Salary", "3000", false, date(2024, 3, 1)),
	}

	query := RecordFilter{Query: "coffee"}
	dates := RecordFilter{From: timePtr(date(2024, 3, 1)), To: timePtr(date(2024, 3, 31))}
	kind := RecordFilter{IsExpense: boolPtr(true)}
	combined := RecordFilter{
		Query:     query.Query,
		From:      dates.From,
		To:        dates.To,
		IsExpense: kind.IsExpense,
	}

	want := combined.Apply(records)

	orders := [][]RecordFilter{
		{query, dates, kind},
		{kind, query, dates},
		{dates, kind, query},
	}
	for _, order := range orders {
		got := records
		for _, f := range order {
			got = f.Apply(got)
		}
		assert.Equal(t, want, got)
	}
}

func TestRecordFilter_ApplyReturnsEmptyNotNil(t *testing.T) {
	got := RecordFilter{Query: "nothing"}.Apply([]FinanceRecord{
		record("Salary", "3000", false, date(2024, 3, 1)),
	})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
