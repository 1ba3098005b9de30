package container

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/luke-tf/finanapp/internal/model"
)

// Event is an immutable description of a requested state change,
// dispatched into the container. The set of implementations below is
// closed; the container's handler switch is exhaustive over it.
type Event interface {
	isEvent()
}

// Load requests a full load of the record list, always passing through
// the Loading state first.
type Load struct{}

// Refresh re-reads the record list. When the container is already
// Loaded the Loading emission is skipped to avoid UI flicker.
type Refresh struct{}

// Add requests creation of a new record.
type Add struct {
	Title     string
	Amount    decimal.Decimal
	IsExpense bool
}

// Update requests replacement of a persisted record's fields, addressed
// by Record.ID.
type Update struct {
	Record model.FinanceRecord
}

// Delete requests permanent removal of the record with the given id.
type Delete struct {
	ID int64
}

// ClearAll requests removal of every record. Irreversible.
type ClearAll struct{}

// Search sets the title filter. An empty (or all-whitespace) query
// clears it.
type Search struct {
	Query string
}

// FilterByDateRange restricts the visible records to an inclusive
// day-granularity date range.
type FilterByDateRange struct {
	Start time.Time
	End   time.Time
}

// FilterByType restricts visible records to expenses (true), income
// (false), or both (nil).
type FilterByType struct {
	IsExpense *bool
}

// ClearFilters resets search, date range and type filter at once.
type ClearFilters struct{}

func (Load) isEvent()              {}
func (Refresh) isEvent()           {}
func (Add) isEvent()               {}
func (Update) isEvent()            {}
func (Delete) isEvent()            {}
func (ClearAll) isEvent()          {}
func (Search) isEvent()            {}
func (FilterByDateRange) isEvent() {}
func (FilterByType) isEvent()      {}
func (ClearFilters) isEvent()      {}
