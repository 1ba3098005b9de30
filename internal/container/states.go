package container

import (
	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/service"
)

// State is one immutable snapshot emitted to subscribers. Exactly one
// of the variants below is emitted at a time; together they fully
// describe what a UI should render.
type State interface {
	isState()
}

// Initial is the state before any load has been attempted. Never
// re-entered once a load begins.
type Initial struct{}

// Loading means a load is outstanding and no record data is available
// to render yet.
type Loading struct{}

// InFlight describes which mutating operation, if any, is outstanding.
type InFlight struct {
	Adding   bool
	Updating bool
	Deleting bool
}

// Any reports whether any mutating operation is outstanding.
func (f InFlight) Any() bool {
	return f.Adding || f.Updating || f.Deleting
}

// Loaded is the steady state: the authoritative record list plus the
// active filter criteria and whatever subset they select.
type Loaded struct {
	Records  []model.FinanceRecord
	Filtered []model.FinanceRecord
	Filter   model.RecordFilter
	InFlight InFlight
}

// Visible returns the records a UI should display: the filtered subset
// while a filter is active, the full list otherwise.
func (s Loaded) Visible() []model.FinanceRecord {
	if s.Filter.Active() {
		return s.Filtered
	}
	return s.Records
}

// Operation identifies which mutating operation a success notification
// refers to.
type Operation int

const (
	OpAdd Operation = iota
	OpUpdate
	OpDelete
	OpClear
)

func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// OperationSucceeded is a transient marker carrying a success message
// and the post-operation record list. It is always immediately followed
// by a Loaded emission with the same records; it is not a resting state.
type OperationSucceeded struct {
	Message string
	Records []model.FinanceRecord
	Op      Operation
}

// Failed carries a typed error and, when available, the record list
// from immediately before the failure so a UI can keep showing stale
// data instead of blanking out.
type Failed struct {
	Err     *service.Error
	Records []model.FinanceRecord
}

func (Initial) isState()            {}
func (Loading) isState()            {}
func (Loaded) isState()             {}
func (OperationSucceeded) isState() {}
func (Failed) isState()             {}
