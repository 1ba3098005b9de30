// Package container implements the event-driven state reducer at the
// heart of the tracker. Intents flow in through Dispatch; immutable
// state snapshots flow out through States. The container owns the
// authoritative record list and never renders anything itself.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/service"
)

const defaultBuffer = 16

// Container is a single-writer reducer: it processes one event to
// completion, including all of that event's emissions, before picking
// up the next. Only the Run goroutine ever touches current.
type Container struct {
	svc     *service.RecordService
	events  chan Event
	states  chan State
	current State
}

// New creates a container in the Initial state. Run must be started
// before dispatched events have any effect.
func New(svc *service.RecordService) *Container {
	return &Container{
		svc:     svc,
		events:  make(chan Event, defaultBuffer),
		states:  make(chan State, defaultBuffer),
		current: Initial{},
	}
}

// Dispatch queues an event. Fire-and-forget: results are observable
// only through subsequent state emissions.
func (c *Container) Dispatch(e Event) {
	c.events <- e
}

// States returns the emission stream. Emissions for a given event are
// strictly ordered and never interleave with a later event's.
func (c *Container) States() <-chan State {
	return c.states
}

// Run processes events until ctx is canceled, then closes the state
// stream.
func (c *Container) Run(ctx context.Context) {
	defer close(c.states)
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-c.events:
			c.handle(ctx, e)
		}
	}
}

func (c *Container) emit(ctx context.Context, s State) {
	c.current = s
	select {
	case c.states <- s:
	case <-ctx.Done():
	}
}

func (c *Container) handle(ctx context.Context, e Event) {
	switch e.(type) {
	case Load:
		c.load(ctx, false)
		return
	case Refresh:
		c.load(ctx, true)
		return
	}

	// Mutations and filtering are undefined outside the loaded steady
	// state; such events are silently ignored.
	cur, ok := c.current.(Loaded)
	if !ok {
		slog.Debug("ignoring event outside loaded state", "event", fmt.Sprintf("%T", e))
		return
	}

	switch ev := e.(type) {
	case Add:
		c.mutate(ctx, cur, OpAdd, "Record added successfully", setAdding, func(mctx context.Context) error {
			return c.svc.Add(mctx, ev.Title, ev.Amount, ev.IsExpense)
		})
	case Update:
		c.mutate(ctx, cur, OpUpdate, "Record updated successfully", setUpdating, func(mctx context.Context) error {
			return c.svc.Update(mctx, ev.Record)
		})
	case Delete:
		c.mutate(ctx, cur, OpDelete, "Record deleted successfully", setDeleting, func(mctx context.Context) error {
			return c.svc.Delete(mctx, ev.ID)
		})
	case ClearAll:
		c.clearAll(ctx, cur)
	case Search:
		f := cur.Filter
		f.Query = strings.TrimSpace(ev.Query)
		c.applyFilter(ctx, cur, f)
	case FilterByDateRange:
		f := cur.Filter
		start, end := ev.Start, ev.End
		f.From, f.To = &start, &end
		c.applyFilter(ctx, cur, f)
	case FilterByType:
		f := cur.Filter
		f.IsExpense = ev.IsExpense
		c.applyFilter(ctx, cur, f)
	case ClearFilters:
		c.applyFilter(ctx, cur, model.RecordFilter{})
	}
}

// load handles Load and Refresh. A Refresh on a Loaded container skips
// the Loading emission and keeps the active filter; a failed Refresh
// also keeps the prior records so the UI is not forced to blank out.
func (c *Container) load(ctx context.Context, refresh bool) {
	cur, loaded := c.current.(Loaded)
	if !refresh || !loaded {
		c.emit(ctx, Loading{})
	}

	records, err := c.svc.ListAll(ctx)
	if err != nil {
		var prior []model.FinanceRecord
		if refresh && loaded {
			prior = cur.Records
		}
		c.emit(ctx, Failed{Err: service.Classify(err), Records: prior})
		return
	}

	next := Loaded{Records: records}
	if refresh && loaded {
		next.Filter = cur.Filter
	}
	next.Filtered = derive(next.Records, next.Filter)
	c.emit(ctx, next)
}

// mutate runs one mutating operation through the shared emission
// pattern: raise the in-flight flag, run the operation, then either
// announce success over a refreshed list or drop the flag and fail
// with the prior records intact. The flag is always false again before
// a Failed emission, so a UI never shows a spinner next to an error.
func (c *Container) mutate(ctx context.Context, cur Loaded, op Operation, successMsg string, setFlag func(*InFlight, bool), fn func(context.Context) error) {
	busy := cur
	setFlag(&busy.InFlight, true)
	c.emit(ctx, busy)

	err := fn(ctx)
	if err == nil {
		var records []model.FinanceRecord
		records, err = c.svc.ListAll(ctx)
		if err == nil {
			c.emit(ctx, OperationSucceeded{Message: successMsg, Op: op, Records: records})
			next := Loaded{Records: records, Filter: cur.Filter}
			next.Filtered = derive(records, cur.Filter)
			c.emit(ctx, next)
			return
		}
	}

	idle := cur
	setFlag(&idle.InFlight, false)
	c.emit(ctx, idle)
	c.emit(ctx, Failed{Err: service.Classify(err), Records: cur.Records})
}

func (c *Container) clearAll(ctx context.Context, cur Loaded) {
	if err := c.svc.ClearAll(ctx); err != nil {
		c.emit(ctx, Failed{Err: service.Classify(err), Records: cur.Records})
		return
	}

	empty := []model.FinanceRecord{}
	c.emit(ctx, OperationSucceeded{Message: "All records cleared successfully", Op: OpClear, Records: empty})
	next := Loaded{Records: empty, Filter: cur.Filter}
	next.Filtered = derive(empty, cur.Filter)
	c.emit(ctx, next)
}

// applyFilter recomputes the filtered subset synchronously and emits a
// single Loaded snapshot. Recomputation is always from the full list;
// there is no incremental filtering.
func (c *Container) applyFilter(ctx context.Context, cur Loaded, f model.RecordFilter) {
	next := cur
	next.Filter = f
	next.Filtered = derive(cur.Records, f)
	c.emit(ctx, next)
}

// derive keeps Filtered consistent with the filter fields it was
// computed from: nil whenever no filter is active.
func derive(records []model.FinanceRecord, f model.RecordFilter) []model.FinanceRecord {
	if !f.Active() {
		return nil
	}
	return f.Apply(records)
}

func setAdding(f *InFlight, v bool)   { f.Adding = v }
func setUpdating(f *InFlight, v bool) { f.Updating = v }
func setDeleting(f *InFlight, v bool) { f.Deleting = v }
