// Package testutil provides test doubles shared across packages.
package testutil

import (
	"context"
	"fmt"
	"sort"

	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/storage"
)

// FakeStore is an in-memory RecordStore with per-operation error
// injection, used to drive failure paths that are hard to provoke in a
// real SQLite database.
type FakeStore struct {
	records map[int64]model.FinanceRecord
	nextID  int64

	ListErr   error
	AddErr    error
	UpdateErr error
	DeleteErr error
	ClearErr  error
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		records: make(map[int64]model.FinanceRecord),
		nextID:  1,
	}
}

// Seed inserts records directly, bypassing validation, and returns the
// assigned ids. Useful for planting malformed rows.
func (f *FakeStore) Seed(records ...model.FinanceRecord) []int64 {
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if r.ID == 0 {
			r.ID = f.nextID
			f.nextID++
		} else if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
		f.records[r.ID] = r
		ids = append(ids, r.ID)
	}
	return ids
}

// ListAll returns all records ordered by id.
func (f *FakeStore) ListAll(_ context.Context) ([]model.FinanceRecord, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	ids := make([]int64, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.FinanceRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.records[id])
	}
	return out, nil
}

// Add stores the record and assigns the next id.
func (f *FakeStore) Add(_ context.Context, r model.FinanceRecord) (int64, error) {
	if f.AddErr != nil {
		return 0, f.AddErr
	}

	r.ID = f.nextID
	f.nextID++
	f.records[r.ID] = r
	return r.ID, nil
}

// Update replaces the record with r.ID.
func (f *FakeStore) Update(_ context.Context, r model.FinanceRecord) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if _, ok := f.records[r.ID]; !ok {
		return fmt.Errorf("%w: id %d", storage.ErrNotFound, r.ID)
	}
	f.records[r.ID] = r
	return nil
}

// Delete removes the record with the given id.
func (f *FakeStore) Delete(_ context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
	}
	delete(f.records, id)
	return nil
}

// Clear removes every record.
func (f *FakeStore) Clear(_ context.Context) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.records = make(map[int64]model.FinanceRecord)
	return nil
}

// Len reports how many records are stored.
func (f *FakeStore) Len() int {
	return len(f.records)
}
