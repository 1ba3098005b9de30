package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/service"
	"github.com/luke-tf/finanapp/internal/storage"
	"github.com/luke-tf/finanapp/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*service.RecordService, *testutil.FakeStore) {
	t.Helper()
	store := testutil.NewFakeStore()
	return service.NewWithClock(store, func() time.Time { return fixedNow }), store
}

// newSQLiteService wires the service to a real in-memory database for
// end-to-end coverage of the persistence path.
func newSQLiteService(t *testing.T) *service.RecordService {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = store.Close()
	})

	return service.NewWithClock(store, func() time.Time { return fixedNow })
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireValidation(t *testing.T, err error, contains ...string) {
	t.Helper()

	var typed *service.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, service.KindValidation, typed.Kind)
	for _, want := range contains {
		assert.Contains(t, typed.Message, want)
	}
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		amount   decimal.Decimal
		mentions []string
	}{
		{
			name:     "empty title",
			title:    "",
			amount:   dec("10"),
			mentions: []string{"title"},
		},
		{
			name:     "whitespace title",
			title:    "   ",
			amount:   dec("10"),
			mentions: []string{"title"},
		},
		{
			name:     "zero amount",
			title:    "x",
			amount:   dec("0"),
			mentions: []string{"amount"},
		},
		{
			name:     "negative amount",
			title:    "x",
			amount:   dec("-5"),
			mentions: []string{"amount"},
		},
		{
			name:     "amount over limit",
			title:    "x",
			amount:   dec("1000000000"),
			mentions: []string{"amount", "999999999.99"},
		},
		{
			name:     "title over limit",
			title:    longTitle(101),
			amount:   dec("10"),
			mentions: []string{"title", "100"},
		},
		{
			name:     "both problems reported together",
			title:    "",
			amount:   dec("0"),
			mentions: []string{"title", "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newService(t)
			err := svc.Add(context.Background(), tt.title, tt.amount, true)
			requireValidation(t, err, tt.mentions...)
			assert.Zero(t, store.Len(), "nothing should be persisted on validation failure")
		})
	}
}

func longTitle(n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = 'a'
	}
	return string(runes)
}

func TestAdd_TitleAtLimitAccepted(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Add(context.Background(), longTitle(100), dec("1"), false)
	assert.NoError(t, err)
}

func TestAdd_StampsCurrentTimeAndTrimsTitle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "  Coffee  ", dec("5.50"), true))

	records, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Coffee", records[0].Title)
	assert.Equal(t, fixedNow, records[0].OccurredAt)
	assert.True(t, records[0].Persisted())
}

func TestAdd_StoreFailureBecomesStorageError(t *testing.T) {
	svc, store := newService(t)
	store.AddErr = errors.New("disk I/O error")

	err := svc.Add(context.Background(), "Coffee", dec("5.50"), true)

	var typed *service.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, service.KindStorage, typed.Kind)
	assert.Contains(t, typed.Details(), "disk I/O error")
}

func TestListAll_DropsMalformedRecords(t *testing.T) {
	svc, store := newService(t)
	store.Seed(
		model.FinanceRecord{Title: "Good", Amount: dec("10"), OccurredAt: fixedNow},
		model.FinanceRecord{Title: "", Amount: dec("10"), OccurredAt: fixedNow},
		model.FinanceRecord{Title: "Negative", Amount: dec("-3"), OccurredAt: fixedNow},
		// Zero amounts and over-limit values are preserved: only the
		// documented empty-title and negative-amount cases are dropped.
		model.FinanceRecord{Title: "Zero", Amount: dec("0"), OccurredAt: fixedNow},
	)

	records, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Good", records[0].Title)
	assert.Equal(t, "Zero", records[1].Title)
}

func TestListAll_StoreFailurePropagates(t *testing.T) {
	svc, store := newService(t)
	store.ListErr = errors.New("database is locked")

	_, err := svc.ListAll(context.Background())

	var typed *service.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, service.KindStorage, typed.Kind)
}

func TestUpdate_RequiresPersistedRecord(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Update(context.Background(), model.FinanceRecord{
		Title:  "Coffee",
		Amount: dec("5.50"),
	})
	requireValidation(t, err, "not been saved")
}

func TestUpdate_AggregatesAllProblems(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Update(context.Background(), model.FinanceRecord{Amount: dec("-1")})

	var typed *service.Error
	require.ErrorAs(t, err, &typed)
	assert.Contains(t, typed.Message, "not been saved")
	assert.Contains(t, typed.Message, "title")
	assert.Contains(t, typed.Message, "amount")
}

func TestUpdate_ReplacesFieldsUnderSameID(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "Coffee", dec("5.50"), true))
	records, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	updated := model.FinanceRecord{
		ID:         records[0].ID,
		Title:      "Espresso",
		Amount:     dec("3.75"),
		OccurredAt: records[0].OccurredAt,
		IsExpense:  true,
	}
	require.NoError(t, svc.Update(ctx, updated))

	records, err = svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, updated.ID, records[0].ID)
	assert.Equal(t, "Espresso", records[0].Title)
	assert.Equal(t, "3.75", records[0].Amount.StringFixed(2))
}

func TestDelete(t *testing.T) {
	svc := newSQLiteService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "Coffee", dec("5.50"), true))
	records, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, svc.Delete(ctx, records[0].ID))

	records, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete_InvalidID(t *testing.T) {
	svc, _ := newService(t)

	requireValidation(t, svc.Delete(context.Background(), 0))
	requireValidation(t, svc.Delete(context.Background(), -1))
}

func TestDelete_UnknownIDBecomesStorageError(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Delete(context.Background(), 999)

	var typed *service.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, service.KindStorage, typed.Kind)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestClearAll(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "One", dec("1"), false))
	require.NoError(t, svc.Add(ctx, "Two", dec("2"), true))
	require.NoError(t, svc.ClearAll(ctx))
	assert.Zero(t, store.Len())
}

func TestRecentWithinDays(t *testing.T) {
	svc, _ := newService(t)

	records := []model.FinanceRecord{
		{Title: "Old", Amount: dec("1"), OccurredAt: fixedNow.AddDate(0, 0, -10)},
		{Title: "Recent", Amount: dec("2"), OccurredAt: fixedNow.AddDate(0, 0, -3)},
		{Title: "Today", Amount: dec("3"), OccurredAt: fixedNow},
	}

	recent, err := svc.RecentWithinDays(records, 7)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Recent", recent[0].Title)
	assert.Equal(t, "Today", recent[1].Title)
}

func TestRecentWithinDays_InvalidDayCount(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.RecentWithinDays(nil, 0)
	requireValidation(t, err, "days")

	_, err = svc.RecentWithinDays(nil, -1)
	requireValidation(t, err, "days")
}
