package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/luke-tf/finanapp/internal/service"
	"github.com/luke-tf/finanapp/internal/storage"
)

// initService opens the configured database, runs migrations, and
// wires up the record service. The returned closer releases the
// database handle.
func initService(ctx context.Context) (*service.RecordService, func() error, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/finanapp/finanapp.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return service.New(store), store.Close, nil
}

// expandPath resolves ~ and environment variables in a path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// parseAmount parses a positive decimal amount from a CLI argument.
func parseAmount(arg string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(arg))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", arg, err)
	}
	return amount, nil
}

// parseID parses a record id from a CLI argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: %w", arg, err)
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD argument.
func parseDate(arg string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(arg))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", arg, err)
	}
	return t, nil
}
