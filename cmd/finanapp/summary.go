package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/service"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and balance totals",
		RunE:  runSummary,
	}
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svc, closeStore, err := initService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	records, err := svc.ListAll(ctx)
	if err != nil {
		return err
	}

	summary := service.Summarize(records)
	indicator := service.BalanceIndicatorFor(summary.Balance)

	fmt.Printf("Records:  %d\n", len(records))
	fmt.Printf("Income:   %s\n", summary.Income.StringFixed(2))
	fmt.Printf("Expenses: %s\n", summary.Expenses.StringFixed(2))
	fmt.Printf("Balance:  %s (%s)\n", summary.Balance.StringFixed(2), indicator)
	return nil
}
