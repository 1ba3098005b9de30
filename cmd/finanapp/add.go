package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title> <amount>",
		Short: "Record a new income or expense entry",
		Long: `Record a new entry. Entries are expenses by default; pass --income
for money coming in.

Examples:
  finanapp add "Coffee" 5.50
  finanapp add "Salary" 3000 --income
  finanapp add "Rent" 1200 --date 2024-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().Bool("income", false, "record an inflow instead of an expense")
	cmd.Flags().String("date", "", "date of the entry (YYYY-MM-DD, default today)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	income, _ := cmd.Flags().GetBool("income")
	dateArg, _ := cmd.Flags().GetString("date")

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	rec := model.FinanceRecord{
		Title:     args[0],
		Amount:    amount,
		IsExpense: !income,
	}
	if dateArg != "" {
		rec.OccurredAt, err = parseDate(dateArg)
		if err != nil {
			return err
		}
	}

	svc, closeStore, err := initService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	if err := svc.AddRecord(ctx, rec); err != nil {
		return err
	}

	kind := "expense"
	if income {
		kind = "income"
	}
	fmt.Printf("Added %s %q (%s)\n", kind, rec.Title, amount.StringFixed(2))
	return nil
}
