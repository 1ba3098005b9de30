package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/model"
)

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing record",
		Long: `Update a record's fields. Only the flags you pass change; everything
else keeps its stored value.

Examples:
  finanapp update 3 --title "Fancy Coffee"
  finanapp update 3 --amount 7.25 --income`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("amount", "", "new amount")
	cmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().Bool("income", false, "mark as income")
	cmd.Flags().Bool("expense", false, "mark as expense")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
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

	records, err := svc.ListAll(ctx)
	if err != nil {
		return err
	}

	var existing *model.FinanceRecord
	for i := range records {
		if records[i].ID == id {
			existing = &records[i]
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("no record with id %d", id)
	}

	// Build a new record value from the stored one plus whatever flags
	// were passed; the original is never mutated in place.
	updated := *existing

	if cmd.Flags().Changed("title") {
		updated.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("amount") {
		amountArg, _ := cmd.Flags().GetString("amount")
		updated.Amount, err = parseAmount(amountArg)
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("date") {
		dateArg, _ := cmd.Flags().GetString("date")
		updated.OccurredAt, err = parseDate(dateArg)
		if err != nil {
			return err
		}
	}

	income, _ := cmd.Flags().GetBool("income")
	expense, _ := cmd.Flags().GetBool("expense")
	switch {
	case income && expense:
		return fmt.Errorf("--income and --expense are mutually exclusive")
	case income:
		updated.IsExpense = false
	case expense:
		updated.IsExpense = true
	}

	if err := svc.Update(ctx, updated); err != nil {
		return err
	}

	fmt.Printf("Updated record %d\n", id)
	return nil
}
