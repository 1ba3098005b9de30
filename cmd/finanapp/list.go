package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/model"
	"github.com/luke-tf/finanapp/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally filtered",
		Long: `List records. Search, date-range and type filters combine with AND.

Examples:
  finanapp list
  finanapp list --search coffee
  finanapp list --from 2024-03-01 --to 2024-03-31 --expenses
  finanapp list --recent 7`,
		RunE: runList,
	}

	cmd.Flags().String("search", "", "case-insensitive substring match on titles")
	cmd.Flags().String("from", "", "start of date range (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end of date range (YYYY-MM-DD)")
	cmd.Flags().Bool("expenses", false, "only expenses")
	cmd.Flags().Bool("income", false, "only income")
	cmd.Flags().Int("recent", 0, "only records from the last N days")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	recent, _ := cmd.Flags().GetInt("recent")

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
	if recent > 0 {
		records, err = svc.RecentWithinDays(records, recent)
		if err != nil {
			return err
		}
	}
	if filter.Active() {
		records = filter.Apply(records)
	}

	if len(records) == 0 {
		fmt.Println("No records.")
		return nil
	}

	fmt.Printf("%4s  %-40s  %12s  %-10s  %s\n", "ID", "TITLE", "AMOUNT", "DATE", "TYPE")
	for _, r := range records {
		kind := "income"
		sign := "+"
		if r.IsExpense {
			kind = "expense"
			sign = "-"
		}
		fmt.Printf("%4d  %-40s  %11s%s  %-10s  %s\n",
			r.ID, r.Title, r.Amount.StringFixed(2), sign,
			r.OccurredAt.Format("2006-01-02"), kind)
	}

	summary := service.Summarize(records)
	fmt.Printf("\n%d records · income %s · expenses %s · balance %s\n",
		len(records), summary.Income.StringFixed(2),
		summary.Expenses.StringFixed(2), summary.Balance.StringFixed(2))
	return nil
}

// filterFromFlags builds a RecordFilter from list flags.
func filterFromFlags(cmd *cobra.Command) (model.RecordFilter, error) {
	var filter model.RecordFilter

	filter.Query, _ = cmd.Flags().GetString("search")

	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")
	if fromArg != "" && toArg != "" {
		from, err := parseDate(fromArg)
		if err != nil {
			return filter, err
		}
		to, err := parseDate(toArg)
		if err != nil {
			return filter, err
		}
		filter.From, filter.To = &from, &to
	} else if fromArg != "" || toArg != "" {
		return filter, fmt.Errorf("date filtering needs both --from and --to")
	}

	expenses, _ := cmd.Flags().GetBool("expenses")
	income, _ := cmd.Flags().GetBool("income")
	switch {
	case expenses && income:
		return filter, fmt.Errorf("--expenses and --income are mutually exclusive")
	case expenses:
		t := true
		filter.IsExpense = &t
	case income:
		f := false
		filter.IsExpense = &f
	}

	return filter, nil
}
