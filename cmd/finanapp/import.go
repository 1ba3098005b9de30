package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/importer"
	"github.com/luke-tf/finanapp/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Import records from OFX/QFX bank statements",
		Long: `Import records from OFX or QFX statement files exported from your
bank. Outflows become expenses, inflows become income.

Examples:
  finanapp import ~/Downloads/statement.qfx
  finanapp import ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "parse and report without saving anything")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := importer.NewOFXImporter()
	var candidates []model.FinanceRecord
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}
		records, err := parser.Parse(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse statement", "file", path, "error", err)
			continue
		}
		slog.Info("Parsed statement", "file", filepath.Base(path), "records", len(records))
		candidates = append(candidates, records...)
	}

	if len(candidates) == 0 {
		fmt.Println("No records found in any file.")
		return nil
	}

	if dryRun {
		for _, r := range candidates {
			fmt.Println("  " + r.String())
		}
		fmt.Printf("Dry run: %d records parsed, nothing saved.\n", len(candidates))
		return nil
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

	bar := progressbar.Default(int64(len(candidates)), "importing")
	imported, skipped := 0, 0
	for _, rec := range candidates {
		if err := svc.AddRecord(ctx, rec); err != nil {
			slog.Warn("Skipping invalid statement record", "title", rec.Title, "error", err)
			skipped++
		} else {
			imported++
		}
		_ = bar.Add(1)
	}

	fmt.Printf("\nImported %d records (%d skipped).\n", imported, skipped)
	return nil
}
