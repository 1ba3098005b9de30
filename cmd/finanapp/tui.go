package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/luke-tf/finanapp/internal/container"
	"github.com/luke-tf/finanapp/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse records interactively",
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	svc, closeStore, err := initService(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	c := container.New(svc)
	go c.Run(ctx)

	return tui.Run(ctx, c)
}
