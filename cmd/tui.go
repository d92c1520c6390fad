package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/pbin/internal/shared"
	"github.com/desertthunder/pbin/internal/tasks"
	"github.com/desertthunder/pbin/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/pbin-tui.log"

// TUI launches the interactive editor and listing.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, s, r.listing(s), tasks.NewEditor(s), r.logger)
	return ui.Run(ctx, model)
}
