package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/shared"
	"github.com/desertthunder/pbin/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes every paste to a single file, or stdout when --output is "-".
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}
	pastes := s.List()

	if cmd.String("output") == "-" {
		data, err := formatter.Export(pastes, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(pastes, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("export written", "path", path, "format", format, "count", len(pastes))
	return r.writePlain("✓ Exported %d pastes to %s\n", len(pastes), path)
}

// ExportAll writes each paste to its own file using the bulk export worker pool.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	}

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ExportPastes:
				if update.Step == 0 {
					r.writePlain("📤 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.BulkExport(ctx, progressCh, s.List(), opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Format:    %s\n", result.Format)
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Manifest:  %s\n", result.ManifestPath)
	r.writePlain("Exported:  %d/%d\n", result.SuccessfulExports, result.TotalPastes)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d pastes:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  ✗ %s (%s): %s\n", res.Title, res.PasteID, res.Error)
			}
		}
	}
	return nil
}

// Import restores pastes from a JSON or YAML export, skipping identifiers that already exist.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: import file", shared.ErrMissingArgument)
	}

	var (
		format formatter.Format
		err    error
	)
	if cmd.IsSet("format") {
		format, err = formatter.ParseFormat(cmd.String("format"))
	} else {
		format, err = formatter.FormatFromPath(path)
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	pastes, err := formatter.ParseImport(data, format)
	if err != nil {
		return err
	}

	s, err := r.pasteStore(ctx)
	if err != nil {
		return err
	}

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase)
		}
	}()

	result, err := tasks.Import(ctx, progressCh, s, pastes)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.logger.Info("import finished", "path", path, "imported", len(result.Imported), "skipped", len(result.Skipped))
	r.writePlain("✓ Imported %d pastes from %s\n", len(result.Imported), path)
	if len(result.Skipped) > 0 {
		r.writePlain("  Skipped %d existing: %v\n", len(result.Skipped), result.Skipped)
	}
	return nil
}
