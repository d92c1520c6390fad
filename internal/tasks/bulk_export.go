package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

const (
	DefaultExportWorkers = 4
	MaxExportWorkers     = 10
	ManifestFilename     = "manifest.json"
)

// BulkExportOpts contains configuration for bulk paste exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: json, yaml, csv, markdown, txt
	OutputDir  string           // Base output directory (default: pastes_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 10)
}

// PasteExportResult is the outcome of exporting one paste.
type PasteExportResult struct {
	PasteID string `json:"id"`
	Title   string `json:"title"`
	File    string `json:"file,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkExportResult summarises a [BulkExport] run. Results are in collection order.
type BulkExportResult struct {
	Format            formatter.Format    `json:"format"`
	ExportedAt        time.Time           `json:"exportedAt"`
	TotalPastes       int                 `json:"totalPastes"`
	SuccessfulExports int                 `json:"successfulExports"`
	FailedExports     int                 `json:"failedExports"`
	OutputDirectory   string              `json:"outputDirectory"`
	ManifestPath      string              `json:"-"`
	Results           []PasteExportResult `json:"results"`
}

type exportJob struct {
	index int
	paste models.Paste
}

type exportOutcome struct {
	index  int
	result PasteExportResult
}

// BulkExport writes each paste to {OutputDir}/{id}.{ext} using a bounded worker pool and
// records a manifest summarising successes and failures.
//
// Individual write failures are reported in the result rather than aborting the run.
// Cancelling ctx stops dispatching new jobs and returns the context error.
func BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	pastes []models.Paste,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if _, err := formatter.ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("pastes_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = DefaultExportWorkers
	}
	if opts.NumWorkers > MaxExportWorkers {
		opts.NumWorkers = MaxExportWorkers
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Format:          opts.Format,
		ExportedAt:      time.Now().UTC(),
		TotalPastes:     len(pastes),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PasteExportResult, len(pastes)),
	}

	sendProgress(prog, exportStartedUpdate(len(pastes), opts.Format, opts.OutputDir))

	jobs := make(chan exportJob)
	outcomes := make(chan exportOutcome, len(pastes))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go exportWorker(ctx, &wg, jobs, outcomes, opts)
	}

	go func() {
		defer close(jobs)
		for i, p := range pastes {
			select {
			case <-ctx.Done():
				return
			case jobs <- exportJob{index: i, paste: p}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	completed := 0
	done := make([]bool, len(pastes))
	for out := range outcomes {
		completed++
		done[out.index] = true
		result.Results[out.index] = out.result

		if out.result.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(pastes), out.result))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(pastes), out.result))
		}
	}

	if err := ctx.Err(); err != nil {
		finished := make([]PasteExportResult, 0, completed)
		for i, r := range result.Results {
			if done[i] {
				finished = append(finished, r)
			}
		}
		result.Results = finished
		return result, fmt.Errorf("export cancelled after %d of %d pastes: %w", completed, len(pastes), err)
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestFilename)
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports pastes from the jobs channel.
func exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	outcomes chan<- exportOutcome,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcomes <- exportOutcome{index: job.index, result: exportSinglePaste(job.paste, opts)}
	}
}

// exportSinglePaste writes one paste to its own file.
func exportSinglePaste(p models.Paste, opts BulkExportOpts) PasteExportResult {
	result := PasteExportResult{PasteID: p.ID, Title: formatter.DisplayTitle(p)}

	data, err := formatter.ExportPaste(p, opts.Format)
	if err != nil {
		result.Error = fmt.Sprintf("%s encode failed: %v", opts.Format, err)
		return result
	}

	path := filepath.Join(opts.OutputDir, exportFilename(p.ID, opts.Format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		result.Error = fmt.Sprintf("%s write failed: %v", opts.Format, err)
		return result
	}

	result.File = path
	result.Success = true
	return result
}

// exportFilename maps an id to a file name that cannot escape the output directory.
func exportFilename(id string, format formatter.Format) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, id)
	if name == "" || name == "." || name == ".." {
		name = "_" + name
	}
	return name + "." + format.Extension()
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
