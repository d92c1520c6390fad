package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/pbin/internal/formatter"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

// ImportResult summarises an [Import] run.
type ImportResult struct {
	Imported []models.Paste
	Skipped  []string // identifiers that already existed
}

// Import restores pastes into s in order, keeping their identifiers and creation times.
//
// Records without an identifier get a generated one. Records whose identifier already
// exists are skipped. Any other store error stops the import and is returned together with
// the partial result.
func Import(ctx context.Context, prog chan<- ProgressUpdate, s PasteStore, pastes []models.Paste) (*ImportResult, error) {
	result := &ImportResult{}

	for i, p := range pastes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if p.ID == "" {
			p.ID = shared.GenerateID()
		}

		restored, err := s.Restore(ctx, p)
		switch {
		case errors.Is(err, shared.ErrDuplicateID):
			result.Skipped = append(result.Skipped, p.ID)
			sendProgress(prog, importUpdate(i+1, len(pastes), formatter.DisplayTitle(p), "skipped"))
		case err != nil:
			return result, fmt.Errorf("failed to import paste %s: %w", p.ID, err)
		default:
			result.Imported = append(result.Imported, restored)
			sendProgress(prog, importUpdate(i+1, len(pastes), formatter.DisplayTitle(p), "imported"))
		}
	}
	return result, nil
}
