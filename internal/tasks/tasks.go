package tasks

import (
	"context"

	"github.com/desertthunder/pbin/internal/models"
)

// PasteStore is the subset of the paste store the views depend on.
// Implemented by [store.Store].
type PasteStore interface {
	Create(ctx context.Context, title, content string) (models.Paste, error)
	Restore(ctx context.Context, paste models.Paste) (models.Paste, error)
	Update(ctx context.Context, id, title, content string) (models.Paste, error)
	Remove(ctx context.Context, id string) (bool, error)
	Get(id string) (models.Paste, bool)
	List() []models.Paste
	FilterByTitle(query string) []models.Paste
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
