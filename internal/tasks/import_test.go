package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/store"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2023, 11, 2, 8, 15, 30, 0, time.UTC)

	t.Run("restores ids and timestamps in order", func(t *testing.T) {
		s := store.New()
		pastes := []models.Paste{
			models.NewPaste("legacy-1", "first", "a", created),
			models.NewPaste("legacy-2", "second", "b", created.Add(time.Hour)),
		}

		result, err := Import(ctx, nil, s, pastes)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if len(result.Imported) != 2 || len(result.Skipped) != 0 {
			t.Errorf("unexpected result: %+v", result)
		}

		list := s.List()
		if len(list) != 2 || list[0] != pastes[0] || list[1] != pastes[1] {
			t.Errorf("store should hold the imported pastes verbatim: %+v", list)
		}
	})

	t.Run("skips existing ids", func(t *testing.T) {
		s := store.New()
		s.CreateWithID(ctx, "taken", "existing", "")

		result, err := Import(ctx, nil, s, []models.Paste{
			models.NewPaste("taken", "incoming", "", created),
			models.NewPaste("fresh", "new", "", created),
		})
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if len(result.Skipped) != 1 || result.Skipped[0] != "taken" {
			t.Errorf("expected taken to be skipped: %+v", result)
		}
		if got, _ := s.Get("taken"); got.Title != "existing" {
			t.Error("existing paste must not be overwritten")
		}
		if s.Len() != 2 {
			t.Errorf("expected 2 pastes, got %d", s.Len())
		}
	})

	t.Run("assigns ids and timestamps when missing", func(t *testing.T) {
		s := store.New()

		result, err := Import(ctx, nil, s, []models.Paste{{Title: "anon"}})
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		p := result.Imported[0]
		if p.ID == "" || p.CreatedAt.IsZero() {
			t.Errorf("expected generated id and timestamp: %+v", p)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		progressCh := make(chan ProgressUpdate, 10)
		if _, err := Import(ctx, progressCh, store.New(), []models.Paste{{ID: "x"}}); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		close(progressCh)

		u := <-progressCh
		if u.Phase != ImportPastes || u.Step != 1 || u.Total != 1 {
			t.Errorf("unexpected update: %+v", u)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		s := store.New()
		if _, err := Import(cctx, nil, s, []models.Paste{{ID: "x"}}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if s.Len() != 0 {
			t.Error("nothing should be imported after cancellation")
		}
	})
}
