package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/repositories"
	"github.com/desertthunder/pbin/internal/shared"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// failingRepo fails every write while recording nothing.
type failingRepo struct {
	err error
}

func (f *failingRepo) Create(context.Context, models.Paste) error        { return f.err }
func (f *failingRepo) Get(context.Context, string) (models.Paste, error) { return models.Paste{}, f.err }
func (f *failingRepo) Update(context.Context, models.Paste) error        { return f.err }
func (f *failingRepo) Delete(context.Context, string) (bool, error)      { return false, f.err }
func (f *failingRepo) List(context.Context) ([]models.Paste, error)      { return nil, f.err }

func ids(pastes []models.Paste) []string {
	out := make([]string, len(pastes))
	for i, p := range pastes {
		out[i] = p.ID
	}
	return out
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		s := New(WithClock(func() time.Time { return fixedNow }))

		p, err := s.Create(ctx, "Notes", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if p.ID == "" {
			t.Error("expected non-empty id")
		}
		if !p.CreatedAt.Equal(fixedNow) {
			t.Errorf("expected createdAt %v, got %v", fixedNow, p.CreatedAt)
		}
		if p.Title != "Notes" || p.Content != "hello" {
			t.Errorf("unexpected fields: %+v", p)
		}
		if s.Len() != 1 {
			t.Errorf("expected 1 paste, got %d", s.Len())
		}
	})

	t.Run("Create accepts empty strings", func(t *testing.T) {
		s := New()
		p, err := s.Create(ctx, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := s.Get(p.ID); !ok {
			t.Error("empty paste should be stored")
		}
	})

	t.Run("Create ids are pairwise distinct", func(t *testing.T) {
		s := New()
		seen := map[string]bool{}
		for range 500 {
			p, err := s.Create(ctx, "t", "c")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[p.ID] {
				t.Fatalf("duplicate id %s", p.ID)
			}
			seen[p.ID] = true
		}
	})

	t.Run("Create reports generator collisions", func(t *testing.T) {
		s := New(WithIDGenerator(func() string { return "same" }))
		if _, err := s.Create(ctx, "a", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Create(ctx, "b", ""); !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("collision must not append, got %d pastes", s.Len())
		}
	})

	t.Run("CreateWithID", func(t *testing.T) {
		s := New()

		p, err := s.CreateWithID(ctx, "custom", "Title", "Body")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "custom" {
			t.Errorf("expected id custom, got %s", p.ID)
		}

		if _, err := s.CreateWithID(ctx, "custom", "x", "y"); !errors.Is(err, ErrDuplicateID) {
			t.Errorf("expected ErrDuplicateID, got %v", err)
		}

		if _, err := s.CreateWithID(ctx, "  ", "x", "y"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("Update keeps id and createdAt", func(t *testing.T) {
		now := fixedNow
		s := New(WithClock(func() time.Time { return now }))

		p, _ := s.Create(ctx, "Notes", "hello")
		now = now.Add(time.Hour)

		updated, err := s.Update(ctx, p.ID, "Notes v2", "hello world")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, ok := s.Get(p.ID)
		if !ok {
			t.Fatal("paste should still exist")
		}
		if got != updated {
			t.Errorf("Get() = %+v, Update() returned %+v", got, updated)
		}
		if got.Title != "Notes v2" || got.Content != "hello world" {
			t.Errorf("update not applied: %+v", got)
		}
		if got.ID != p.ID || !got.CreatedAt.Equal(p.CreatedAt) {
			t.Errorf("id/createdAt changed: before %+v after %+v", p, got)
		}
	})

	t.Run("Update on missing id is strict", func(t *testing.T) {
		s := New()
		if _, err := s.Update(ctx, "nope", "t", "c"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if !errors.Is(ErrNotFound, shared.ErrPasteNotFound) {
			t.Error("ErrNotFound should match shared.ErrPasteNotFound")
		}
		if s.Len() != 0 {
			t.Errorf("failed update must not create a paste, got %d", s.Len())
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s := New(WithIDGenerator(sequentialIDs()))
		a, _ := s.Create(ctx, "a", "")
		b, _ := s.Create(ctx, "b", "")
		c, _ := s.Create(ctx, "c", "")

		removed, err := s.Remove(ctx, b.ID)
		if err != nil || !removed {
			t.Fatalf("expected removal, got %v %v", removed, err)
		}

		if got := ids(s.List()); !reflect.DeepEqual(got, []string{a.ID, c.ID}) {
			t.Errorf("unexpected order after remove: %v", got)
		}

		removed, err = s.Remove(ctx, b.ID)
		if err != nil || removed {
			t.Errorf("second remove should be a no-op, got %v %v", removed, err)
		}

		if _, ok := s.Get(c.ID); !ok {
			t.Error("index should still resolve pastes after the removed one")
		}
		if _, err := s.Update(ctx, c.ID, "c2", ""); err != nil {
			t.Errorf("update after remove should find shifted paste: %v", err)
		}
	})

	t.Run("Remove nonexistent on empty store", func(t *testing.T) {
		s := New()
		removed, err := s.Remove(ctx, "nonexistent-id")
		if err != nil || removed {
			t.Errorf("expected false/nil, got %v/%v", removed, err)
		}
		if len(s.List()) != 0 {
			t.Error("list should stay empty")
		}
	})

	t.Run("List preserves insertion order and does not alias", func(t *testing.T) {
		s := New(WithIDGenerator(sequentialIDs()))
		for _, title := range []string{"zeta", "alpha", "mid"} {
			s.Create(ctx, title, "")
		}

		list := s.List()
		if got := ids(list); !reflect.DeepEqual(got, []string{"id-1", "id-2", "id-3"}) {
			t.Errorf("unexpected order: %v", got)
		}

		list[0].Title = "mutated"

		again := s.List()
		if again[0].Title != "zeta" || len(again) != 3 {
			t.Errorf("store was mutated through List snapshot: %+v", again)
		}
	})

	t.Run("FilterByTitle", func(t *testing.T) {
		s := New(WithIDGenerator(sequentialIDs()))
		for _, title := range []string{"Shopping List", "work notes", "NOTES archive", "misc"} {
			s.Create(ctx, title, "")
		}

		if got, want := s.FilterByTitle(""), s.List(); !reflect.DeepEqual(got, want) {
			t.Errorf("empty query should equal List(): %v vs %v", ids(got), ids(want))
		}

		upper := s.FilterByTitle("NOTES")
		lower := s.FilterByTitle("notes")
		if !reflect.DeepEqual(upper, lower) {
			t.Errorf("filter should be case-insensitive: %v vs %v", ids(upper), ids(lower))
		}
		if got := ids(lower); !reflect.DeepEqual(got, []string{"id-2", "id-3"}) {
			t.Errorf("unexpected matches: %v", got)
		}

		if got := s.FilterByTitle("nothing"); len(got) != 0 {
			t.Errorf("expected no matches, got %v", ids(got))
		}
	})

	t.Run("Scenario", func(t *testing.T) {
		s := New()

		p, err := s.Create(ctx, "Notes", "hello")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if p.ID == "" || p.CreatedAt.IsZero() {
			t.Fatalf("expected id and createdAt, got %+v", p)
		}

		u, err := s.Update(ctx, p.ID, "Notes v2", "hello world")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if u.ID != p.ID || !u.CreatedAt.Equal(p.CreatedAt) {
			t.Errorf("update changed identity: %+v", u)
		}

		matches := s.FilterByTitle("notes")
		if len(matches) != 1 || matches[0].ID != p.ID {
			t.Errorf("expected exactly the one paste, got %v", ids(matches))
		}

		if removed, _ := s.Remove(ctx, p.ID); !removed {
			t.Error("expected removal")
		}
		if len(s.List()) != 0 {
			t.Error("list should be empty")
		}
	})

	t.Run("Concurrent access", func(t *testing.T) {
		s := New()
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 50 {
					p, err := s.Create(ctx, "t", "c")
					if err != nil {
						t.Errorf("create: %v", err)
						return
					}
					s.FilterByTitle("T")
					s.Update(ctx, p.ID, "u", "c")
					s.List()
				}
			}()
		}
		wg.Wait()

		if s.Len() != 400 {
			t.Errorf("expected 400 pastes, got %d", s.Len())
		}
	})
}

func TestStorePersistence(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *repositories.PasteRepository {
		t.Helper()
		db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		return repositories.NewPasteRepository(db)
	}

	t.Run("writes through and reloads in order", func(t *testing.T) {
		repo := setup(t)

		s, err := Open(ctx, repo, WithIDGenerator(sequentialIDs()))
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		a, _ := s.Create(ctx, "first", "1")
		b, _ := s.Create(ctx, "second", "2")
		c, _ := s.Create(ctx, "third", "3")
		if _, err := s.Update(ctx, b.ID, "second v2", "22"); err != nil {
			t.Fatalf("update: %v", err)
		}
		if _, err := s.Remove(ctx, a.ID); err != nil {
			t.Fatalf("remove: %v", err)
		}

		reopened, err := Open(ctx, repo)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}

		got := reopened.List()
		if !reflect.DeepEqual(ids(got), []string{b.ID, c.ID}) {
			t.Fatalf("unexpected reloaded ids: %v", ids(got))
		}
		if got[0].Title != "second v2" || got[0].Content != "22" {
			t.Errorf("update not persisted: %+v", got[0])
		}
		if !got[0].CreatedAt.Equal(b.CreatedAt) {
			t.Errorf("createdAt not persisted: %v vs %v", got[0].CreatedAt, b.CreatedAt)
		}
	})

	t.Run("failed writes leave memory unchanged", func(t *testing.T) {
		boom := errors.New("disk full")
		s := New(WithRepository(&failingRepo{err: boom}))

		if _, err := s.Create(ctx, "t", "c"); !errors.Is(err, boom) || !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected wrapped storage error, got %v", err)
		}
		if s.Len() != 0 {
			t.Errorf("failed create must not append, got %d", s.Len())
		}
	})

	t.Run("failed update and remove leave memory unchanged", func(t *testing.T) {
		repo := &failingRepo{}
		s := New(WithRepository(repo))
		p, err := s.Create(ctx, "t", "c")
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		repo.err = errors.New("locked")
		if _, err := s.Update(ctx, p.ID, "x", "y"); err == nil {
			t.Error("expected update error")
		}
		if got, _ := s.Get(p.ID); got.Title != "t" {
			t.Errorf("failed update leaked: %+v", got)
		}

		if removed, err := s.Remove(ctx, p.ID); err == nil || removed {
			t.Errorf("expected remove failure, got %v %v", removed, err)
		}
		if s.Len() != 1 {
			t.Error("failed remove must keep the paste")
		}
	})

	t.Run("Open propagates load errors", func(t *testing.T) {
		if _, err := Open(ctx, &failingRepo{err: errors.New("corrupt")}); err == nil {
			t.Error("expected load error")
		}
	})
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events in mutation order", func(t *testing.T) {
		s := New()
		events, cancel := s.Subscribe()
		defer cancel()

		p, _ := s.Create(ctx, "a", "")
		s.Update(ctx, p.ID, "b", "")
		s.Remove(ctx, p.ID)
		s.Remove(ctx, p.ID)

		want := []EventKind{Created, Updated, Removed}
		for _, kind := range want {
			select {
			case e := <-events:
				if e.Kind != kind || e.Paste.ID != p.ID {
					t.Errorf("expected %s for %s, got %s for %s", kind, p.ID, e.Kind, e.Paste.ID)
				}
			case <-time.After(time.Second):
				t.Fatalf("timed out waiting for %s", kind)
			}
		}

		select {
		case e := <-events:
			t.Errorf("no-op remove should not publish, got %v", e)
		default:
		}
	})

	t.Run("slow subscribers never block writers", func(t *testing.T) {
		s := New()
		_, cancel := s.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			for range subscriberBuffer * 4 {
				s.Create(ctx, "t", "")
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("writers blocked on a full subscriber")
		}
	})

	t.Run("cancel closes channel and is idempotent", func(t *testing.T) {
		s := New()
		events, cancel := s.Subscribe()
		cancel()
		cancel()

		if _, ok := <-events; ok {
			t.Error("expected closed channel")
		}
		if _, err := s.Create(ctx, "t", ""); err != nil {
			t.Errorf("create after unsubscribe: %v", err)
		}
	})
}
