package store

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

var (
	// ErrNotFound is returned by [Store.Update] when the identifier is absent.
	ErrNotFound = shared.ErrPasteNotFound
	// ErrDuplicateID is returned by [Store.CreateWithID] when the identifier is taken.
	ErrDuplicateID = shared.ErrDuplicateID
	// ErrInvalidID is returned by [Store.CreateWithID] for an empty identifier.
	ErrInvalidID = shared.ErrInvalidID
)

// Store is the in-memory paste collection. The zero value is not usable; construct with [New] or [Open].
type Store struct {
	mu     sync.RWMutex
	pastes []models.Paste
	index  map[string]int

	repo   models.Repository
	now    func() time.Time // injectable for deterministic tests
	newID  func() string
	logger *log.Logger

	subsMu  sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// Option configures a [Store].
type Option func(*Store)

// WithClock sets the function used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the function used to generate identifiers for [Store.Create].
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithRepository makes the store write every mutation through repo.
// Prefer [Open], which also loads the existing collection.
func WithRepository(repo models.Repository) Option {
	return func(s *Store) { s.repo = repo }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		index:  make(map[string]int),
		now:    time.Now,
		newID:  shared.GenerateID,
		logger: log.New(io.Discard),
		subs:   make(map[int]chan Event),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store backed by repo and loads the persisted collection in insertion order.
func Open(ctx context.Context, repo models.Repository, opts ...Option) (*Store, error) {
	s := New(append(opts, WithRepository(repo))...)

	pastes, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pastes: %w", err)
	}

	for _, p := range pastes {
		if _, ok := s.index[p.ID]; ok {
			s.logger.Warn("skipping duplicate paste id while loading", "id", p.ID)
			continue
		}
		s.index[p.ID] = len(s.pastes)
		s.pastes = append(s.pastes, p)
	}

	s.logger.Debug("store opened", "count", len(s.pastes))
	return s, nil
}

// Create appends a new paste with a generated identifier and the current time as CreatedAt.
//
// Title and content are accepted as-is, including empty strings.
// An error is only possible when the backing repository write fails.
func (s *Store) Create(ctx context.Context, title, content string) (models.Paste, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if _, ok := s.index[id]; ok {
		return models.Paste{}, fmt.Errorf("%w: generated id %s collides", ErrDuplicateID, id)
	}
	return s.insert(ctx, models.NewPaste(id, title, content, s.now()))
}

// CreateWithID appends a new paste under a caller-supplied identifier.
func (s *Store) CreateWithID(ctx context.Context, id, title, content string) (models.Paste, error) {
	if strings.TrimSpace(id) == "" {
		return models.Paste{}, fmt.Errorf("%w: id must not be empty", ErrInvalidID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; ok {
		return models.Paste{}, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return s.insert(ctx, models.NewPaste(id, title, content, s.now()))
}

// Restore appends an existing record verbatim, keeping its identifier and CreatedAt.
// Used by imports; a zero CreatedAt is stamped with the current time.
func (s *Store) Restore(ctx context.Context, paste models.Paste) (models.Paste, error) {
	if strings.TrimSpace(paste.ID) == "" {
		return models.Paste{}, fmt.Errorf("%w: id must not be empty", ErrInvalidID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[paste.ID]; ok {
		return models.Paste{}, fmt.Errorf("%w: %s", ErrDuplicateID, paste.ID)
	}

	createdAt := paste.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	return s.insert(ctx, models.NewPaste(paste.ID, paste.Title, paste.Content, createdAt))
}

// insert persists and appends p. Callers hold s.mu.
func (s *Store) insert(ctx context.Context, p models.Paste) (models.Paste, error) {
	if s.repo != nil {
		if err := s.repo.Create(ctx, p); err != nil {
			return models.Paste{}, fmt.Errorf("%w: %w", shared.ErrStorage, err)
		}
	}

	s.index[p.ID] = len(s.pastes)
	s.pastes = append(s.pastes, p)

	s.logger.Debug("paste created", "id", p.ID)
	s.publish(Event{Kind: Created, Paste: p})
	return p, nil
}

// Update replaces the title and content of the paste with the given id.
//
// ID and CreatedAt are left untouched. Returns [ErrNotFound] if the id is absent.
func (s *Store) Update(ctx context.Context, id, title, content string) (models.Paste, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Paste{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := s.pastes[i]
	updated.Title = title
	updated.Content = content

	if s.repo != nil {
		if err := s.repo.Update(ctx, updated); err != nil {
			return models.Paste{}, fmt.Errorf("%w: %w", shared.ErrStorage, err)
		}
	}

	s.pastes[i] = updated

	s.logger.Debug("paste updated", "id", id)
	s.publish(Event{Kind: Updated, Paste: updated})
	return updated, nil
}

// Remove deletes the paste with the given id and reports whether a removal occurred.
//
// Removing an absent id is a no-op that returns false and a nil error.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false, nil
	}

	if s.repo != nil {
		if _, err := s.repo.Delete(ctx, id); err != nil {
			return false, fmt.Errorf("%w: %w", shared.ErrStorage, err)
		}
	}

	removed := s.pastes[i]
	s.pastes = append(s.pastes[:i], s.pastes[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.pastes); j++ {
		s.index[s.pastes[j].ID] = j
	}

	s.logger.Debug("paste removed", "id", id)
	s.publish(Event{Kind: Removed, Paste: removed})
	return true, nil
}

// Get returns the paste with the given id.
func (s *Store) Get(id string) (models.Paste, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Paste{}, false
	}
	return s.pastes[i], true
}

// List returns a snapshot of all pastes in insertion order.
func (s *Store) List() []models.Paste {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Paste, len(s.pastes))
	copy(out, s.pastes)
	return out
}

// FilterByTitle returns the pastes whose title contains query, ignoring case, in insertion order.
//
// An empty query returns the same sequence as [Store.List].
func (s *Store) FilterByTitle(query string) []models.Paste {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Paste, 0, len(s.pastes))
	for _, p := range s.pastes {
		if p.MatchesTitle(query) {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of pastes in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pastes)
}
