package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

// Mode reports whether an [Editor] will create or update on save.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Action returns the label of the save action for this mode.
func (m Mode) Action() string {
	if m == ModeUpdate {
		return "Update Paste"
	}
	return "Create My Paste"
}

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Editor is the create/edit session for a single paste.
//
// Target is the identifier being edited; empty means the next save creates a new paste.
// Editor is not safe for concurrent use; each view owns its own.
type Editor struct {
	store PasteStore

	Target  string
	Title   string
	Content string
}

// NewEditor creates an empty [Editor] in create mode.
func NewEditor(s PasteStore) *Editor {
	return &Editor{store: s}
}

// Mode returns [ModeUpdate] when a target is set.
func (e *Editor) Mode() Mode {
	if e.Target != "" {
		return ModeUpdate
	}
	return ModeCreate
}

// Edit targets the paste with the given id and pre-fills the inputs from it.
//
// An unknown id returns [shared.ErrPasteNotFound] and leaves the editor untouched.
func (e *Editor) Edit(id string) error {
	p, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrPasteNotFound, id)
	}

	e.Target = p.ID
	e.Title = p.Title
	e.Content = p.Content
	return nil
}

// Save creates a paste when no target is set, otherwise updates the target.
//
// The inputs and target are cleared whether or not the store call succeeds.
func (e *Editor) Save(ctx context.Context) (models.Paste, error) {
	defer e.Reset()

	if e.Target == "" {
		return e.store.Create(ctx, e.Title, e.Content)
	}
	return e.store.Update(ctx, e.Target, e.Title, e.Content)
}

// Reset clears the inputs and target without saving.
func (e *Editor) Reset() {
	e.Target = ""
	e.Title = ""
	e.Content = ""
}
