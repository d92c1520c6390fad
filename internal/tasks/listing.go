package tasks

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/pbin/internal/clipboard"
	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
)

const (
	MsgContentCopied = "Content copied to clipboard!"
	MsgContentFailed = "Failed to copy content"
	MsgShareCopied   = "Share link copied to clipboard!"
	MsgShareFailed   = "Failed to copy share link"
	MsgPasteNotFound = "Paste not found"
	MsgNoDataFound   = "No Data Found"
)

// Level classifies a [Notification].
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification is a transient, user-facing message produced by a background action.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Listing is the browse/search session over the paste collection.
type Listing struct {
	store  PasteStore
	clip   clipboard.Writer
	origin string
	logger *log.Logger

	query string
}

// ListingOption configures a [Listing].
type ListingOption func(*Listing)

// WithListingLogger sets the logger used to record clipboard failures.
func WithListingLogger(l *log.Logger) ListingOption {
	return func(ls *Listing) { ls.logger = l }
}

// NewListing creates a [Listing] over s. Share links are built against origin.
func NewListing(s PasteStore, clip clipboard.Writer, origin string, opts ...ListingOption) *Listing {
	l := &Listing{store: s, clip: clip, origin: origin, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetQuery replaces the title search term.
func (l *Listing) SetQuery(q string) { l.query = q }

// Query returns the current title search term.
func (l *Listing) Query() string { return l.query }

// Visible returns the pastes whose title matches the current query, in insertion order.
func (l *Listing) Visible() []models.Paste {
	return l.store.FilterByTitle(l.query)
}

// Delete removes the paste with the given id, reporting whether one existed.
func (l *Listing) Delete(ctx context.Context, id string) (bool, error) {
	return l.store.Remove(ctx, id)
}

// ShareLink returns the read-only view URL for id.
func (l *Listing) ShareLink(id string) string {
	return shared.ShareURL(l.origin, id)
}

// EditLink returns the editor URL that targets id.
func (l *Listing) EditLink(id string) string {
	return shared.EditURL(l.origin, id)
}

// CopyContent writes the paste's content to the clipboard in the background.
//
// The returned channel yields exactly one [Notification] and is then closed.
func (l *Listing) CopyContent(ctx context.Context, id string) <-chan Notification {
	p, ok := l.store.Get(id)
	if !ok {
		return notFound(id)
	}
	return l.copy(ctx, p.Content, MsgContentCopied, MsgContentFailed)
}

// Share writes the paste's share link to the clipboard in the background.
//
// The returned channel yields exactly one [Notification] and is then closed.
func (l *Listing) Share(ctx context.Context, id string) <-chan Notification {
	if _, ok := l.store.Get(id); !ok {
		return notFound(id)
	}
	return l.copy(ctx, l.ShareLink(id), MsgShareCopied, MsgShareFailed)
}

func (l *Listing) copy(ctx context.Context, text, success, failure string) <-chan Notification {
	out := make(chan Notification, 1)
	results := clipboard.CopyAsync(ctx, l.clip, text)

	go func() {
		defer close(out)
		r := <-results
		if r.Err != nil {
			l.logger.Warn("clipboard write failed", "writer", r.Writer, "error", r.Err)
			out <- Notification{Level: LevelError, Message: failure, Err: r.Err}
			return
		}
		l.logger.Debug("clipboard write", "writer", r.Writer)
		out <- Notification{Level: LevelSuccess, Message: success}
	}()
	return out
}

func notFound(id string) <-chan Notification {
	out := make(chan Notification, 1)
	out <- Notification{
		Level:   LevelError,
		Message: MsgPasteNotFound,
		Err:     fmt.Errorf("%w: %s", shared.ErrPasteNotFound, id),
	}
	close(out)
	return out
}
