package models

import (
	"context"
	"strings"
	"time"
)

// Paste is a user-created titled block of text content.
//
// ID and CreatedAt are assigned once at creation and never change; Title and Content are replaced by updates.
type Paste struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// NewPaste builds a Paste stamped with createdAt normalized to UTC.
func NewPaste(id, title, content string, createdAt time.Time) Paste {
	return Paste{ID: id, Title: title, Content: content, CreatedAt: createdAt.UTC()}
}

// MatchesTitle reports whether the lower-cased title contains the lower-cased query.
//
// An empty query matches every paste.
func (p Paste) MatchesTitle(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(query))
}

// Repository defines durable storage for pastes.
// Implementations must return pastes from [Repository.List] in insertion order.
type Repository interface {
	Create(ctx context.Context, paste Paste) error       // Create inserts a new paste
	Get(ctx context.Context, id string) (Paste, error)   // Get retrieves a paste by its ID
	Update(ctx context.Context, paste Paste) error       // Update replaces title and content of an existing paste
	Delete(ctx context.Context, id string) (bool, error) // Delete removes a paste, reporting whether one existed
	List(ctx context.Context) ([]Paste, error)           // List retrieves all pastes in insertion order
}
