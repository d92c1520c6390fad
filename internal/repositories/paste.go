package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/pbin/internal/models"
	"github.com/desertthunder/pbin/internal/shared"
	"github.com/mattn/go-sqlite3"
)

var _ models.Repository = (*PasteRepository)(nil)

// PasteRepository implements [models.Repository] for [models.Paste] persistence.
type PasteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPasteRepository creates a new [PasteRepository] with the given database connection
func NewPasteRepository(db *sql.DB) *PasteRepository {
	return &PasteRepository{db: db, now: time.Now}
}

// Create inserts a new paste with the next sequence number.
//
// Returns [shared.ErrDuplicateID] when a paste with the same ID already exists.
func (r *PasteRepository) Create(ctx context.Context, paste models.Paste) error {
	if paste.ID == "" {
		return fmt.Errorf("%w: empty id", shared.ErrInvalidID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(ctx, tx, "pastes")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO pastes (id, sequence, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := paste.CreatedAt.UTC()
	_, err = tx.ExecContext(ctx, query, paste.ID, sequence, paste.Title, paste.Content, createdAt, r.now().UTC())
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %s", shared.ErrDuplicateID, paste.ID)
		}
		return fmt.Errorf("failed to insert paste: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit paste: %w", err)
	}
	return nil
}

// Get retrieves a paste by ID
func (r *PasteRepository) Get(ctx context.Context, id string) (models.Paste, error) {
	query := `
		SELECT id, title, content, created_at
		FROM pastes
		WHERE id = ?
	`

	paste, err := scanPaste(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Paste{}, fmt.Errorf("%w: %s", shared.ErrPasteNotFound, id)
	}
	if err != nil {
		return models.Paste{}, fmt.Errorf("failed to query paste: %w", err)
	}
	return paste, nil
}

// Update replaces the title and content of an existing paste.
//
// The id and created_at columns are never written.
func (r *PasteRepository) Update(ctx context.Context, paste models.Paste) error {
	query := `
		UPDATE pastes
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, paste.Title, paste.Content, r.now().UTC(), paste.ID)
	if err != nil {
		return fmt.Errorf("failed to update paste: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPasteNotFound, paste.ID)
	}

	return nil
}

// Delete removes a paste by ID and reports whether a row was deleted.
func (r *PasteRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM pastes WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete paste: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// List retrieves all pastes ordered by insertion sequence
func (r *PasteRepository) List(ctx context.Context) ([]models.Paste, error) {
	query := `
		SELECT id, title, content, created_at
		FROM pastes
		ORDER BY sequence ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastes: %w", err)
	}
	defer rows.Close()

	pastes := []models.Paste{}
	for rows.Next() {
		paste, err := scanPaste(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paste: %w", err)
		}
		pastes = append(pastes, paste)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return pastes, nil
}

// Count returns the number of stored pastes.
func (r *PasteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pastes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pastes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaste(s scanner) (models.Paste, error) {
	var (
		id        string
		title     string
		content   string
		createdAt time.Time
	)

	if err := s.Scan(&id, &title, &content, &createdAt); err != nil {
		return models.Paste{}, err
	}
	return models.NewPaste(id, title, content, createdAt), nil
}

// isConstraintViolation reports whether err is a SQLite PRIMARY KEY or UNIQUE violation.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
