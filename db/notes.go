/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

func scanNote(row pgx.Row) (*Note, error) {
	var n Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote stores a staff note. authorID may be empty.
func CreateNote(ctx context.Context, authorID, title, content string) (*Note, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNoteTitleRequired
	}

	var author *uuid.UUID
	if strings.TrimSpace(authorID) != "" {
		parsed, err := uuid.Parse(authorID)
		if err != nil {
			return nil, fmt.Errorf("invalid author ID: %w", err)
		}
		author = &parsed
	}

	note, err := scanNote(pool.QueryRow(ctx, `
		INSERT INTO notes (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING `+noteColumns,
		author, title, content,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetNote returns a note by ID.
func GetNote(ctx context.Context, id string) (*Note, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	note, err := scanNote(pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// ListNotes returns notes most recently updated first. A non-empty query
// filters by case-insensitive title or content match.
func ListNotes(ctx context.Context, query string) ([]Note, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var pattern *string
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		escaped := "%" + escapeLike(trimmed) + "%"
		pattern = &escaped
	}

	rows, err := pool.Query(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE $1::text IS NULL OR title ILIKE $1 OR content ILIKE $1
		ORDER BY updated_at DESC
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note

	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		notes = append(notes, *note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// UpdateNote replaces a note's title and content.
func UpdateNote(ctx context.Context, id, title, content string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ErrNoteTitleRequired
	}

	command, err := pool.Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, updated_at = now() WHERE id = $3`,
		title, content, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote removes a note.
func DeleteNote(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	command, err := pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if command.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
