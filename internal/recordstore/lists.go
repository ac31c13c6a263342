package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// CreateList adds an empty list and returns its id. Titles are unique.
func (s *Store) CreateList(ctx context.Context, title string) (uuid.UUID, error) {
	if title == "" {
		return uuid.Nil, fmt.Errorf("create list: title is required")
	}

	id := s.guids.NewGUID()
	_, err := s.db.ExecContext(ctx, `INSERT INTO lists (id, title) VALUES (?, ?)`, id.String(), title)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return uuid.Nil, fmt.Errorf("create list: title %q already exists", title)
		}
		return uuid.Nil, fmt.Errorf("create list: %w", err)
	}
	return id, nil
}

// ListID resolves a list title.
func (s *Store) ListID(ctx context.Context, title string) (uuid.UUID, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM lists WHERE title = ?`, title).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrListNotFound, title)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("query list: %w", err)
	}
	return uuid.Parse(raw)
}

// listTitle resolves a list id.
func (s *Store) listTitle(ctx context.Context, q querier, id uuid.UUID) (string, error) {
	var title string
	err := q.QueryRowContext(ctx, `SELECT title FROM lists WHERE id = ?`, id.String()).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrListNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("query list: %w", err)
	}
	return title, nil
}

// SetChoices declares or replaces the choices of a choice field.
func (s *Store) SetChoices(ctx context.Context, listID uuid.UUID, field string, choices []string) error {
	if _, err := s.listTitle(ctx, s.db, listID); err != nil {
		return err
	}
	if choices == nil {
		choices = []string{}
	}
	data, err := json.Marshal(choices)
	if err != nil {
		return fmt.Errorf("encode choices: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO choice_fields (list_id, name, choices)
		VALUES (?, ?, ?)
		ON CONFLICT(list_id, name) DO UPDATE SET choices = excluded.choices
	`, listID.String(), field, string(data))
	if err != nil {
		return fmt.Errorf("set choices: %w", err)
	}
	return nil
}

// FieldChoices returns the choices of field in declaration order.
func (s *Store) FieldChoices(ctx context.Context, listTitle, field string) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT c.choices
		FROM choice_fields c
		JOIN lists l ON l.id = c.list_id
		WHERE l.title = ? AND c.name = ?
	`, listTitle, field).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		if _, lerr := s.ListID(ctx, listTitle); lerr != nil {
			return nil, lerr
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotFound, listTitle, field)
	}
	if err != nil {
		return nil, fmt.Errorf("query choices: %w", err)
	}

	var choices []string
	if err := json.Unmarshal([]byte(raw), &choices); err != nil {
		return nil, fmt.Errorf("decode choices: %w", err)
	}
	return choices, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
