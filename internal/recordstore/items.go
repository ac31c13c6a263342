package recordstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/spquery/internal/listitem"
)

// typeKey is the metadata key list hosts attach to written items.
const typeKey = "odata.type"

// AddItem inserts an item and returns it with its assigned Id.
func (s *Store) AddItem(ctx context.Context, listID uuid.UUID, fields listitem.Item) (listitem.Item, error) {
	title, err := s.listTitle(ctx, s.db, listID)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	stored := withoutID(fields)
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("add item: encode fields: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO items (list_id, fields) VALUES (?, ?)`, listID.String(), string(data))
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	return written(title, id, stored), nil
}

// UpdateItem merges fields into an existing item.
func (s *Store) UpdateItem(ctx context.Context, listID uuid.UUID, id int64, fields listitem.Item) (listitem.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update item: begin: %w", err)
	}
	defer tx.Rollback()

	title, err := s.listTitle(ctx, tx, listID)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT fields FROM items WHERE id = ? AND list_id = ?`, id, listID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update item: %w: %d", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	current, err := decodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	for k, v := range withoutID(fields) {
		current[k] = v
	}

	data, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("update item: encode fields: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET fields = ? WHERE id = ?`, string(data), id); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update item: commit: %w", err)
	}

	return written(title, id, current), nil
}

// Items reads items of a list in the requested order. Ordering by a field
// other than Id compares the JSON values; ties fall back to Id.
func (s *Store) Items(ctx context.Context, listTitle string, q listitem.ItemsQuery) ([]listitem.Item, error) {
	if q.Filter != "" {
		return nil, ErrFilterUnsupported
	}

	listID, err := s.ListID(ctx, listTitle)
	if err != nil {
		return nil, err
	}

	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}
	order := "id " + dir
	var args []any
	if q.OrderBy != "" && q.OrderBy != listitem.IDField {
		order = "json_extract(fields, ?) " + dir + ", id ASC"
		args = append(args, jsonPath(q.OrderBy))
	}

	limit := -1
	if q.Top > 0 {
		limit = q.Top
	}

	query := `SELECT id, fields FROM items WHERE list_id = ? ORDER BY ` + order + ` LIMIT ?`
	args = append([]any{listID.String()}, append(args, limit)...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []listitem.Item{}
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		fields[listitem.IDField] = id
		items = append(items, project(fields, q.Select))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func decodeFields(raw string) (listitem.Item, error) {
	fields := listitem.Item{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}

func withoutID(fields listitem.Item) listitem.Item {
	out := make(listitem.Item, len(fields))
	for k, v := range fields {
		if k != listitem.IDField {
			out[k] = v
		}
	}
	return out
}

// written is the response shape of a write: stored fields, Id and type
// metadata.
func written(title string, id int64, fields listitem.Item) listitem.Item {
	out := make(listitem.Item, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out[listitem.IDField] = id
	out[typeKey] = fmt.Sprintf("SP.Data.%sListItem", title)
	return out
}

func project(fields listitem.Item, sel []string) listitem.Item {
	if len(sel) == 0 {
		return fields
	}
	out := make(listitem.Item, len(sel))
	for _, name := range sel {
		if v, ok := fields[name]; ok {
			out[name] = v
		}
	}
	return out
}

// jsonPath quotes a field name as a JSON path member.
func jsonPath(field string) string {
	quoted, _ := json.Marshal(field)
	return "$." + string(quoted)
}
