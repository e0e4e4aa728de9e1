package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Name represents a row of the example names list. A row with DeletedAt set
// is waiting for its undo banner to expire.
type Name struct {
	ID        string
	Name      string
	Position  int
	DeletedAt *time.Time
}

// NameRepo handles names.
type NameRepo struct {
	db *sql.DB
}

func NewNameRepo(db *sql.DB) *NameRepo { return &NameRepo{db: db} }

func (r *NameRepo) Upsert(ctx context.Context, n Name) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO names(id, name, position, deleted_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 position=excluded.position,
	 deleted_at=excluded.deleted_at;
	`, n.ID, n.Name, n.Position, n.DeletedAt)
	return err
}

// List returns live names in display order.
func (r *NameRepo) List(ctx context.Context) ([]Name, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, position, deleted_at FROM names WHERE deleted_at IS NULL ORDER BY position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Name
	for rows.Next() {
		var n Name
		if err := rows.Scan(&n.ID, &n.Name, &n.Position, &n.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Count returns the number of rows, live or pending deletion.
func (r *NameRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM names`).Scan(&n)
	return n, err
}

// SoftDelete hides rows from List until they are restored or purged.
func (r *NameRepo) SoftDelete(ctx context.Context, at time.Time, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := append([]interface{}{at}, idArgs(ids)...)
	_, err := r.db.ExecContext(ctx, `UPDATE names SET deleted_at = ? WHERE deleted_at IS NULL AND id IN (`+placeholders(len(ids))+`)`, args...)
	return err
}

// Restore undoes SoftDelete. Rows keep their position, so they come back
// where they were.
func (r *NameRepo) Restore(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `UPDATE names SET deleted_at = NULL WHERE id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	return err
}

// Purge permanently removes soft-deleted rows among ids.
func (r *NameRepo) Purge(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM names WHERE deleted_at IS NOT NULL AND id IN (`+placeholders(len(ids))+`)`, idArgs(ids)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PurgeDeleted removes every soft-deleted row, e.g. ones left behind by a
// session that ended before its undo banner expired.
func (r *NameRepo) PurgeDeleted(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM names WHERE deleted_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
