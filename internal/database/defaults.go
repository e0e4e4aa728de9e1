package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/undoctl/internal/database/repository"
)

// DefaultNames seed the names list example.
var DefaultNames = []string{
	"Elizabeth", "James", "Jennifer", "John", "Linda",
	"Mary", "Michael", "Patricia", "Robert", "William",
}

// NameID is the stable id for a seeded name.
func NameID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("name:"+name)).String()
}

// SeedDefaults ensures the names table has rows for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewNameRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for idx, name := range DefaultNames {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO names(id, name, position) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
				NameID(name), name, idx,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
