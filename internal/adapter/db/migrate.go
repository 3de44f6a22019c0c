package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"tasktracker/db/migrations"
)

// Migrate applies every embedded *.up.sql file in name order. The files are
// idempotent, so running it on an up-to-date schema is a no-op.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
		zap.L().Debug("migration applied", zap.String("file", file))
	}
	return nil
}
