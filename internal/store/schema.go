package store

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// InitSchema creates the five tables and seeds the catalogs. It runs
// once at process start and is idempotent: tables use IF NOT EXISTS and
// the seed inserts use ON CONFLICT DO NOTHING, so a restart against a
// populated database is a no-op.
func (s *DBStore) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return wrap("initializing schema", err)
	}
	s.logger.Infow("database schema initialized")
	return nil
}
