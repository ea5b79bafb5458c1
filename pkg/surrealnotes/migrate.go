package surrealnotes

import (
	"context"
	"fmt"
)

// Migrate initializes or updates the database schema for the configured
// backend and returns.
//
// For PostgreSQL this runs GORM auto-migration for the notes table; it only
// creates missing schema elements and never drops data, so it is safe to run
// repeatedly. SurrealDB creates tables implicitly on first insert and the
// memory backend has no schema, so for those backends Migrate is a no-op
// kept for symmetry.
//
// Unlike run, migrate is useless without a database, so a store connection
// that failed at startup fails the command instead of degrading.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	if a.store == nil {
		return fmt.Errorf("cannot migrate without a store connection: %w", a.storeErr)
	}

	a.logger.Info().Str("backend", a.config.StoreBackend).Msg("running database migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.logger.Info().Msg("migrations completed successfully")
	return nil
}
