package surrealnotes

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/store"
	"github.com/surrealdb/surrealnotes/pkg/store/postgres"
	surrealdbstore "github.com/surrealdb/surrealnotes/pkg/store/surrealdb"
)

// Sync copies every note from one backend to the other and returns.
//
// The direction selects the data flow: "forward" reads from SurrealDB and
// writes to PostgreSQL, "reverse" goes the other way. Sync ignores the
// -store flag and always connects the pair from the configuration; both
// backends must be reachable or the command fails before copying anything.
//
// Records are matched by ID: missing ones are created with their original
// timestamps, existing ones are overwritten (picking up a fresh modification
// time from the target store), so rerunning a sync converges on the source
// state instead of failing on duplicates. A record that fails to copy is
// logged and skipped; sync reports the failure count at the end rather than
// aborting halfway through.
//
// Sync is meant for one-off moves between backends, not continuous
// replication. Writes arriving at the source while a sync is running are not
// picked up; run the server in read-only mode for a consistent copy.
func (a *App) Sync(ctx context.Context, cmd *SyncCommand) error {
	// Sync writes into the target backend, which read-only mode forbids.
	if a.IsReadOnly() {
		return fmt.Errorf("sync cannot run in read-only mode: it needs write access to the target store")
	}

	surreal, err := surrealdbstore.NewSurrealStore(ctx,
		a.config.SurrealDBURL,
		a.config.SurrealDBNS,
		a.config.SurrealDBDB,
		a.config.SurrealDBUser,
		a.config.SurrealDBPass,
	)
	if err != nil {
		return fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}
	defer surreal.Close()

	pg, err := postgres.NewPostgresStore(a.config.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pg.Close()

	var source, target store.Store
	var from, to string
	switch cmd.Direction {
	case "forward":
		source, target = surreal, pg
		from, to = BackendSurrealDB, BackendPostgres
	case "reverse":
		source, target = pg, surreal
		from, to = BackendPostgres, BackendSurrealDB
	default:
		return fmt.Errorf("invalid sync direction: %s (must be 'forward' or 'reverse')", cmd.Direction)
	}

	// The target schema must exist before notes are written into it.
	if err := target.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to prepare target store: %w", err)
	}

	a.logger.Info().Str("from", from).Str("to", to).Msg("starting notes sync")

	notes, err := source.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes from source: %w", err)
	}

	var failed int
	for _, note := range notes {
		if err := copyNote(ctx, target, note); err != nil {
			failed++
			a.logger.Error().Err(err).Stringer("id", note.ID).Msg("failed to copy note")
		}
	}

	a.logger.Info().
		Int("total", len(notes)).
		Int("copied", len(notes)-failed).
		Int("failed", failed).
		Msg("notes sync finished")

	if failed > 0 {
		return fmt.Errorf("sync finished with %d of %d notes failed", failed, len(notes))
	}
	return nil
}

// copyNote writes one note into the target store: create when the ID is
// absent, full overwrite when it already exists.
func copyNote(ctx context.Context, target store.Store, note *models.Note) error {
	existing, err := target.GetNote(ctx, note.ID)
	if err != nil {
		return fmt.Errorf("failed to check target for note: %w", err)
	}
	if existing == nil {
		return target.CreateNote(ctx, note)
	}
	return target.UpdateNote(ctx, note)
}
