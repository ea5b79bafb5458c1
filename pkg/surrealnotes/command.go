package surrealnotes

// Command represents a parsed subcommand with its command-specific options.
//
// Commands are produced by [Parse] and dispatched by [Main]. Shared
// configuration (database endpoints, server port) lives in [Config]; a
// Command only carries options that make no sense outside its subcommand.
type Command interface {
	// Name returns the subcommand name as typed on the command line.
	Name() string
}

// RunCommand starts the HTTP server. This is the normal operating mode.
//
// The server keeps running even when the database connection failed at
// startup: the health endpoint reports the database as disconnected and all
// data operations answer 503 until the process is restarted with a working
// database.
type RunCommand struct{}

func (c *RunCommand) Name() string { return "run" }

// MigrateCommand initializes or updates the database schema and exits.
//
// Unlike run, migrate requires a working database connection and fails hard
// without one. For SurrealDB this is a no-op because tables are created on
// first insert; for PostgreSQL it runs GORM auto-migration for the notes
// table.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

// SyncCommand copies every note from one backend to the other and exits.
//
// Direction selects the copy direction: "forward" reads from SurrealDB and
// writes to PostgreSQL, "reverse" goes the other way. Existing records with
// the same ID are overwritten, so running a sync twice is harmless. Sync is
// meant for one-off moves between backends, not continuous replication.
type SyncCommand struct {
	Direction string
}

func (c *SyncCommand) Name() string { return "sync" }
