// Package surrealnotes wires together the application: configuration
// parsing, store selection, the HTTP server, and the maintenance
// subcommands.
//
// [Parse] turns command line arguments and environment variables into a
// [Config] and a [Command]; [New] connects the selected store backend and
// builds the note service on top of it; [Main] dispatches to the run,
// migrate, or sync subcommand. The HTTP handlers in this package translate
// requests into calls on [github.com/surrealdb/surrealnotes/pkg/notes.Service]
// and map its error kinds to status codes; they hold no business logic of
// their own.
//
// # Getting Started
//
//	# Start SurrealDB
//	surreal start --user root --pass root
//
//	# Run the API server on :8080
//	surrealnotes run
//
//	# Or run against PostgreSQL
//	surrealnotes -store postgres migrate
//	surrealnotes -store postgres run
//
//	# Or keep everything in memory (no persistence)
//	surrealnotes -store memory run
//
// For the full HTTP surface see [App.Run]; for flags and environment
// variables see [Parse].
//
// # Degraded Mode
//
// A store connection that cannot be established at startup does not stop the
// run command: the failure is logged and the server starts anyway. The
// health endpoint reports the database as disconnected and every data
// endpoint answers 503 until the process is restarted with a working
// database. migrate and sync are useless without a database, so they fail
// hard instead.
package surrealnotes
