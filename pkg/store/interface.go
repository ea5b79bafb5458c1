// Package store provides the data persistence layer abstraction for the surrealnotes application.
//
// This package defines the [Store] interface which enables the application to work with
// different database backends while maintaining a unified API. The primary backend is
// SurrealDB (schema-flexible, queried with native SurrealQL); a PostgreSQL implementation
// (GORM) and an in-memory implementation (used by tests and as a fallback) satisfy the
// same contract.
//
// # Implementation Strategies
//
//   - [github.com/surrealdb/surrealnotes/pkg/store/surrealdb.SurrealStore]: Uses native
//     SurrealQL without ORM for schema-flexible operations
//   - [github.com/surrealdb/surrealnotes/pkg/store/postgres.PostgresStore]: Uses GORM for
//     traditional relational database operations with ACID transactions
//   - [github.com/surrealdb/surrealnotes/pkg/store/memory.MemoryStore]: Keeps notes in a
//     mutex-guarded map for tests and single-process deployments
//
// # Usage Patterns
//
// Store implementations are typically used through dependency injection:
//
//	store, err := surrealdb.NewSurrealStore(ctx, url, ns, db, user, pass)
//	svc := notes.NewService(store)
//
// A [ReadOnlyStore] can wrap any implementation to reject writes, for example while a
// data migration between backends is in flight.
package store

import (
	"context"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

// Store defines the persistence contract for notes.
//
// All implementations follow the same conventions:
//
// Entity Operations:
// Create methods accept entities with or without generated IDs and will auto-generate
// missing IDs and timestamps. Get methods return nil without error for missing entities.
// Update methods perform full entity replacement (not partial updates) and refresh the
// UpdatedAt timestamp. Delete methods remove records permanently. List methods return
// empty slices for no results, never nil, ordered newest first by creation time.
//
// Error Handling:
// Methods return errors for database connection failures, timeouts, and query execution
// problems. A missing record is not an error for Get; callers detect absence through the
// nil return value.
//
// Context Handling:
// All methods accept context.Context for cancellation, timeouts, and request tracing.
// Implementations should respect context deadlines and cancellation signals.
type Store interface {
	// CreateNote persists a new note to the store.
	//
	// If the ID field is zero, a new UUID is generated automatically. Zero CreatedAt
	// and UpdatedAt timestamps are stamped by the store implementation; populated
	// timestamps are preserved so data can be copied between backends verbatim.
	//
	// Field validation (non-empty title, valid category) is the caller's concern;
	// the store persists what it is given.
	CreateNote(ctx context.Context, note *models.Note) error

	// GetNote retrieves a note by its unique identifier.
	//
	// Returns nil if no note exists with the given ID. Returns an error only for
	// database connection issues or query execution problems, not for missing records.
	GetNote(ctx context.Context, id models.NoteID) (*models.Note, error)

	// UpdateNote replaces an existing note with the provided entity.
	//
	// The note must have a valid ID that matches an existing record. ID and CreatedAt
	// are immutable. The UpdatedAt timestamp is refreshed by the store implementation.
	//
	// This operation replaces the entire entity, not just changed fields. Partial
	// update semantics belong to the service layer, which reads, merges, and writes.
	UpdateNote(ctx context.Context, note *models.Note) error

	// DeleteNote removes a note permanently.
	//
	// Deleting an ID that does not exist is not an error; callers that need
	// existence guarantees check with GetNote first.
	DeleteNote(ctx context.Context, id models.NoteID) error

	// ListNotes returns all notes, newest first by creation time.
	ListNotes(ctx context.Context) ([]*models.Note, error)

	// ListNotesByCategory returns all notes in the given category, newest first.
	//
	// The category is assumed valid; boundary validation happens before the store.
	ListNotesByCategory(ctx context.Context, category models.Category) ([]*models.Note, error)

	// ListNotesByPriority returns all notes with the given priority, newest first.
	ListNotesByPriority(ctx context.Context, priority models.Priority) ([]*models.Note, error)

	// SearchNotes returns notes whose title or content contains the query as a
	// case-insensitive substring, newest first.
	//
	// An empty query matches every note. Implementations use simple substring
	// matching, not a full-text index.
	SearchNotes(ctx context.Context, query string) ([]*models.Note, error)

	// Ping verifies the backing database is reachable.
	//
	// Used by the health endpoint to report connected or disconnected status.
	Ping(ctx context.Context) error

	// Migrate initializes or updates the database schema for the note model.
	//
	// Implementation behavior by store type:
	//   - PostgreSQL: GORM auto-migration creates/updates the notes table
	//   - SurrealDB: no-op, as SurrealDB is schema-flexible
	//   - Memory: no-op
	//
	// Migrate is idempotent and safe to run multiple times without data loss.
	Migrate(ctx context.Context) error

	// Close releases database connections and cleans up resources.
	//
	// Multiple calls to Close are safe. The store is unusable afterwards.
	Close() error
}
