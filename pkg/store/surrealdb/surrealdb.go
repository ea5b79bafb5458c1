// Package surrealdb provides the SurrealDB implementation of the
// [github.com/surrealdb/surrealnotes/pkg/store.Store] interface using native SurrealQL.
//
// # Implementation Strategy
//
// [SurrealStore] uses SurrealDB's native capabilities:
//   - Direct SurrealQL query execution without ORM translation layers
//   - Schema-flexible document storage; the notes table is created implicitly
//     when the first record is inserted
//   - RecordID-addressed CRUD through the driver's generic Create/Select/Update/Delete
//
// # CBOR Marshaling Strategy
//
// The connection is configured with the surrealcbor codec so Go types serialize
// in the format SurrealDB expects:
//   - [github.com/surrealdb/surrealnotes/pkg/models.Note] structs marshal directly
//     to SurrealDB records using their json field tags, so the stored field names
//     match the HTTP wire format (createdAt, isCompleted, ...)
//   - [github.com/surrealdb/surrealnotes/pkg/models.NoteID] marshals to a SurrealDB
//     RecordID (CBOR tag 8), so records are addressed natively
//   - time.Time values use SurrealDB's native datetime format
//
// # Query Safety
//
// All queries with user-provided values use parameterized queries ($param syntax).
// Never build SurrealQL with fmt.Sprintf or string concatenation over user input.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/store"
)

// SurrealStore implements the Store interface backed by SurrealDB over WebSocket.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// NewSurrealStore connects to SurrealDB and selects the given namespace and database.
//
// Connection Design:
// Rather than FromEndpointURLString, the connection is configured manually so the
// surrealcbor codec handles marshaling. Without it, time.Time values serialize in
// a format SurrealDB rejects ("invalid datetime") and RecordIDs are not recognized.
func NewSurrealStore(ctx context.Context, wsURL, namespace, database, username, password string) (store.Store, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// handleNotFound maps the driver errors raised for absent records to nil, so
// callers can use the nil entity to detect non-existent records.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

func (s *SurrealStore) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID.IsZero() {
		note.ID = models.NewNoteID()
	}

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now()
	}

	// The struct marshals directly; NoteID becomes a RecordID via MarshalCBOR.
	_, err := surrealdb.Create[models.Note](ctx, s.db, models.NoteTable, note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	rid := id.RecordID()
	note, err := surrealdb.Select[models.Note](ctx, s.db, rid)
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

func (s *SurrealStore) UpdateNote(ctx context.Context, note *models.Note) error {
	rid := note.ID.RecordID()
	note.UpdatedAt = time.Now()

	_, err := surrealdb.Update[models.Note](ctx, s.db, rid, note)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteNote(ctx context.Context, id models.NoteID) error {
	rid := id.RecordID()
	_, err := surrealdb.Delete[models.Note](ctx, s.db, rid)
	return err
}

func (s *SurrealStore) ListNotes(ctx context.Context) ([]*models.Note, error) {
	return s.queryNotes(ctx, "SELECT * FROM notes ORDER BY createdAt DESC", nil)
}

func (s *SurrealStore) ListNotesByCategory(ctx context.Context, category models.Category) ([]*models.Note, error) {
	query := "SELECT * FROM notes WHERE category = $category ORDER BY createdAt DESC"
	return s.queryNotes(ctx, query, map[string]any{
		"category": string(category),
	})
}

func (s *SurrealStore) ListNotesByPriority(ctx context.Context, priority models.Priority) ([]*models.Note, error) {
	query := "SELECT * FROM notes WHERE priority = $priority ORDER BY createdAt DESC"
	return s.queryNotes(ctx, query, map[string]any{
		"priority": string(priority),
	})
}

func (s *SurrealStore) SearchNotes(ctx context.Context, query string) ([]*models.Note, error) {
	// Lowercasing both sides gives case-insensitive substring matching without
	// a full-text index. An empty needle matches every note.
	q := `SELECT * FROM notes
		WHERE string::lowercase(title) CONTAINS $query
		OR string::lowercase(content) CONTAINS $query
		ORDER BY createdAt DESC`
	return s.queryNotes(ctx, q, map[string]any{
		"query": strings.ToLower(query),
	})
}

// queryNotes runs a SELECT returning note rows and unwraps the driver's
// per-statement result envelope.
func (s *SurrealStore) queryNotes(ctx context.Context, query string, params map[string]any) ([]*models.Note, error) {
	result, err := surrealdb.Query[[]models.Note](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	notes := []*models.Note{}
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			notes = append(notes, &(*result)[0].Result[i])
		}
	}
	return notes, nil
}

// Ping runs a trivial query to verify the connection is alive.
func (s *SurrealStore) Ping(ctx context.Context) error {
	if _, err := surrealdb.Query[int](ctx, s.db, "RETURN 1", nil); err != nil {
		return fmt.Errorf("surrealdb ping failed: %w", err)
	}
	return nil
}

// Migrate is a no-op for SurrealDB. Tables are created implicitly when the
// first record is inserted, and field types are inferred from the data.
// A production deployment might define explicit schemas or indexes here.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	return nil
}

// Close closes the database connection
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}
