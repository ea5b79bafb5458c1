//go:build integration

// Integration tests for the SurrealDB store. They need a running SurrealDB
// instance, for example:
//
//	surreal start --user root --pass root memory
//	go test -tags=integration ./pkg/store/surrealdb/...
//
// Connection settings come from SURREALDB_URL, SURREALDB_NS, SURREALDB_DB,
// SURREALDB_USER and SURREALDB_PASS, with the same defaults the application uses.
package surrealdb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/store"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	ctx := context.Background()
	s, err := NewSurrealStore(ctx,
		getEnvOrDefault("SURREALDB_URL", "ws://localhost:8000/rpc"),
		getEnvOrDefault("SURREALDB_NS", "surrealnotes_test"),
		// A per-run database keeps tests isolated without cleanup queries.
		getEnvOrDefault("SURREALDB_DB", fmt.Sprintf("notes_%d", time.Now().UnixNano())),
		getEnvOrDefault("SURREALDB_USER", "root"),
		getEnvOrDefault("SURREALDB_PASS", "root"),
	)
	require.NoError(t, err, "failed to connect to SurrealDB")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSurrealStore_crud_roundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	note := &models.Note{
		Title:    "integration",
		Content:  "created through the driver",
		Category: models.CategoryWork,
		Priority: models.PriorityHigh,
	}
	require.NoError(t, s.CreateNote(ctx, note))
	require.False(t, note.ID.IsZero())

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, note.Category, got.Category)
	assert.False(t, got.CreatedAt.IsZero())

	got.Title = "renamed"
	require.NoError(t, s.UpdateNote(ctx, got))

	updated, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, !updated.UpdatedAt.Before(updated.CreatedAt))

	require.NoError(t, s.DeleteNote(ctx, note.ID))
	gone, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "deleted note must read back as nil")
}

func TestSurrealStore_get_missing_returns_nil(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.GetNote(ctx, models.NewNoteID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSurrealStore_list_and_filters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seed := []*models.Note{
		{Title: "alpha", Content: "first", Category: models.CategoryWork, Priority: models.PriorityLow},
		{Title: "beta", Content: "second", Category: models.CategoryIdeas, Priority: models.PriorityHigh},
		{Title: "gamma", Content: "third", Category: models.CategoryWork, Priority: models.PriorityHigh},
	}
	for _, n := range seed {
		require.NoError(t, s.CreateNote(ctx, n))
		// Distinct creation times make the expected order unambiguous.
		time.Sleep(5 * time.Millisecond)
	}

	all, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "gamma", all[0].Title, "newest note must come first")
	assert.Equal(t, "alpha", all[2].Title)

	work, err := s.ListNotesByCategory(ctx, models.CategoryWork)
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, "gamma", work[0].Title)

	high, err := s.ListNotesByPriority(ctx, models.PriorityHigh)
	require.NoError(t, err)
	require.Len(t, high, 2)

	none, err := s.ListNotesByCategory(ctx, models.CategoryHealth)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSurrealStore_search(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateNote(ctx, &models.Note{
		Title: "Quarterly Report", Content: "draft the summary",
		Category: models.DefaultCategory, Priority: models.DefaultPriority,
	}))
	require.NoError(t, s.CreateNote(ctx, &models.Note{
		Title: "groceries", Content: "milk, REPORT binder",
		Category: models.DefaultCategory, Priority: models.DefaultPriority,
	}))

	matches, err := s.SearchNotes(ctx, "report")
	require.NoError(t, err)
	assert.Len(t, matches, 2, "search must be case-insensitive across title and content")

	matches, err = s.SearchNotes(ctx, "REPORT")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = s.SearchNotes(ctx, "nonexistent-term")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.SearchNotes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, matches, 2, "empty query matches every note")
}

func TestSurrealStore_ping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Ping(ctx))
}
