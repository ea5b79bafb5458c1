package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

func newNote(title, content string) *models.Note {
	return &models.Note{
		Title:    title,
		Content:  content,
		Category: models.DefaultCategory,
		Priority: models.DefaultPriority,
	}
}

func TestMemoryStore_create_assigns_id_and_timestamps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	note := newNote("first", "body")
	require.NoError(t, s.CreateNote(ctx, note))

	assert.False(t, note.ID.IsZero())
	assert.False(t, note.CreatedAt.IsZero())
	assert.False(t, note.UpdatedAt.IsZero())

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, note.Title, got.Title)
}

func TestMemoryStore_create_preserves_existing_fields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	id := models.NewNoteID()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	note := &models.Note{
		ID:        id,
		Title:     "copied",
		Content:   "from another backend",
		Category:  models.CategoryWork,
		Priority:  models.PriorityHigh,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, s.CreateNote(ctx, note))

	got, err := s.GetNote(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestMemoryStore_get_missing_returns_nil(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.GetNote(ctx, models.NewNoteID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_returned_note_is_a_copy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	note := newNote("original", "body")
	require.NoError(t, s.CreateNote(ctx, note))

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestMemoryStore_update_refreshes_updated_at(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	note := newNote("n", "c")
	require.NoError(t, s.CreateNote(ctx, note))
	before := note.UpdatedAt

	time.Sleep(time.Millisecond)
	note.Title = "renamed"
	require.NoError(t, s.UpdateNote(ctx, note))

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.UpdatedAt.After(before), "UpdatedAt must move forward on update")
	assert.True(t, got.CreatedAt.Equal(note.CreatedAt), "CreatedAt must not change on update")
}

func TestMemoryStore_delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	note := newNote("n", "c")
	require.NoError(t, s.CreateNote(ctx, note))
	require.NoError(t, s.DeleteNote(ctx, note.ID))

	got, err := s.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent ID is not an error.
	require.NoError(t, s.DeleteNote(ctx, models.NewNoteID()))
}

func TestMemoryStore_list_orders_newest_first(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		note := newNote(title, "c")
		note.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		note.UpdatedAt = note.CreatedAt
		require.NoError(t, s.CreateNote(ctx, note))
	}

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)
}

func TestMemoryStore_list_empty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, notes, "list must return an empty slice, not nil")
	assert.Empty(t, notes)
}

func TestMemoryStore_filters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	work := newNote("standup notes", "prepare updates")
	work.Category = models.CategoryWork
	work.Priority = models.PriorityHigh
	require.NoError(t, s.CreateNote(ctx, work))

	shopping := newNote("groceries", "milk and eggs")
	shopping.Category = models.CategoryShopping
	shopping.Priority = models.PriorityLow
	require.NoError(t, s.CreateNote(ctx, shopping))

	byCategory, err := s.ListNotesByCategory(ctx, models.CategoryWork)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "standup notes", byCategory[0].Title)

	byPriority, err := s.ListNotesByPriority(ctx, models.PriorityLow)
	require.NoError(t, err)
	require.Len(t, byPriority, 1)
	assert.Equal(t, "groceries", byPriority[0].Title)

	none, err := s.ListNotesByCategory(ctx, models.CategoryHealth)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_search(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := newNote("Meeting Agenda", "discuss roadmap")
	require.NoError(t, s.CreateNote(ctx, a))
	b := newNote("groceries", "Milk and AGENDA items")
	require.NoError(t, s.CreateNote(ctx, b))
	c := newNote("unrelated", "nothing here")
	require.NoError(t, s.CreateNote(ctx, c))

	t.Run("case-insensitive match across title and content", func(t *testing.T) {
		notes, err := s.SearchNotes(ctx, "agenda")
		require.NoError(t, err)
		require.Len(t, notes, 2)
	})

	t.Run("no match", func(t *testing.T) {
		notes, err := s.SearchNotes(ctx, "zebra")
		require.NoError(t, err)
		assert.Empty(t, notes)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		notes, err := s.SearchNotes(ctx, "")
		require.NoError(t, err)
		assert.Len(t, notes, 3)
	})
}

func TestMemoryStore_close(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "closing twice must be safe")

	assert.Error(t, s.Ping(ctx))
	assert.Error(t, s.CreateNote(ctx, newNote("n", "c")))
	_, err := s.ListNotes(ctx)
	assert.Error(t, err)
}

func TestMemoryStore_respects_context_cancellation(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.CreateNote(ctx, newNote("n", "c")))
	_, err := s.ListNotes(ctx)
	assert.Error(t, err)
}
