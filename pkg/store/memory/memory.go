// Package memory provides an in-memory implementation of the store interface.
//
// MemoryStore keeps all notes in a mutex-guarded map. It is used by unit tests
// as a fast, dependency-free backend and works for single-process deployments
// where persistence across restarts is not needed.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

// MemoryStore implements store.Store backed by a map.
//
// All methods are safe for concurrent use. Notes are copied on the way in and
// out, so callers can never mutate the store's internal state through a
// returned pointer.
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[models.NoteID]models.Note
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: make(map[models.NoteID]models.Note),
	}
}

func (s *MemoryStore) CreateNote(ctx context.Context, note *models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if note.ID.IsZero() {
		note.ID = models.NewNoteID()
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = now
	}

	s.notes[note.ID] = *note
	return nil
}

func (s *MemoryStore) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	note, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, note *models.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	note.UpdatedAt = time.Now()
	s.notes[note.ID] = *note
	return nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, id models.NoteID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) ListNotes(ctx context.Context) ([]*models.Note, error) {
	return s.list(ctx, func(models.Note) bool { return true })
}

func (s *MemoryStore) ListNotesByCategory(ctx context.Context, category models.Category) ([]*models.Note, error) {
	return s.list(ctx, func(n models.Note) bool { return n.Category == category })
}

func (s *MemoryStore) ListNotesByPriority(ctx context.Context, priority models.Priority) ([]*models.Note, error) {
	return s.list(ctx, func(n models.Note) bool { return n.Priority == priority })
}

func (s *MemoryStore) SearchNotes(ctx context.Context, query string) ([]*models.Note, error) {
	q := strings.ToLower(query)
	return s.list(ctx, func(n models.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q)
	})
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkOpen()
}

// Migrate is a no-op; there is no schema to prepare.
func (s *MemoryStore) Migrate(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// list collects notes matching the predicate, newest first by creation time.
// Ties fall back to ID ordering so results are deterministic.
func (s *MemoryStore) list(ctx context.Context, match func(models.Note) bool) ([]*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	result := make([]*models.Note, 0, len(s.notes))
	for _, note := range s.notes {
		if match(note) {
			n := note
			result = append(result, &n)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) checkOpen() error {
	if s.closed {
		return fmt.Errorf("memory store is closed")
	}
	return nil
}
