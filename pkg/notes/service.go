// Package notes holds the application logic for managing notes: input
// validation, default values, partial updates, and the mapping of store
// results onto the error kinds the HTTP layer translates to status codes.
//
// The service is deliberately thin. It owns the rules that are true for every
// transport (blank titles are rejected, updates refresh the modification
// time, deletes return the removed snapshot) and delegates persistence to an
// injected [store.Store]. A Service constructed with a nil store answers
// every data operation with [StoreUnavailableError], which keeps the HTTP
// layer serving while the database is down.
package notes

import (
	"context"
	"strings"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/store"
)

// Service implements the note operations on top of a store.
type Service struct {
	store store.Store
}

// NewService creates a Service backed by the given store. A nil store is
// allowed and puts the service into degraded mode: reads and writes fail
// with StoreUnavailableError until the process is restarted with a working
// database.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ensureStore returns the backing store or the degraded-mode error.
func (s *Service) ensureStore() (store.Store, error) {
	if s.store == nil {
		return nil, &StoreUnavailableError{}
	}
	return s.store, nil
}

// CreateNote validates the request, applies defaults, and persists a new note.
//
// Title and content are trimmed before the non-empty check and stored in
// trimmed form. An empty category or priority takes the default; an unknown
// value is a validation error.
func (s *Service) CreateNote(ctx context.Context, req models.CreateNoteRequest) (*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, &ValidationError{Message: "content is required"}
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	} else if !category.IsValid() {
		return nil, &ValidationError{Message: "invalid category: " + string(category)}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultPriority
	} else if !priority.IsValid() {
		return nil, &ValidationError{Message: "invalid priority: " + string(priority)}
	}

	note := &models.Note{
		Title:    title,
		Content:  content,
		Category: category,
		Priority: priority,
	}
	if err := st.CreateNote(ctx, note); err != nil {
		return nil, &StoreOperationError{Op: "create note", Err: err}
	}
	return note, nil
}

// ListNotes returns every note, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	notes, err := st.ListNotes(ctx)
	if err != nil {
		return nil, &StoreOperationError{Op: "list notes", Err: err}
	}
	return notes, nil
}

// GetNote returns the note with the given ID.
func (s *Service) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	note, err := st.GetNote(ctx, id)
	if err != nil {
		return nil, &StoreOperationError{Op: "get note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{ID: id}
	}
	return note, nil
}

// UpdateNote applies the supplied fields to an existing note. Absent fields
// keep their current values. The modification time is refreshed even when the
// request carries no fields at all.
func (s *Service) UpdateNote(ctx context.Context, id models.NoteID, req models.UpdateNoteRequest) (*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	// Validate everything before reading, so a bad payload never reports
	// not-found and a missing note never reports a field error.
	var title, content string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, &ValidationError{Message: "title cannot be empty"}
		}
	}
	if req.Content != nil {
		content = strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, &ValidationError{Message: "content cannot be empty"}
		}
	}
	if req.Category != nil && !req.Category.IsValid() {
		return nil, &ValidationError{Message: "invalid category: " + string(*req.Category)}
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		return nil, &ValidationError{Message: "invalid priority: " + string(*req.Priority)}
	}

	note, err := st.GetNote(ctx, id)
	if err != nil {
		return nil, &StoreOperationError{Op: "get note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{ID: id}
	}

	if req.Title != nil {
		note.Title = title
	}
	if req.Content != nil {
		note.Content = content
	}
	if req.Category != nil {
		note.Category = *req.Category
	}
	if req.Priority != nil {
		note.Priority = *req.Priority
	}
	if req.IsCompleted != nil {
		note.IsCompleted = *req.IsCompleted
	}

	if err := st.UpdateNote(ctx, note); err != nil {
		return nil, &StoreOperationError{Op: "update note", Err: err}
	}
	return note, nil
}

// DeleteNote removes a note and returns the deleted snapshot.
func (s *Service) DeleteNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	note, err := st.GetNote(ctx, id)
	if err != nil {
		return nil, &StoreOperationError{Op: "get note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{ID: id}
	}

	if err := st.DeleteNote(ctx, id); err != nil {
		return nil, &StoreOperationError{Op: "delete note", Err: err}
	}
	return note, nil
}

// ToggleCompletion flips the completion flag and returns the updated note.
func (s *Service) ToggleCompletion(ctx context.Context, id models.NoteID) (*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	note, err := st.GetNote(ctx, id)
	if err != nil {
		return nil, &StoreOperationError{Op: "get note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{ID: id}
	}

	note.IsCompleted = !note.IsCompleted
	if err := st.UpdateNote(ctx, note); err != nil {
		return nil, &StoreOperationError{Op: "toggle note completion", Err: err}
	}
	return note, nil
}

// ListNotesByCategory returns the notes in the given category, newest first.
func (s *Service) ListNotesByCategory(ctx context.Context, category models.Category) ([]*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	if !category.IsValid() {
		return nil, &ValidationError{Message: "invalid category: " + string(category)}
	}

	notes, err := st.ListNotesByCategory(ctx, category)
	if err != nil {
		return nil, &StoreOperationError{Op: "list notes by category", Err: err}
	}
	return notes, nil
}

// ListNotesByPriority returns the notes with the given priority, newest first.
func (s *Service) ListNotesByPriority(ctx context.Context, priority models.Priority) ([]*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	if !priority.IsValid() {
		return nil, &ValidationError{Message: "invalid priority: " + string(priority)}
	}

	notes, err := st.ListNotesByPriority(ctx, priority)
	if err != nil {
		return nil, &StoreOperationError{Op: "list notes by priority", Err: err}
	}
	return notes, nil
}

// SearchNotes returns notes whose title or content contains the query as a
// case-insensitive substring. An empty query returns every note.
func (s *Service) SearchNotes(ctx context.Context, query string) ([]*models.Note, error) {
	st, err := s.ensureStore()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return s.ListNotes(ctx)
	}

	notes, err := st.SearchNotes(ctx, query)
	if err != nil {
		return nil, &StoreOperationError{Op: "search notes", Err: err}
	}
	return notes, nil
}

// Ping reports whether the backing database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	st, err := s.ensureStore()
	if err != nil {
		return err
	}

	if err := st.Ping(ctx); err != nil {
		return &StoreUnavailableError{Err: err}
	}
	return nil
}
