package store

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

// ReadOnlyStore wraps a Store and prevents write operations when in read-only mode.
//
// This wrapper is primarily used while a data synchronization between backends is
// in flight, where the application needs to temporarily block writes to ensure
// both stores end up with the same records.
//
// The read-only state is determined dynamically by the isReadOnly function,
// allowing the application to toggle between read-write and read-only modes
// without recreating the store instance.
//
// All write operations (Create, Update, Delete, Migrate) return an error when in
// read-only mode, while read operations continue to work normally.
type ReadOnlyStore struct {
	Store
	isReadOnly func() bool
}

// NewReadOnlyStore creates a new read-only wrapper for a store
func NewReadOnlyStore(store Store, isReadOnly func() bool) Store {
	return &ReadOnlyStore{
		Store:      store,
		isReadOnly: isReadOnly,
	}
}

// Unwrap returns the underlying store
func (r *ReadOnlyStore) Unwrap() Store {
	return r.Store
}

// checkReadOnly returns an error if the store is in read-only mode
func (r *ReadOnlyStore) checkReadOnly() error {
	if r.isReadOnly() {
		return fmt.Errorf("operation denied: application is in read-only mode for data consistency")
	}
	return nil
}

// Write operations - check read-only mode first

func (r *ReadOnlyStore) CreateNote(ctx context.Context, note *models.Note) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.CreateNote(ctx, note)
}

func (r *ReadOnlyStore) UpdateNote(ctx context.Context, note *models.Note) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.UpdateNote(ctx, note)
}

func (r *ReadOnlyStore) DeleteNote(ctx context.Context, id models.NoteID) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.DeleteNote(ctx, id)
}

func (r *ReadOnlyStore) Migrate(ctx context.Context) error {
	if err := r.checkReadOnly(); err != nil {
		return err
	}
	return r.Store.Migrate(ctx)
}

// Read operations pass through without checks via the embedded Store interface
