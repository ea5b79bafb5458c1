package notes

import (
	"fmt"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

// ValidationError reports a request the service refused before touching the
// store: a blank title or content, an unknown category or priority.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a well-formed note ID with no matching record.
type NotFoundError struct {
	ID models.NoteID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note %s not found", e.ID)
}

// StoreUnavailableError reports that the database cannot be reached, either
// because the application started without a store connection or because the
// connection went away.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store unavailable: %v", e.Err)
	}
	return "store unavailable: no database connection"
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// StoreOperationError reports a store call that failed for a reason other
// than a missing record, for example a query error or a lost connection
// mid-operation.
type StoreOperationError struct {
	Op  string
	Err error
}

func (e *StoreOperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreOperationError) Unwrap() error {
	return e.Err
}
