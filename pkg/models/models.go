package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Category classifies a note into one of a fixed set of buckets.
// Values outside the set are rejected at the boundary and never reach storage.
type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryIdeas    Category = "Ideas"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
)

// DefaultCategory is applied when a create request leaves the category empty.
const DefaultCategory = CategoryGeneral

// Categories returns every valid category value.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryWork,
		CategoryPersonal,
		CategoryIdeas,
		CategoryShopping,
		CategoryHealth,
	}
}

// ParseCategory converts an external string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", s)
	}
	return c, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryWork, CategoryPersonal,
		CategoryIdeas, CategoryShopping, CategoryHealth:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Priority ranks how urgent a note is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is applied when a create request leaves the priority empty.
const DefaultPriority = PriorityMedium

// Priorities returns every valid priority value.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts an external string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", s)
	}
	return p, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) String() string { return string(p) }

// Note is the single persisted entity: a short text note with categorization
// metadata and a completion flag.
//
// JSON keys follow the wire contract exactly (camelCase, id as a string).
// SurrealDB stores the same keys because the CBOR codec reuses the json tags;
// the SQL backend derives snake_case columns from the field names.
type Note struct {
	ID          NoteID    `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"not null" json:"content"`
	Category    Category  `gorm:"not null" json:"category"`
	Priority    Priority  `gorm:"not null" json:"priority"`
	IsCompleted bool      `gorm:"not null" json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate hook to generate ID if not set
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID.IsZero() {
		n.ID = NewNoteID()
	}
	return nil
}

// CreateNoteRequest carries the fields a client may supply when creating a
// note. Category and Priority are optional; empty values take the defaults.
type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category,omitempty"`
	Priority Priority `json:"priority,omitempty"`
}

// UpdateNoteRequest is an explicit partial update: only non-nil fields are
// applied, so a client cannot unintentionally blank a field it did not send.
type UpdateNoteRequest struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	IsCompleted *bool     `json:"isCompleted,omitempty"`
}
