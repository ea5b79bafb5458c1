package surrealnotes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/notes"
)

// handleCreateNote creates a new note from a JSON payload.
//
// HTTP Method: POST
// Endpoint: /api/notes
//
// The request body carries title and content (both required) and optional
// category and priority values; missing ones take the defaults. The created
// note is returned with its assigned ID and timestamps.
//
// Response:
//   - 201 Created: note successfully created
//   - 400 Bad Request: malformed JSON, blank title/content, unknown enum value
//   - 503 Service Unavailable: no database connection
//   - 500 Internal Server Error: store operation failed
func (a *App) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := a.service.CreateNote(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

func (a *App) handleListNotes(w http.ResponseWriter, r *http.Request) {
	result, err := a.service.ListNotes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (a *App) handleGetNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseNoteID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	note, err := a.service.GetNote(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (a *App) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseNoteID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	var req models.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := a.service.UpdateNote(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// handleDeleteNote removes a note and echoes the deleted snapshot, so a
// client can offer undo without a prior read.
func (a *App) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseNoteID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	note, err := a.service.DeleteNote(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Note deleted successfully",
		"deletedNote": note,
	})
}

func (a *App) handleToggleNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseNoteID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	note, err := a.service.ToggleCompletion(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (a *App) handleListNotesByCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// The service validates the value; an unknown category comes back as a
	// validation error and maps to 400.
	result, err := a.service.ListNotesByCategory(r.Context(), models.Category(vars["category"]))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (a *App) handleListNotesByPriority(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := a.service.ListNotesByPriority(r.Context(), models.Priority(vars["priority"]))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (a *App) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := a.service.SearchNotes(r.Context(), vars["query"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleHealth reports service health for load balancers and monitoring.
//
// The endpoint always answers 200 so the process itself counts as alive;
// the database field tells the caller whether data operations will work:
//
//	{"status": "ok", "database": "connected", "timestamp": "..."}
//	{"status": "degraded", "database": "disconnected", "timestamp": "..."}
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	database := "connected"
	if err := a.service.Ping(r.Context()); err != nil {
		status = "degraded"
		database = "disconnected"
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// respondServiceError translates the service error kinds into HTTP statuses:
// validation 400, not found 404, store unavailable 503, anything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		validation  *notes.ValidationError
		notFound    *notes.NotFoundError
		unavailable *notes.StoreUnavailableError
	)
	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, "Note not found")
	case errors.As(err, &unavailable):
		respondError(w, http.StatusServiceUnavailable, "Database not connected")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondJSON writes the payload as JSON with the given status. A nil
// payload writes only the status line and headers.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends a standardized JSON error response:
//
//	{"error": "error message here"}
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
