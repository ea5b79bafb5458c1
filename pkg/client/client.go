// Package client provides a Go HTTP client for programmatic access to the
// surrealnotes REST API.
//
// [Client] mirrors the server's endpoints with strongly-typed methods using
// the same [github.com/surrealdb/surrealnotes/pkg/models] entities as the
// server, so integrations and tests share one set of types across the API
// boundary. Request and response bodies are marshaled automatically; any
// response with a status of 400 or above is returned as an error carrying
// the status code and body.
//
// Basic usage:
//
//	c := client.NewClient("http://localhost:8080")
//	note, err := c.CreateNote(ctx, models.CreateNoteRequest{
//		Title:   "Buy milk",
//		Content: "Two liters",
//	})
//	if err != nil {
//		return err
//	}
//	notes, err := c.SearchNotes(ctx, "milk")
//
// Client instances are safe for concurrent use by multiple goroutines.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/surrealdb/surrealnotes/pkg/models"
)

// Client provides strongly-typed access to the surrealnotes REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// HealthStatus is the health endpoint's payload. Database is "connected" or
// "disconnected"; Status mirrors it as "ok" or "degraded".
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// deleteNoteResponse matches the delete endpoint's envelope.
type deleteNoteResponse struct {
	Message     string       `json:"message"`
	DeletedNote *models.Note `json:"deletedNote"`
}

// NewClient creates a new surrealnotes API client.
//
// The baseURL should include the protocol and host (e.g.,
// "http://localhost:8080") without a trailing slash or API path prefix. The
// client uses a 30-second request timeout and is ready for immediate use.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with the JSON-encoded body and headers.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into the target struct. Responses
// with status 400 and above become errors carrying the status and body.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health reports the service and database status.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	var result HealthStatus
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// CreateNote creates a new note and returns it with its assigned ID and
// timestamps.
func (c *Client) CreateNote(ctx context.Context, req models.CreateNoteRequest) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/notes", req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetNote retrieves a note by ID.
func (c *Client) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListNotes retrieves all notes, newest first.
func (c *Client) ListNotes(ctx context.Context) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateNote applies a partial update to a note. Only the non-nil fields of
// the request are changed; everything else keeps its current value.
func (c *Client) UpdateNote(ctx context.Context, id models.NoteID, req models.UpdateNoteRequest) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%s", id), req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteNote removes a note and returns the deleted snapshot.
func (c *Client) DeleteNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result deleteNoteResponse
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result.DeletedNote, nil
}

// ToggleNote flips a note's completion flag and returns the updated note.
func (c *Client) ToggleNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/notes/%s/toggle", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListNotesByCategory retrieves the notes in the given category, newest first.
func (c *Client) ListNotesByCategory(ctx context.Context, category models.Category) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/notes/category/%s", url.PathEscape(category.String())), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// ListNotesByPriority retrieves the notes with the given priority, newest first.
func (c *Client) ListNotesByPriority(ctx context.Context, priority models.Priority) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/notes/priority/%s", url.PathEscape(priority.String())), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// SearchNotes retrieves the notes whose title or content contains the query
// as a case-insensitive substring, newest first. An empty query matches
// every note, so it is served by the list endpoint: the search route needs a
// non-empty path segment.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]*models.Note, error) {
	if query == "" {
		return c.ListNotes(ctx)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/notes/search/%s", url.PathEscape(query)), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}
