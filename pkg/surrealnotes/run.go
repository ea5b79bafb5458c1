package surrealnotes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
//
// # API Endpoints
//
//	GET    /api/health                      - Service and database health
//	GET    /api/notes                       - List all notes, newest first
//	POST   /api/notes                       - Create a note
//	GET    /api/notes/{id}                  - Get a note by ID
//	PUT    /api/notes/{id}                  - Partially update a note
//	DELETE /api/notes/{id}                  - Delete a note, echoing the removed snapshot
//	PATCH  /api/notes/{id}/toggle           - Flip a note's completion flag
//	GET    /api/notes/category/{category}   - Filter notes by category
//	GET    /api/notes/priority/{priority}   - Filter notes by priority
//	GET    /api/notes/search/{query}        - Case-insensitive substring search
//
// The server starts even when the store connection failed at construction:
// data endpoints answer 503 and the health endpoint reports the database as
// disconnected, which keeps the API reachable for load balancer probes while
// the database is down.
//
// On context cancellation the server drains in-flight requests for up to
// five seconds before returning.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)

	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
	}

	a.logger.Info().
		Str("addr", addr).
		Str("env", a.config.Env).
		Str("backend", a.config.StoreBackend).
		Bool("read_only", a.IsReadOnly()).
		Msg("starting surrealnotes server")

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// Handler assembles the complete HTTP handler: routes, CORS policy, and
// request logging. It is exposed so tests can drive the full stack through
// httptest without binding a port.
func (a *App) Handler() http.Handler {
	handler := a.corsHandler(a.routes())

	// hlog.NewHandler installs the logger into the request context;
	// AccessHandler reads it back to emit one structured line per request.
	logged := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(handler)
	return hlog.NewHandler(a.logger)(logged)
}

// routes builds the gorilla/mux router for the REST API.
//
// The category, priority, and search routes are registered before the {id}
// routes so their literal path segments are never captured as note IDs.
func (a *App) routes() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/notes", a.handleListNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes", a.handleCreateNote).Methods(http.MethodPost)

	api.HandleFunc("/notes/category/{category}", a.handleListNotesByCategory).Methods(http.MethodGet)
	api.HandleFunc("/notes/priority/{priority}", a.handleListNotesByPriority).Methods(http.MethodGet)
	api.HandleFunc("/notes/search/{query}", a.handleSearchNotes).Methods(http.MethodGet)

	api.HandleFunc("/notes/{id}", a.handleGetNote).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", a.handleUpdateNote).Methods(http.MethodPut)
	api.HandleFunc("/notes/{id}", a.handleDeleteNote).Methods(http.MethodDelete)
	api.HandleFunc("/notes/{id}/toggle", a.handleToggleNote).Methods(http.MethodPatch)

	return router
}

// corsHandler wraps the handler with the CORS policy for the configured
// environment. With an empty allow-list (production without
// CORS_ALLOWED_ORIGINS) the handler is returned unwrapped: no CORS headers
// are emitted and browsers keep the API same-origin.
func (a *App) corsHandler(h http.Handler) http.Handler {
	origins := a.config.CORSOrigins()
	if len(origins) == 0 {
		return h
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
}
