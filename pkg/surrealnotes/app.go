package surrealnotes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/surrealdb/surrealnotes/pkg/notes"
	"github.com/surrealdb/surrealnotes/pkg/store"
	"github.com/surrealdb/surrealnotes/pkg/store/memory"
	"github.com/surrealdb/surrealnotes/pkg/store/postgres"
	surrealdbstore "github.com/surrealdb/surrealnotes/pkg/store/surrealdb"
)

// Store backends selectable with the -store flag.
const (
	BackendSurrealDB = "surrealdb"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config holds application configuration.
// A production system would use structured config with validation (e.g., Viper),
// TLS settings, connection pool configs, and observability endpoints.
type Config struct {
	// Database configuration
	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string
	PostgresDSN   string

	// StoreBackend selects which implementation backs the service:
	// surrealdb (default), postgres, or memory.
	StoreBackend string

	// ReadOnly rejects all write operations when true.
	ReadOnly bool

	// Server configuration
	ServerPort string

	// Env is "development" or "production". In development the CORS policy
	// allows any origin; in production only the configured list.
	Env string

	// CORSAllowedOrigins is a comma-separated origin list used when Env is
	// "production".
	CORSAllowedOrigins string
}

// Validate checks the configuration after flags, environment variables, and
// defaults have been merged.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendSurrealDB, BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("invalid store backend: %s (must be %q, %q, or %q)",
			c.StoreBackend, BackendSurrealDB, BackendPostgres, BackendMemory)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("server port is required")
	}
	return nil
}

// CORSOrigins returns the cross-origin allow-list for the configured
// environment. Development allows any origin so a frontend served from
// another port can reach the API during local work. Production splits
// CORSAllowedOrigins on commas; entries are trimmed and trailing slashes
// removed, because an Origin header never carries a path and a configured
// "https://app.example.com/" would otherwise never match. An empty
// production list means no cross-origin access at all.
func (c *Config) CORSOrigins() []string {
	if c.Env != "production" {
		return []string{"*"}
	}
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// App holds the application state: the selected store, the note service on
// top of it, and the runtime read-only flag.
type App struct {
	store    store.Store
	storeErr error // non-nil when the store connection failed at startup
	service  *notes.Service
	config   *Config
	logger   zerolog.Logger
	readOnly bool
}

// New creates a new application instance.
//
// A failed store connection does not fail construction: the error is logged
// and remembered, and the App comes up in degraded mode with a nil store.
// The run command keeps serving in that state (health reports disconnected,
// data operations answer 503) while migrate and sync refuse to proceed.
func New(ctx context.Context, config *Config) (*App, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	app := &App{
		config:   config,
		logger:   logger,
		readOnly: config.ReadOnly,
	}

	appStore, err := newStore(ctx, config)
	if err != nil {
		app.storeErr = err
		logger.Error().Err(err).
			Str("backend", config.StoreBackend).
			Msg("store connection failed, continuing without a database")
	} else {
		logger.Info().
			Str("backend", config.StoreBackend).
			Msg("connected to store")
		// The wrapper consults IsReadOnly on every write, so read-only mode
		// can be toggled at runtime without rebuilding the store.
		app.store = store.NewReadOnlyStore(appStore, app.IsReadOnly)
	}

	app.service = notes.NewService(app.store)
	return app, nil
}

// newStore connects the backend selected by the configuration.
func newStore(ctx context.Context, config *Config) (store.Store, error) {
	switch config.StoreBackend {
	case BackendSurrealDB:
		return surrealdbstore.NewSurrealStore(ctx,
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
	case BackendPostgres:
		return postgres.NewPostgresStore(config.PostgresDSN)
	case BackendMemory:
		return memory.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", config.StoreBackend)
	}
}

// Close closes the application and its resources
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store (useful for testing)
func (a *App) Store() store.Store {
	return a.store
}

// Service returns the note service.
func (a *App) Service() *notes.Service {
	return a.service
}

// SetReadOnly toggles the application's read-only mode at runtime. When
// enabled, write operations are rejected at the store wrapper while reads
// continue to work, which keeps the data stable during maintenance or a
// sync between backends.
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly = readOnly
	a.logger.Info().Bool("read_only", readOnly).Msg("application read-only mode changed")
}

// IsReadOnly returns whether the application is currently in read-only mode.
// The ReadOnlyStore wrapper calls this on every write, so it must stay cheap.
func (a *App) IsReadOnly() bool {
	return a.readOnly
}

// getEnv retrieves an environment variable value with a fallback default.
// Empty values count as unset, which suits container environments where
// empty variables may be set accidentally.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
