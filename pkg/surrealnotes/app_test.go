package surrealnotes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealdb/surrealnotes/pkg/models"
	"github.com/surrealdb/surrealnotes/pkg/notes"
)

func TestConfigValidate(t *testing.T) {
	valid := func(backend string) *Config {
		return &Config{StoreBackend: backend, ServerPort: "8080"}
	}

	for _, backend := range []string{BackendSurrealDB, BackendPostgres, BackendMemory} {
		assert.NoError(t, valid(backend).Validate(), "backend %s", backend)
	}

	err := valid("redis").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store backend")

	err = (&Config{StoreBackend: BackendMemory}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server port is required")
}

func TestConfigCORSOrigins(t *testing.T) {
	t.Run("development allows any origin", func(t *testing.T) {
		config := &Config{Env: "development"}
		assert.Equal(t, []string{"*"}, config.CORSOrigins())
	})

	t.Run("production splits and normalizes the list", func(t *testing.T) {
		config := &Config{
			Env:                "production",
			CORSAllowedOrigins: " https://app.example.com/ ,https://admin.example.com, ",
		}
		assert.Equal(t,
			[]string{"https://app.example.com", "https://admin.example.com"},
			config.CORSOrigins(),
			"entries are trimmed and trailing slashes removed")
	})

	t.Run("production with no list allows nothing", func(t *testing.T) {
		config := &Config{Env: "production"}
		assert.Empty(t, config.CORSOrigins())
	})
}

func TestNewDegradedMode(t *testing.T) {
	// An unreachable database must not prevent startup; the app comes up
	// without a store and data operations report it.
	app, err := New(context.Background(), &Config{
		StoreBackend: "bogus",
		ServerPort:   "8080",
		Env:          "development",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.Store())

	_, err = app.Service().ListNotes(context.Background())
	require.Error(t, err)
	var unavailable *notes.StoreUnavailableError
	assert.True(t, errors.As(err, &unavailable))
}

func TestAppReadOnlyToggle(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	require.False(t, app.IsReadOnly())
	created, err := app.Service().CreateNote(ctx, models.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	app.SetReadOnly(true)
	require.True(t, app.IsReadOnly())

	_, err = app.Service().CreateNote(ctx, models.CreateNoteRequest{Title: "blocked", Content: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")

	fetched, err := app.Service().GetNote(ctx, created.ID)
	require.NoError(t, err, "reads keep working in read-only mode")
	assert.Equal(t, created.ID, fetched.ID)

	app.SetReadOnly(false)
	_, err = app.Service().CreateNote(ctx, models.CreateNoteRequest{Title: "allowed", Content: "c"})
	assert.NoError(t, err)
}

func TestMigrateCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds with a connected store", func(t *testing.T) {
		app := newTestApp(t)
		assert.NoError(t, app.Migrate(ctx, &MigrateCommand{}))
	})

	t.Run("fails hard without a store", func(t *testing.T) {
		app := newDegradedApp()
		err := app.Migrate(ctx, &MigrateCommand{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot migrate without a store connection")
	})
}

func TestSyncRefusesReadOnlyMode(t *testing.T) {
	app := newTestApp(t)
	app.SetReadOnly(true)

	err := app.Sync(context.Background(), &SyncCommand{Direction: "forward"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}
