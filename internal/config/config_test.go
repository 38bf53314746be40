package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Calendar.DoubleClickWindow)
	assert.Equal(t, "catBookings", cfg.Local.Key)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_TOMLThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[server]
port = "9000"
shutdown_timeout = "3s"

[store]
backend = "local"

[calendar]
double_click_window = "400ms"

[log]
level = "debug"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CALENDAR_DOUBLE_CLICK_WINDOW", "300ms")

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, BackendLocal, cfg.Store.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 300*time.Millisecond, cfg.Calendar.DoubleClickWindow)
	// lo que no está en el archivo ni en env queda en default
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "test.env", "STORE_BACKEND=rest\nREST_BASE_URL=http://example.test\n")
	t.Setenv("CONFIG_FILE", "")
	// godotenv.Load no pisa variables ya definidas; t.Setenv las restaura al terminar
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("REST_BASE_URL", "")
	require.NoError(t, os.Unsetenv("STORE_BACKEND"))
	require.NoError(t, os.Unsetenv("REST_BASE_URL"))

	cfg, err := Load(envPath)
	require.NoError(t, err)
	assert.Equal(t, BackendREST, cfg.Store.Backend)
	assert.Equal(t, "http://example.test", cfg.REST.BaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = BackendPostgres
	assert.ErrorContains(t, cfg.Validate(), "DB_DSN")

	cfg = Default()
	cfg.Store.Backend = "redis"
	assert.ErrorContains(t, cfg.Validate(), "unknown STORE_BACKEND")

	cfg = Default()
	cfg.Auth.Password = "meow"
	assert.ErrorContains(t, cfg.Validate(), "AUTH_SECRET")
	cfg.Auth.Secret = "s"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Calendar.DoubleClickWindow = 0
	assert.Error(t, cfg.Validate())
}
