package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Orden de carga:
// 1) Default() con los valores comunes a todos los entornos
// 2) .env (si existe) exporta variables al proceso, sin pisar las ya definidas
// 3) CONFIG_FILE (TOML, opcional) sobreescribe los defaults
// 4) variables de entorno: siempre ganan
// -----------------------------------------------------------------------------

const (
	BackendMemory   = "memory"
	BackendLocal    = "local"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Postgres PostgresConfig `toml:"postgres"`
	REST     RESTConfig     `toml:"rest"`
	Local    LocalConfig    `toml:"local"`
	Auth     AuthConfig     `toml:"auth"`
	Calendar CalendarConfig `toml:"calendar"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

type ServerConfig struct {
	Port            string        `toml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `toml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `toml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" envconfig:"SERVER_SHUTDOWN_TIMEOUT"`
	Swagger         bool          `toml:"swagger" envconfig:"SERVER_SWAGGER"`
}

// StoreConfig elige el backend. Fallback solo aplica a postgres y rest:
// envuelve el remoto con la copia local.
type StoreConfig struct {
	Backend  string `toml:"backend" envconfig:"STORE_BACKEND"`
	Fallback bool   `toml:"fallback" envconfig:"STORE_FALLBACK"`
}

type PostgresConfig struct {
	DSN             string        `toml:"dsn" envconfig:"DB_DSN"`
	MaxOpenConns    int           `toml:"max_open_conns" envconfig:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `toml:"max_idle_conns" envconfig:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
	EnsureSchema    bool          `toml:"ensure_schema" envconfig:"DB_ENSURE_SCHEMA"`
}

type RESTConfig struct {
	BaseURL string        `toml:"base_url" envconfig:"REST_BASE_URL"`
	APIKey  string        `toml:"api_key" envconfig:"REST_API_KEY"`
	Table   string        `toml:"table" envconfig:"REST_TABLE"`
	Timeout time.Duration `toml:"timeout" envconfig:"REST_TIMEOUT"`
}

// LocalConfig: si SQLiteDSN viene, el blob vive en SQLite; si no, en un archivo dentro de Dir.
type LocalConfig struct {
	Dir       string `toml:"dir" envconfig:"LOCAL_DIR"`
	SQLiteDSN string `toml:"sqlite_dsn" envconfig:"LOCAL_SQLITE_DSN"`
	Key       string `toml:"key" envconfig:"LOCAL_KEY"`
}

type AuthConfig struct {
	PasswordHash string        `toml:"password_hash" envconfig:"AUTH_PASSWORD_HASH"`
	Password     string        `toml:"password" envconfig:"AUTH_PASSWORD"`
	Secret       string        `toml:"secret" envconfig:"AUTH_SECRET"`
	TokenTTL     time.Duration `toml:"token_ttl" envconfig:"AUTH_TOKEN_TTL"`
}

// Enabled: sin contraseña configurada el router queda en modo dev (X-Debug-User-ID).
func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.PasswordHash) != "" || a.Password != ""
}

type CalendarConfig struct {
	DoubleClickWindow time.Duration `toml:"double_click_window" envconfig:"CALENDAR_DOUBLE_CLICK_WINDOW"`
}

type LogConfig struct {
	Level  string `toml:"level" envconfig:"LOG_LEVEL"`
	Format string `toml:"format" envconfig:"LOG_FORMAT"`
	App    string `toml:"app" envconfig:"APP_NAME"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled" envconfig:"METRICS_ENABLED"`
	Path    string `toml:"path" envconfig:"METRICS_PATH"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Swagger:         true,
		},
		Store: StoreConfig{Backend: BackendMemory},
		Postgres: PostgresConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			EnsureSchema:    true,
		},
		REST:     RESTConfig{Table: "bookings", Timeout: 10 * time.Second},
		Local:    LocalConfig{Dir: "data", Key: "catBookings"},
		Auth:     AuthConfig{TokenTTL: 12 * time.Hour},
		Calendar: CalendarConfig{DoubleClickWindow: 250 * time.Millisecond},
		Log:      LogConfig{Level: "info", Format: "text", App: "tucing-suites-calendar"},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Load aplica el orden de carga completo. envFile vacío => ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	// Sin tags default: envconfig solo toca lo que está definido en el entorno.
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string

	switch c.Store.Backend {
	case BackendMemory, BackendLocal:
	case BackendPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			problems = append(problems, "DB_DSN is required for the postgres backend")
		}
	case BackendREST:
		if strings.TrimSpace(c.REST.BaseURL) == "" {
			problems = append(problems, "REST_BASE_URL is required for the rest backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	if c.Auth.Enabled() && c.Auth.Secret == "" {
		problems = append(problems, "AUTH_SECRET is required when a password is configured")
	}
	if c.Calendar.DoubleClickWindow <= 0 {
		problems = append(problems, "CALENDAR_DOUBLE_CLICK_WINDOW must be positive")
	}
	if c.Local.Key == "" {
		problems = append(problems, "LOCAL_KEY must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// NewTestConfig: memoria, sin auth, sin métricas.
func NewTestConfig() Config {
	cfg := Default()
	cfg.Server.Swagger = false
	cfg.Metrics.Enabled = false
	cfg.Log.Level = "error"
	return cfg
}
