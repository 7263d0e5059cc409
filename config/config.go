package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/nonsonwune/college_db/store"
)

// Defaults used when the environment leaves a setting empty.
const (
	DefaultDBPath    = "data/college_data.db"
	DefaultDataDir   = "data/comprehensive_data"
	DefaultChunkSize = 10000
)

// Config is the refresh configuration assembled from .env and the environment.
type Config struct {
	Driver string

	// SQLite
	DBPath string

	// PostgreSQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	DataDir     string
	ChunkSize   int
	RejectsDir  string
	SourcesFile string
}

// Load reads .env from the working directory, if there is one, and then the
// process environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone. It does not
// validate; callers apply their overrides first and then call Validate.
func FromEnv() (Config, error) {
	cfg := Config{
		Driver:      getEnv("DB_DRIVER", string(store.SQLite)),
		DBPath:      getEnv("DB_PATH", DefaultDBPath),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DataDir:     getEnv("DATA_DIR", DefaultDataDir),
		ChunkSize:   DefaultChunkSize,
		RejectsDir:  os.Getenv("REJECTS_DIR"),
		SourcesFile: os.Getenv("SOURCES_FILE"),
	}

	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CHUNK_SIZE %q: %w", v, err)
		}
		cfg.ChunkSize = n
	}
	return cfg, nil
}

// Validate checks the settings a refresh cannot run without.
func (c Config) Validate() error {
	switch store.Dialect(strings.ToLower(c.Driver)) {
	case store.SQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH must be set for the sqlite driver")
		}
	case store.Postgres:
		if c.DBName == "" {
			return errors.New("DB_NAME must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("%w: %q", store.ErrUnknownDriver, c.Driver)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.DataDir == "" {
		return errors.New("DATA_DIR must be set")
	}
	return nil
}

// StoreOptions translates the database settings for store.Open.
func (c Config) StoreOptions() store.Options {
	driver := store.Dialect(strings.ToLower(c.Driver))
	if driver == store.Postgres {
		return store.Options{Driver: driver, DSN: c.PostgresDSN()}
	}
	return store.Options{Driver: driver, Path: c.DBPath}
}

// PostgresDSN renders the connection URL for lib/pq.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSSLMode}}.Encode(),
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
