package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authentity "github.com/Dalfonso062004/gestion-productos/internal/feature/auth/domain/entity"
	productentity "github.com/Dalfonso062004/gestion-productos/internal/feature/products/domain/entity"
)

const (
	defaultURL            = "gestion-productos.db"
	defaultConnectTimeout = 60 * time.Second
	slowQueryThreshold    = 200 * time.Millisecond
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config holds the store connection settings.
type Config struct {
	URL            string        // postgres:// URL or key=value DSN, otherwise a SQLite path
	ConnectTimeout time.Duration // how long OpenDB keeps retrying
	RunMigrations  bool
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads DATABASE_URL, DB_CONNECT_TIMEOUT and RUN_MIGRATIONS.
func LoadConfigFromEnv() Config {
	cfg := Config{
		URL:            os.Getenv("DATABASE_URL"),
		ConnectTimeout: defaultConnectTimeout,
		RunMigrations:  os.Getenv("RUN_MIGRATIONS") != "false",
	}
	if cfg.URL == "" {
		cfg.URL = defaultURL
	}
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		} else {
			slog.Warn("invalid DB_CONNECT_TIMEOUT, using default", "value", v, "default", defaultConnectTimeout)
		}
	}
	return cfg
}

// IsPostgres reports whether the URL points at a Postgres server.
func IsPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://") ||
		strings.Contains(url, "host=")
}

// Dialector selects the gorm dialector for the URL.
func Dialector(url string) gorm.Dialector {
	if IsPostgres(url) {
		return postgres.Open(url)
	}
	return sqlite.Open(url)
}

// GormConfig returns the gorm settings shared by every connection.
// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn)),
	}
}

// NewGormLogger writes slow queries and real errors to w. Lookups that find
// nothing are an expected outcome (e.g. the duplicate-email check) and are not logged.
func NewGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// defaultOpener opens a connection with the dialector matching the DSN.
func defaultOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(Dialector(dsn), GormConfig())
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Migrate creates or updates the users and products tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&authentity.User{}, &productentity.Product{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB connects to the store described by cfg and runs migrations when enabled.
func OpenDB(cfg Config) (*gorm.DB, error) {
	db, err := ConnectWithRetry(cfg.URL, cfg.ConnectTimeout, defaultOpener)
	if err != nil {
		return nil, err
	}

	driver := "sqlite"
	if IsPostgres(cfg.URL) {
		driver = "postgres"
	}
	slog.Info("DB connection established", "driver", driver)

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}
