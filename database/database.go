package database

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"inmohub/logging"
)

// Config holds database configuration
type Config struct {
	Path              string        `env:"DB_PATH" default:"./inmohub.db"`
	MaxOpenConns      int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns      int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime   time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime   time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"15m"`
	BusyTimeoutMs     int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableForeignKeys bool          `env:"DB_ENABLE_FOREIGN_KEYS" default:"true"`
	EnableWAL         bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// Database wraps the SQL connections and provides managed access. Reads go
// through a pool; writes are funneled through a single connection so SQLite
// write serialization happens in the driver instead of via busy retries.
type Database struct {
	readDB  *sqlx.DB
	writeDB *sqlx.DB
	config  Config
	logger  *logging.Logger
}

// New creates a new Database instance with separate read/write connections
func New(config Config, logger *logging.Logger) (*Database, error) {
	dsn := buildDSN(config)

	dbExists := checkDatabaseExists(config.Path)

	logger.Database("Opening database connections",
		"path", config.Path,
		"exists", dbExists,
		"read_max_open_conns", config.MaxOpenConns,
		"write_max_open_conns", 1)

	readDB, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open read database: %w", err)
	}

	readDB.SetMaxOpenConns(config.MaxOpenConns)
	readDB.SetMaxIdleConns(config.MaxIdleConns)
	readDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	readDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	writeDB, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		readDB.Close()
		return nil, fmt.Errorf("failed to open write database: %w", err)
	}

	// Single connection forces write serialization.
	writeDB.SetMaxOpenConns(1)
	writeDB.SetMaxIdleConns(1)
	writeDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	writeDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	database := &Database{
		readDB:  readDB,
		writeDB: writeDB,
		config:  config,
		logger:  logger,
	}

	if err := database.initialize(); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.runMigrations(); err != nil {
		readDB.Close()
		writeDB.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	logger.Database("Database initialized successfully",
		"path", config.Path,
		"existed", dbExists,
		"wal_mode", config.EnableWAL)

	return database, nil
}

// buildDSN constructs the SQLite Data Source Name with proper parameters
func buildDSN(config Config) string {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", config.Path, config.BusyTimeoutMs)
	if config.EnableWAL {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	if config.EnableForeignKeys {
		dsn += "&_pragma=foreign_keys(1)"
	}
	return dsn
}

func checkDatabaseExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (d *Database) initialize() error {
	if err := d.readDB.Ping(); err != nil {
		return fmt.Errorf("read connection ping failed: %w", err)
	}
	if err := d.writeDB.Ping(); err != nil {
		return fmt.Errorf("write connection ping failed: %w", err)
	}
	return nil
}

// Read returns the read-optimized connection pool for SELECT operations.
func (d *Database) Read() *sqlx.DB {
	return d.readDB
}

// Write returns the write-serialized connection for mutations.
func (d *Database) Write() *sqlx.DB {
	return d.writeDB
}

// WithTx executes a function within a write transaction.
func (d *Database) WithTx(fn func(*sqlx.Tx) error) error {
	tx, err := d.writeDB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Health reports connection pool statistics for the health endpoint.
func (d *Database) Health() (map[string]any, error) {
	if err := d.readDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	stats := d.readDB.Stats()
	return map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}, nil
}

// Close closes both database connections.
func (d *Database) Close() error {
	var firstErr error
	if err := d.readDB.Close(); err != nil {
		firstErr = err
	}
	if err := d.writeDB.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
