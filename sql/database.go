// Package sql is the sqlite storage behind the deployment journal.
package sql

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sqlite "github.com/go-llsqlite/crawshaw"
	"github.com/go-llsqlite/crawshaw/sqlitex"
	"go.uber.org/zap"
)

var (
	// ErrNoConnection is returned if the pool is closed.
	ErrNoConnection = errors.New("database: no free connection")
	// ErrNotFound is returned if requested record is not found.
	ErrNotFound = errors.New("database: not found")
	// ErrObjectExists is returned if database constraints didn't allow to insert an object.
	ErrObjectExists = errors.New("database: object exists")
)

const memoryURI = "file::memory:?mode=memory"

// Executor runs a single statement and returns the number of visited rows.
type Executor interface {
	Exec(query string, enc Encoder, dec Decoder) (int, error)
}

// Statement is an sqlite statement.
type Statement = sqlite.Stmt

// Encoder binds query parameters, positional (?1) or named (@account).
type Encoder func(*Statement)

// Decoder reads one row. Returning false stops the iteration.
type Decoder func(*Statement) bool

// Config of the journal database.
type Config struct {
	// Connections is the size of the connection pool.
	Connections int `mapstructure:"connections"`
	// LatencyMetering observes duration of every query in the query_duration histogram.
	LatencyMetering bool `mapstructure:"latency-metering"`
}

// DefaultConfig returns the default database config.
func DefaultConfig() Config {
	return Config{Connections: 4}
}

type options struct {
	cfg    Config
	logger *zap.Logger
	memory bool
}

// Opt modifies Open.
type Opt func(*options)

// WithConfig overwrites the default config.
func WithConfig(cfg Config) Opt {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithLogger sets logger for the database.
func WithLogger(logger *zap.Logger) Opt {
	return func(o *options) {
		o.logger = logger
	}
}

// InMemory opens a private in-memory database and panics on failure.
func InMemory(opts ...Opt) *Database {
	opts = append(opts, func(o *options) { o.memory = true })
	db, err := Open(memoryURI, opts...)
	if err != nil {
		panic(err)
	}
	return db
}

// Open opens the journal at uri, creating it if needed, and migrates the schema
// to the latest embedded version.
func Open(uri string, opts ...Opt) (*Database, error) {
	o := options{cfg: DefaultConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	size := o.cfg.Connections
	if o.memory {
		// every connection to the memory uri sees its own database
		size = 1
	}
	if size < 1 {
		return nil, fmt.Errorf("open db %s: pool size must be positive, got %d", uri, size)
	}
	pool, err := sqlitex.Open(uri, 0, size)
	if err != nil {
		return nil, fmt.Errorf("open db %s: %w", uri, err)
	}
	db := &Database{pool: pool, latency: o.cfg.LatencyMetering}
	from, to, err := db.migrate()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("migrate db %s: %w", uri, err), db.Close())
	}
	if from != to {
		o.logger.Info("journal schema migrated",
			zap.String("uri", uri),
			zap.Int("from", from),
			zap.Int("to", to),
		)
	}
	return db, nil
}

// Database is a pool of sqlite connections.
type Database struct {
	pool    *sqlitex.Pool
	latency bool

	closeOnce sync.Once
	closeErr  error
}

func (db *Database) acquire(ctx context.Context) (*sqlite.Conn, error) {
	start := time.Now()
	conn := db.pool.Get(ctx)
	if conn == nil {
		return nil, ErrNoConnection
	}
	connWaitLatency.Observe(time.Since(start).Seconds())
	return conn, nil
}

// Exec runs the query on one of the pooled connections.
func (db *Database) Exec(query string, enc Encoder, dec Decoder) (int, error) {
	conn, err := db.acquire(context.Background())
	if err != nil {
		return 0, err
	}
	defer db.pool.Put(conn)
	if db.latency {
		defer observeQuery(query, time.Now())
	}
	return step(conn, query, enc, dec)
}

// Close closes the pool. Subsequent calls return the result of the first one.
func (db *Database) Close() error {
	db.closeOnce.Do(func() {
		if err := db.pool.Close(); err != nil {
			db.closeErr = fmt.Errorf("close pool: %w", err)
		}
	})
	return db.closeErr
}

func observeQuery(query string, start time.Time) {
	queryDuration.WithLabelValues(query).Observe(float64(time.Since(start)))
}

func step(conn *sqlite.Conn, query string, enc Encoder, dec Decoder) (int, error) {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("prepare %s: %w", query, err)
	}
	if enc != nil {
		enc(stmt)
	}
	defer stmt.ClearBindings()

	var rows int
	for {
		row, err := stmt.Step()
		if err != nil {
			stmt.Reset()
			return 0, translate(err)
		}
		if !row {
			return rows, nil
		}
		rows++
		if dec != nil && !dec(stmt) {
			if err := stmt.Reset(); err != nil {
				return rows, fmt.Errorf("reset %s: %w", query, err)
			}
			return rows, nil
		}
	}
}

func translate(err error) error {
	switch sqlite.ErrCode(err) {
	case sqlite.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %w", ErrObjectExists, err)
	}
	return fmt.Errorf("step: %w", err)
}

// IsNull returns true if the specified result column is null.
func IsNull(stmt *Statement, col int) bool {
	return stmt.ColumnType(col) == sqlite.SQLITE_NULL
}
