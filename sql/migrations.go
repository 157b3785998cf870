package sql

import (
	"cmp"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"

	sqlite "github.com/go-llsqlite/crawshaw"
	"github.com/go-llsqlite/crawshaw/sqlitex"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migration is a schema script named <version>_<description>.sql.
type migration struct {
	version int
	file    string
}

func loadMigrations() ([]migration, error) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	rst := make([]migration, 0, len(files))
	for _, file := range files {
		prefix, _, found := strings.Cut(path.Base(file), "_")
		version, err := strconv.Atoi(prefix)
		if !found || err != nil || version < 1 {
			return nil, fmt.Errorf("migration %s doesn't start with a version", file)
		}
		rst = append(rst, migration{version: version, file: file})
	}
	slices.SortFunc(rst, func(a, b migration) int {
		return cmp.Compare(a.version, b.version)
	})
	for i := 1; i < len(rst); i++ {
		if rst[i].version == rst[i-1].version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", rst[i-1].file, rst[i].file, rst[i].version)
		}
	}
	return rst, nil
}

// migrate applies the migrations newer than user_version and returns the versions
// before and after.
func (db *Database) migrate() (int, int, error) {
	conn, err := db.acquire(context.Background())
	if err != nil {
		return 0, 0, err
	}
	defer db.pool.Put(conn)

	from, err := userVersion(conn)
	if err != nil {
		return 0, 0, err
	}
	migrations, err := loadMigrations()
	if err != nil {
		return from, from, err
	}
	to := from
	for _, m := range migrations {
		if m.version <= to {
			continue
		}
		if err := applyMigration(conn, m); err != nil {
			return from, to, fmt.Errorf("migration %s: %w", m.file, err)
		}
		to = m.version
	}
	return from, to, nil
}

// applyMigration runs the script and the version bump in one savepoint.
func applyMigration(conn *sqlite.Conn, m migration) (err error) {
	defer sqlitex.Save(conn)(&err)
	if err := sqlitex.ExecuteScriptFS(conn, migrationsFS, m.file, nil); err != nil {
		return err
	}
	// pragma doesn't accept bound parameters
	return sqlitex.ExecuteTransient(conn, fmt.Sprintf("PRAGMA user_version = %d;", m.version), nil)
}

func userVersion(conn *sqlite.Conn) (int, error) {
	var version int
	err := sqlitex.ExecuteTransient(conn, "PRAGMA user_version;", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			version = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return version, nil
}
