package sql

import (
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/aamultisig/go-aamultisig/log/logtest"
)

func testURI(tb testing.TB) string {
	tb.Helper()
	return "file:" + filepath.Join(tb.TempDir(), "journal.sql")
}

func insertTx(db Executor, id string, nonce int64) error {
	_, err := db.Exec(`insert into account_txs (id, account, nonce, status, created)
		values (?1, ?2, ?3, 0, 0);`, func(stmt *Statement) {
		stmt.BindText(1, id)
		stmt.BindBytes(2, []byte{1})
		stmt.BindInt64(3, nonce)
	}, nil)
	return err
}

func currentVersion(tb testing.TB, db Executor) int {
	tb.Helper()
	var version int
	_, err := db.Exec("PRAGMA user_version;", nil, func(stmt *Statement) bool {
		version = stmt.ColumnInt(0)
		return true
	})
	require.NoError(tb, err)
	return version
}

func TestMigrationsApplied(t *testing.T) {
	db := InMemory(WithLogger(logtest.New(t)))
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	for i := 1; i < len(migrations); i++ {
		require.Less(t, migrations[i-1].version, migrations[i].version)
	}
	require.Equal(t, migrations[len(migrations)-1].version, currentVersion(t, db))

	var tables []string
	_, err = db.Exec("select name from sqlite_master where type = 'table' order by name;", nil,
		func(stmt *Statement) bool {
			tables = append(tables, stmt.ColumnText(0))
			return true
		})
	require.NoError(t, err)
	require.Equal(t, []string{"account_txs", "accounts"}, tables)
}

func TestReopen(t *testing.T) {
	uri := testURI(t)
	db, err := Open(uri, WithLogger(logtest.New(t)))
	require.NoError(t, err)
	require.NoError(t, insertTx(db, "a", 1))
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	_, err = db.Exec("select 1;", nil, nil)
	require.ErrorIs(t, err, ErrNoConnection)

	db, err = Open(uri, WithConfig(Config{Connections: 2}))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	rows, err := db.Exec("select 1 from account_txs where id = ?1;", func(stmt *Statement) {
		stmt.BindText(1, "a")
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, rows)
	require.Equal(t, 1, currentVersion(t, db))
}

func TestOpenInvalidPoolSize(t *testing.T) {
	_, err := Open(testURI(t), WithConfig(Config{}))
	require.Error(t, err)
}

func TestLatencyMetering(t *testing.T) {
	const query = "select count(*) from accounts;"
	for _, enabled := range []bool{false, true} {
		db, err := Open(testURI(t), WithConfig(Config{Connections: 1, LatencyMetering: enabled}))
		require.NoError(t, err)

		before := testutil.CollectAndCount(queryDuration)
		_, err = db.Exec(query, nil, nil)
		require.NoError(t, err)
		after := testutil.CollectAndCount(queryDuration)
		if enabled {
			require.Equal(t, 1, after-before)
		} else {
			require.Equal(t, before, after)
		}
		require.NoError(t, db.Close())
	}
}

func TestObjectExists(t *testing.T) {
	db := InMemory()
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	require.NoError(t, insertTx(db, "a", 1))
	require.ErrorIs(t, insertTx(db, "a", 2), ErrObjectExists)
	// the statement is reusable after a constraint failure
	require.NoError(t, insertTx(db, "b", 2))
}

func TestDecoderStops(t *testing.T) {
	db := InMemory()
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, insertTx(db, id, int64(i)))
	}
	calls := 0
	rows, err := db.Exec("select id, block from account_txs order by nonce;", nil, func(stmt *Statement) bool {
		calls++
		require.True(t, IsNull(stmt, 1))
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, rows)
	require.Equal(t, 1, calls)

	rows, err = db.Exec("select id from account_txs;", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 3, rows)
}

func TestInvalidQuery(t *testing.T) {
	db := InMemory()
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	_, err := db.Exec("select * from missing;", nil, nil)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrObjectExists)
}
