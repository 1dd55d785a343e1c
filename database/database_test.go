package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	migrations, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestMigrationsAreIdempotent(t *testing.T) {
	migrations, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(path, migrations)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Aynı dosyayla ikinci açılış: migration'lar tekrar koşmamalı.
	db, err = New(path, migrations)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	// Olmayan profile'a bağlı topluluk yazılamamalı.
	_, err := db.Conn.Exec(`
		INSERT INTO communities (id, owner_profile_id, name, image_url, invite_code)
		VALUES ('c1', 'no-such-profile', 'x', 'x', 'code-1')`)
	assert.Error(t, err)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, user_id, name) VALUES ('p1', 'u1', 'Aylin')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, user_id, name) VALUES ('p1', 'u1', 'Aylin')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, `
				INSERT INTO profiles (id, user_id, name) VALUES ('p1', 'u1', 'Aylin')`)
			panic("unexpected")
		})
	})

	var count int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(`
		CREATE TABLE a (x TEXT);
		INSERT INTO a VALUES ('metin; noktalı virgül içeriyor');
		INSERT INTO a VALUES ('kaçışlı '' tırnak; hâlâ string');
	`)
	assert.Len(t, stmts, 3)
}
