package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTestingAppliesMigrations(t *testing.T) {
	d, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	for _, table := range []string{
		"parent_groups", "companies", "departments", "inspectors", "auth_users",
		"customers", "reports", "checklists", "findings", "images",
	} {
		var name string
		err := d.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestOpenForTestingIsolatesDatabases(t *testing.T) {
	d1, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d1.Close() })

	d2, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d2.Close() })

	_, err = d1.Exec(`INSERT INTO parent_groups (id, name, code) VALUES ('pg1', 'Alpha Group', 'ALP')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, d2.QueryRow(`SELECT COUNT(*) FROM parent_groups`).Scan(&count))
	assert.Zero(t, count)
}

func TestForeignKeysEnforcedOnEveryConnection(t *testing.T) {
	d, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()

	// Pin one connection so the second Conn call is forced onto a fresh
	// pooled connection; the pragma must hold there too, not just on the
	// connection that ran the migrations.
	conn1, err := d.Conn(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn1.Close() })

	conn2, err := d.Conn(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn2.Close() })

	var fk int
	require.NoError(t, conn2.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err = conn2.ExecContext(ctx,
		`INSERT INTO departments (id, name, code, company_id) VALUES ('d1', 'Residential', 'RES', 'no-such-company')`)
	assert.Error(t, err, "orphan insert must violate the foreign key")
}

func TestWithTxCommits(t *testing.T) {
	d, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	err = WithTx(ctx, d, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO parent_groups (id, name, code) VALUES ('pg1', 'Alpha Group', 'ALP')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM parent_groups`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	d, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	boom := errors.New("boom")
	err = WithTx(ctx, d, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO parent_groups (id, name, code) VALUES ('pg1', 'Alpha Group', 'ALP')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM parent_groups`).Scan(&count))
	assert.Zero(t, count)
}
