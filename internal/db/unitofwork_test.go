package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLiteUnitOfWork {
	t.Helper()
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE scratch (id INTEGER PRIMARY KEY, note TEXT NOT NULL)`)
	require.NoError(t, err)
	return NewSQLiteUnitOfWork(database)
}

func countScratch(t *testing.T, uow *SQLiteUnitOfWork) int {
	t.Helper()
	var n int
	require.NoError(t, uow.db.QueryRow(`SELECT COUNT(*) FROM scratch`).Scan(&n))
	return n
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO scratch (note) VALUES ('kept')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countScratch(t, uow))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	uow := openTestDB(t)
	boom := errors.New("downstream failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO scratch (note) VALUES ('doomed')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, countScratch(t, uow), "failed transactions must leave no trace")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO scratch (note) VALUES ('doomed')`)
			panic("mid-transaction panic")
		})
	})
	assert.Zero(t, countScratch(t, uow))
}

func TestWithinTx_CanceledContextNeverStarts(t *testing.T) {
	uow := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
