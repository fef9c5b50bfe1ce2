package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/logger"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.committed {
		return sql.ErrTxDone
	}
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	beginErr error
	opts     []*sql.TxOptions
	txs      []*fakeTx
	commit   error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{commitErr: b.commit}
	b.opts = append(b.opts, opts)
	b.txs = append(b.txs, tx)
	return tx, nil
}

func TestDo_Commits(t *testing.T) {
	db := &fakeBeginner{}
	m := New(db, logger.Nop())

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)

	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := New(db, logger.Nop())
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := New(db, logger.Nop())

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			tx, ok := dbmetrics.TxFromContext(inner)
			require.True(t, ok)
			assert.Same(t, db.txs[0], tx)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestDo_ErrorClassification(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	db := &fakeBeginner{}
	err := New(db, logger.Nop()).Do(context.Background(), func(context.Context) error { return serialization })
	assert.ErrorIs(t, err, ErrSerialization)

	db = &fakeBeginner{commit: serialization}
	err = New(db, logger.Nop()).Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrSerialization)

	db = &fakeBeginner{commit: errors.New("connection reset")}
	err = New(db, logger.Nop()).Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)

	db = &fakeBeginner{beginErr: errors.New("too many connections")}
	err = New(db, logger.Nop()).DoReadOnly(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)
}
