package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
)

var (
	// ErrBeginTx возвращается, если не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization возвращается, если PostgreSQL отклонил транзакцию из-за конфликта сериализации
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Manager выполняет функции внутри транзакции.
// Транзакция передается через контекст, репозитории получают ее через dbmetrics.GetExecutor.
type Manager struct {
	db     dbmetrics.TxBeginner
	logger Logger
}

// New создает менеджер транзакций
func New(db dbmetrics.TxBeginner, logger Logger) *Manager {
	return &Manager{db: db, logger: logger}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			m.logger.Warn("txmanager: rollback failed: %v", rbErr)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if IsSerializationFailure(err) {
			return fmt.Errorf("%w: %w", ErrSerialization, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			m.logger.Warn("txmanager: commit rejected by serialization check: %v", err)
			return fmt.Errorf("%w: %w", ErrSerialization, err)
		}
		m.logger.Error("txmanager: commit failed: %v", err)
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}
	committed = true

	return nil
}

// IsSerializationFailure сообщает, что PostgreSQL отклонил транзакцию из-за конкурентного доступа
// (SQLSTATE 40001 или 40P01)
func IsSerializationFailure(err error) bool {
	return pgerrors.IsRetryable(err)
}
