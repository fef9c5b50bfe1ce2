package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// upsertSuffix последняя запись на (artist_id, date) побеждает, без слияния
const upsertSuffix = `ON CONFLICT (artist_id, date) DO UPDATE SET
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	is_available = EXCLUDED.is_available,
	updated_at = NOW()`

var windowColumns = []string{
	"id",
	"artist_id",
	"date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий окон доступности артистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или полностью заменяет окно артиста на дату
func (r *Repository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertWindows(window).
		Suffix(upsertSuffix + " RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &window.CreatedAt, &window.UpdatedAt)
	if err != nil {
		if pgerrors.Is(err, pgerrors.ForeignKeyViolation) {
			return nil, fmt.Errorf("%w: Upsert - artist id=%d", ErrArtistNotFound, window.ArtistID)
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return window, nil
}

// UpsertMany заменяет несколько окон одним запросом.
// Даты в windows не должны повторяться: PostgreSQL не обновляет одну строку дважды за запрос.
func (r *Repository) UpsertMany(ctx context.Context, windows []*domain.AvailabilityWindow) error {
	if len(windows) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertWindows(windows...).Suffix(upsertSuffix).ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.Is(err, pgerrors.ForeignKeyViolation) {
			return fmt.Errorf("%w: UpsertMany - artist id=%d", ErrArtistNotFound, windows[0].ArtistID)
		}
		return fmt.Errorf("%w: UpsertMany - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает окно артиста на конкретную дату
func (r *Repository) GetByDate(ctx context.Context, artistID int64, date time.Time) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("artist_availability").
		Where(squirrel.Eq{"artist_id": artistID, "date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan window: %w", ErrScanRow, err)
	}

	return window, nil
}

// GetByDateRange получает окна артиста в диапазоне дат (включительно), по возрастанию даты
func (r *Repository) GetByDateRange(ctx context.Context, artistID int64, from, to time.Time) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("artist_availability").
		Where(squirrel.Eq{"artist_id": artistID}).
		Where(squirrel.GtOrEq{"date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"date": domain.DateOnly(to)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDateRange - scan row: %w", ErrScanRow, err)
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateRange - rows error: %w", ErrScanRow, err)
	}

	return windows, nil
}

func insertWindows(windows ...*domain.AvailabilityWindow) squirrel.InsertBuilder {
	q := psqlbuilder.Insert("artist_availability").
		Columns("artist_id", "date", "start_time", "end_time", "is_available")
	for _, w := range windows {
		q = q.Values(w.ArtistID, domain.DateOnly(w.Date), string(w.Range.Start), string(w.Range.End), w.IsAvailable)
	}
	return q
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	err := row.Scan(
		&w.ID,
		&w.ArtistID,
		&w.Date,
		&w.Range.Start,
		&w.Range.End,
		&w.IsAvailable,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
