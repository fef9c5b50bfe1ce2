package booking

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
	"github.com/m04kA/SMC-ArtistScheduling/pkg/ptr"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending.
// Доступность слота не проверяет: это делает usecase в той же транзакции,
// а уникальный индекс bookings_active_slot_uidx страхует от двойной записи.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.Status = domain.StatusPending

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"artist_id",
			"appointment_date",
			"start_time",
			"end_time",
			"status",
			"amount",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.ArtistID,
			domain.DateOnly(booking.AppointmentDate),
			booking.StartTime,
			booking.EndTime,
			string(booking.Status),
			booking.Amount,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		switch pgerrors.Code(err) {
		case pgerrors.UniqueViolation:
			return nil, fmt.Errorf("%w: Create - %s", ErrSlotTaken, pgerrors.Constraint(err))
		case pgerrors.ForeignKeyViolation:
			return nil, fmt.Errorf("%w: Create - %s", ErrReferenceNotFound, pgerrors.Constraint(err))
		case pgerrors.CheckViolation:
			return nil, fmt.Errorf("%w: Create - %s", ErrInvalidData, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := selectBookings().Where(squirrel.Eq{"b.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF b")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, новые сверху.
// Опционально фильтрует по статусу.
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	q := selectBookings().
		Where(squirrel.Eq{"b.customer_id": customerID}).
		OrderBy("b.appointment_date DESC", "b.start_time DESC")

	if status != nil {
		q = q.Where(squirrel.Eq{"b.status": string(*status)})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByArtistWithFilter получает бронирования артиста с фильтрацией и сортировкой.
//
// Примеры использования:
//
//  1. Активные бронирования на дату (для расчета слотов):
//     filter := domain.ArtistBookingsFilter{ArtistID: 5, Date: &date}
//
//  2. Ожидающие подтверждения:
//     status := domain.StatusPending
//     filter := domain.ArtistBookingsFilter{ArtistID: 5, Status: &status}
//
//  3. Все за этот месяц, по сумме:
//     filter := domain.ArtistBookingsFilter{ArtistID: 5, IncludeCancelled: true, Sort: domain.SortAmountDesc}
//     filter.ApplyPeriod(domain.PeriodThisMonth, now)
//
// Внутри транзакции выборка на одну дату блокирует найденные строки (FOR UPDATE).
func (r *Repository) GetByArtistWithFilter(ctx context.Context, filter domain.ArtistBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	lock := dbmetrics.IsInTransaction(ctx) && filter.IsSingleDate()

	query, args, err := buildArtistBookingsQuery(filter, lock).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByArtistWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByArtistWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByArtist считает бронирования артиста по фильтру (сортировка игнорируется)
func (r *Repository) CountByArtist(ctx context.Context, filter domain.ArtistBookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCountQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByArtist - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByArtist - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// GetArtistStats считает агрегаты по бронированиям артиста.
// from и to ограничивают выборку по дате приема включительно (nil - без границы).
func (r *Repository) GetArtistStats(ctx context.Context, artistID int64, from, to *time.Time) (*domain.ArtistStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildStatsQuery(artistID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetArtistStats - build query: %v", ErrBuildQuery, err)
	}

	var stats domain.ArtistStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Confirmed,
		&stats.Completed,
		&stats.Cancelled,
		&stats.CompletedRevenue,
		&stats.AverageAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetArtistStats - scan stats: %w", ErrScanRow, err)
	}

	return &stats, nil
}

// GetCustomerInsights считает постоянных клиентов, новых клиентов с даты since и самого частого клиента
func (r *Repository) GetCustomerInsights(ctx context.Context, artistID int64, since time.Time) (*domain.CustomerInsights, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	insights := &domain.CustomerInsights{}

	// Постоянные клиенты: больше одного бронирования
	repeatSub := psqlbuilder.Select("customer_id").
		From("bookings").
		Where(squirrel.Eq{"artist_id": artistID}).
		GroupBy("customer_id").
		Having("COUNT(*) > 1")

	query, args, err := psqlbuilder.Select("COUNT(*)").FromSelect(repeatSub, "repeat_customers").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerInsights - build repeat query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&insights.RepeatCustomers); err != nil {
		return nil, fmt.Errorf("%w: GetCustomerInsights - scan repeat customers: %w", ErrScanRow, err)
	}

	// Новые клиенты: первое бронирование у артиста не раньше since
	newSub := psqlbuilder.Select("customer_id").
		From("bookings").
		Where(squirrel.Eq{"artist_id": artistID}).
		GroupBy("customer_id").
		Having(squirrel.Expr("MIN(created_at) >= ?", since))

	query, args, err = psqlbuilder.Select("COUNT(*)").FromSelect(newSub, "new_customers").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerInsights - build new customers query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&insights.NewCustomers); err != nil {
		return nil, fmt.Errorf("%w: GetCustomerInsights - scan new customers: %w", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("b.customer_id", "COALESCE(u.username, '')", "COUNT(*) AS bookings_count").
		From(bookingsTable).
		Where(squirrel.Eq{"b.artist_id": artistID}).
		GroupBy("b.customer_id", "u.username").
		OrderBy("bookings_count DESC", "b.customer_id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerInsights - build top customer query: %v", ErrBuildQuery, err)
	}

	var top domain.TopCustomer
	err = executor.QueryRowContext(ctx, query, args...).Scan(&top.CustomerID, &top.Name, &top.BookingsCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// У артиста еще нет бронирований
	case err != nil:
		return nil, fmt.Errorf("%w: GetCustomerInsights - scan top customer: %w", ErrScanRow, err)
	default:
		insights.TopCustomer = &top
	}

	return insights, nil
}

// UpdateStatus меняет статус бронирования с from на to (compare-and-set) и обновляет updated_at.
// Если бронирования нет, возвращает ErrBookingNotFound; если статус уже не from - ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.Is(err, pgerrors.UniqueViolation) {
			return fmt.Errorf("%w: UpdateStatus - %s", ErrSlotTaken, pgerrors.Constraint(err))
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		status  string
		notes   sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ArtistID,
		&booking.AppointmentDate,
		&booking.StartTime,
		&booking.EndTime,
		&status,
		&booking.Amount,
		&notes,
		&booking.CustomerName,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	if notes.Valid {
		booking.Notes = ptr.Ptr(notes.String)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
