package artist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/pgerrors"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/ptr"
)

type DBExecutor = dbmetrics.DBExecutor

var artistColumns = []string{"id", "user_id", "name", "price_range", "status", "created_at", "updated_at"}

// settingsColumns created_at и updated_at всегда последние
var settingsColumns = []string{
	"artist_id",
	"slot_granularity_minutes",
	"default_duration_minutes",
	"buffer_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"auto_accept_bookings",
	"require_deposit",
	"notify_new_bookings",
	"notify_new_messages",
	"notify_new_reviews",
	"notify_email",
	"notify_sms",
	"notify_reminders",
	"created_at",
	"updated_at",
}

const settingsUpsertSuffix = `ON CONFLICT (artist_id) DO UPDATE SET
	slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
	default_duration_minutes = EXCLUDED.default_duration_minutes,
	buffer_minutes = EXCLUDED.buffer_minutes,
	advance_booking_days = EXCLUDED.advance_booking_days,
	min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
	auto_accept_bookings = EXCLUDED.auto_accept_bookings,
	require_deposit = EXCLUDED.require_deposit,
	notify_new_bookings = EXCLUDED.notify_new_bookings,
	notify_new_messages = EXCLUDED.notify_new_messages,
	notify_new_reviews = EXCLUDED.notify_new_reviews,
	notify_email = EXCLUDED.notify_email,
	notify_sms = EXCLUDED.notify_sms,
	notify_reminders = EXCLUDED.notify_reminders,
	updated_at = NOW()
RETURNING created_at, updated_at`

// Repository репозиторий профилей артистов и их настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория артистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает артиста по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Artist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(artistColumns...).
		From("artists").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		artist     domain.Artist
		priceRange sql.NullString
		status     string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&artist.ID,
		&artist.UserID,
		&artist.Name,
		&priceRange,
		&status,
		&artist.CreatedAt,
		&artist.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan artist: %w", ErrScanRow, op, err)
	}

	artist.Status = domain.ArtistStatus(status)
	if priceRange.Valid {
		artist.PriceRange = ptr.Ptr(priceRange.String)
	}

	return &artist, nil
}

// GetSettings получает настройки артиста. Если артист их не сохранял - ErrSettingsNotFound.
func (r *Repository) GetSettings(ctx context.Context, artistID int64) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("artist_settings").
		Where(squirrel.Eq{"artist_id": artistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ArtistSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ArtistID,
		&s.SlotGranularityMinutes,
		&s.DefaultDurationMinutes,
		&s.BufferMinutes,
		&s.AdvanceBookingDays,
		&s.MinBookingNoticeMinutes,
		&s.AutoAcceptBookings,
		&s.RequireDeposit,
		&s.Notifications.NewBookings,
		&s.Notifications.NewMessages,
		&s.Notifications.NewReviews,
		&s.Notifications.Email,
		&s.Notifications.SMS,
		&s.Notifications.Reminders,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %w", ErrScanRow, err)
	}

	return &s, nil
}

// UpsertSettings сохраняет настройки артиста целиком
func (r *Repository) UpsertSettings(ctx context.Context, s *domain.ArtistSettings) (*domain.ArtistSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("artist_settings").
		Columns(settingsColumns[:len(settingsColumns)-2]...).
		Values(
			s.ArtistID,
			s.SlotGranularityMinutes,
			s.DefaultDurationMinutes,
			s.BufferMinutes,
			s.AdvanceBookingDays,
			s.MinBookingNoticeMinutes,
			s.AutoAcceptBookings,
			s.RequireDeposit,
			s.Notifications.NewBookings,
			s.Notifications.NewMessages,
			s.Notifications.NewReviews,
			s.Notifications.Email,
			s.Notifications.SMS,
			s.Notifications.Reminders,
		).
		Suffix(settingsUpsertSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if pgerrors.Is(err, pgerrors.ForeignKeyViolation) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("%w: UpsertSettings - execute insert: %w", ErrExecQuery, err)
	}

	return s, nil
}
