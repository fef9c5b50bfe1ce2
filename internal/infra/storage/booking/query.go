package booking

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/psqlbuilder"
)

const bookingsTable = "bookings b LEFT JOIN users u ON u.id = b.customer_id"

// bookingColumns порядок колонок совпадает с scanBooking
var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.artist_id",
	"b.appointment_date",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.amount",
	"b.notes",
	"COALESCE(u.username, '')",
	"b.created_at",
	"b.updated_at",
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).From(bookingsTable)
}

// buildArtistBookingsQuery строит выборку бронирований артиста по фильтру.
// lock добавляет FOR UPDATE OF b: используется при создании бронирования внутри транзакции.
func buildArtistBookingsQuery(filter domain.ArtistBookingsFilter, lock bool) squirrel.SelectBuilder {
	q := applyArtistFilter(selectBookings(), filter)

	switch {
	case filter.Sort == "" && filter.IsSingleDate():
		// Для конкретной даты сортируем по времени начала
		q = q.OrderBy("b.start_time ASC")
	case filter.Sort == domain.SortDateAsc:
		q = q.OrderBy("b.appointment_date ASC", "b.start_time ASC")
	case filter.Sort == domain.SortCustomerName:
		q = q.OrderBy("u.username ASC", "b.appointment_date DESC", "b.start_time DESC")
	case filter.Sort == domain.SortAmountDesc:
		q = q.OrderBy("b.amount DESC", "b.appointment_date DESC", "b.start_time DESC")
	default:
		q = q.OrderBy("b.appointment_date DESC", "b.start_time DESC")
	}

	if lock {
		// LEFT JOIN нельзя блокировать целиком, поэтому только строки bookings
		q = q.Suffix("FOR UPDATE OF b")
	}

	return q
}

// buildCountQuery строит подсчет бронирований по тому же фильтру
func buildCountQuery(filter domain.ArtistBookingsFilter) squirrel.SelectBuilder {
	return applyArtistFilter(psqlbuilder.Select("COUNT(*)").From(bookingsTable), filter)
}

func applyArtistFilter(q squirrel.SelectBuilder, filter domain.ArtistBookingsFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"b.artist_id": filter.ArtistID})

	// Фильтрация по дате или периоду
	if filter.Date != nil {
		q = q.Where(squirrel.Eq{"b.appointment_date": domain.DateOnly(*filter.Date)})
	} else {
		if filter.From != nil {
			q = q.Where(squirrel.GtOrEq{"b.appointment_date": domain.DateOnly(*filter.From)})
		}
		if filter.To != nil {
			q = q.Where(squirrel.LtOrEq{"b.appointment_date": domain.DateOnly(*filter.To)})
		}
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"b.status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		q = q.Where(squirrel.NotEq{"b.status": string(domain.StatusCancelled)})
	}

	return q
}

func buildStatsQuery(artistID int64, from, to *time.Time) squirrel.SelectBuilder {
	q := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'pending')",
		"COUNT(*) FILTER (WHERE status = 'confirmed')",
		"COUNT(*) FILTER (WHERE status = 'completed')",
		"COUNT(*) FILTER (WHERE status = 'cancelled')",
		"COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0)",
		"COALESCE(AVG(amount) FILTER (WHERE amount > 0), 0)",
	).
		From("bookings").
		Where(squirrel.Eq{"artist_id": artistID})

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"appointment_date": domain.DateOnly(*from)})
	}
	if to != nil {
		q = q.Where(squirrel.LtOrEq{"appointment_date": domain.DateOnly(*to)})
	}
	return q
}
