package export_artist_bookings

import (
	"encoding/csv"
	"io"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

// csvHeader колонки выгрузки
var csvHeader = []string{"id", "customer_name", "appointment_date", "start_time", "end_time", "status", "amount"}

// ToServiceRequest собирает запрос к сервису из query параметров.
// По умолчанию выгружаются все бронирования, включая отмененные, по возрастанию даты.
func ToServiceRequest(artistID, userID int64, query url.Values) (*models.GetArtistBookingsRequest, error) {
	date, err := handlers.ParseOptionalDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	includeCancelled := true
	if v := query.Get("includeCancelled"); v != "" {
		if includeCancelled, err = strconv.ParseBool(v); err != nil {
			return nil, err
		}
	}

	sort := query.Get("sort")
	if sort == "" {
		sort = "date_asc"
	}

	req := &models.GetArtistBookingsRequest{
		UserID:           userID,
		ArtistID:         artistID,
		Period:           query.Get("period"),
		Date:             date,
		IncludeCancelled: includeCancelled,
		Sort:             sort,
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}

// WriteCSV пишет бронирования в CSV
func WriteCSV(w io.Writer, list *models.BookingListResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, b := range list.Bookings {
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.CustomerName,
			b.AppointmentDate,
			b.StartTime,
			b.EndTime,
			b.Status,
			strconv.FormatFloat(b.Amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
