package get_artist_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-ArtistScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-ArtistScheduling/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров:
// status, period, date, includeCancelled, sort.
// Без фильтра по статусу возвращаются бронирования во всех статусах, включая отмененные.
func ToServiceRequest(artistID, userID int64, query url.Values) (*models.GetArtistBookingsRequest, error) {
	date, err := handlers.ParseOptionalDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	includeCancelled := true
	if v := query.Get("includeCancelled"); v != "" {
		if includeCancelled, err = handlers.ParseOptionalBool(v); err != nil {
			return nil, err
		}
	}

	req := &models.GetArtistBookingsRequest{
		UserID:           userID,
		ArtistID:         artistID,
		Period:           query.Get("period"),
		Date:             date,
		IncludeCancelled: includeCancelled,
		Sort:             query.Get("sort"),
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
