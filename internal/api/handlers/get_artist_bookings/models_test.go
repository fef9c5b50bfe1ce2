package get_artist_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest_IncludesCancelledByDefault(t *testing.T) {
	req, err := ToServiceRequest(4, 40, url.Values{})
	require.NoError(t, err)

	assert.Equal(t, int64(4), req.ArtistID)
	assert.Equal(t, int64(40), req.UserID)
	assert.True(t, req.IncludeCancelled)
	assert.Nil(t, req.Status)
	assert.Empty(t, req.Sort)
}

func TestToServiceRequest_Params(t *testing.T) {
	req, err := ToServiceRequest(4, 40, url.Values{
		"status":           {"confirmed"},
		"period":           {"this_week"},
		"includeCancelled": {"false"},
		"sort":             {"amount_desc"},
		"date":             {"2024-03-15"},
	})
	require.NoError(t, err)

	require.NotNil(t, req.Status)
	assert.Equal(t, "confirmed", *req.Status)
	assert.Equal(t, "this_week", req.Period)
	assert.False(t, req.IncludeCancelled)
	assert.Equal(t, "amount_desc", req.Sort)
	require.NotNil(t, req.Date)
	assert.Equal(t, "2024-03-15", req.Date.Format("2006-01-02"))
}

func TestToServiceRequest_InvalidParams(t *testing.T) {
	_, err := ToServiceRequest(4, 40, url.Values{"includeCancelled": {"sometimes"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(4, 40, url.Values{"date": {"15.03.2024"}})
	assert.Error(t, err)
}
