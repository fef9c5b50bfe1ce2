package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"window"}`))
	require.NoError(t, DecodeJSON(req, &p))
	assert.Equal(t, "window", p.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":true}`))
	assert.Error(t, DecodeJSON(req, &p))
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"artistId": "12"})
	id, err := PathID(req, "artistId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "0", "-1", "x1"} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"artistId": raw})
		_, err := PathID(req, "artistId")
		assert.ErrorIs(t, err, ErrInvalidPathParam, raw)
	}
}

func TestParseOptional(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-02-29")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 29, d.Day())

	_, err = ParseOptionalDate("2023-02-29")
	assert.Error(t, err)

	n, err := ParseOptionalInt("")
	require.NoError(t, err)
	assert.Zero(t, n)

	b, err := ParseOptionalBool("true")
	require.NoError(t, err)
	assert.True(t, b)
}

func TestValidate(t *testing.T) {
	type request struct {
		Date  string `json:"date" validate:"required,isodate"`
		Start string `json:"startTime" validate:"required,timeofday"`
		Event string `json:"event" validate:"omitempty,booking_event"`
		Days  int    `json:"days" validate:"gte=0,lte=92"`
	}

	assert.Nil(t, Validate(&request{Date: "2024-03-15", Start: "24:00", Event: "cancel"}))

	details := Validate(&request{Date: "15/03/2024", Start: "10", Event: "archive", Days: 100})
	require.NotNil(t, details)
	assert.Equal(t, "ожидается дата в формате YYYY-MM-DD", details["date"])
	assert.Equal(t, "ожидается время в формате HH:MM", details["startTime"])
	assert.Contains(t, details, "event")
	assert.Equal(t, "должно быть не больше 92", details["days"])

	details = Validate(&request{})
	assert.Equal(t, "обязательное поле", details["date"])
}

func TestRespondValidationError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondValidationError(rr, "bad", map[string]string{"startTime": "ожидается время в формате HH:MM"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "bad", out.Error)
	assert.Len(t, out.Details, 1)
}
