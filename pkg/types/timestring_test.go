package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{" 17:30 ", "17:30", false},
		{"10:15:00", "10:15", false},
		{"02:30 pm", "14:30", false},
		{"24:00", "24:00", false},
		{"24:00:00", "24:00", false},
		{"25:00", "", true},
		{"9", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := MustTimeString("22:30")
	assert.Equal(t, 22*60+30, start.Minutes())

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)
	assert.Equal(t, MinutesPerDay, end.Minutes())

	_, err = start.AddMinutes(91)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.True(t, MustTimeString("09:00").IsBefore("09:15"))
	assert.True(t, MustTimeString("24:00").IsAfter("23:59"))
	assert.True(t, MustTimeString("12:00").Equal("12:00"))
}

func TestTimeString_Label(t *testing.T) {
	assert.Equal(t, "09:00 AM", MustTimeString("09:00").Label())
	assert.Equal(t, "12:00 PM", MustTimeString("12:00").Label())
	assert.Equal(t, "01:45 PM", MustTimeString("13:45").Label())
	assert.Equal(t, "12:00 AM", MustTimeString("00:00").Label())
	assert.Equal(t, "12:00 AM", MustTimeString("24:00").Label())
}

func TestTimeString_OnDate(t *testing.T) {
	d := time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC), MustTimeString("10:30").OnDate(d))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), MustTimeString("24:00").OnDate(d))
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("24:00:00")))
	assert.Equal(t, TimeString("24:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("8am").Value()
	assert.Error(t, err)
}
