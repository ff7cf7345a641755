package features

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(date, carrier, origin string) *models.PredictionRequest {
	return &models.PredictionRequest{Date: &date, Carrier: &carrier, Origin: &origin}
}

func TestSeason(t *testing.T) {
	expected := map[time.Month]string{
		time.January: Winter, time.February: Winter, time.March: Spring,
		time.April: Spring, time.May: Spring, time.June: Summer,
		time.July: Summer, time.August: Summer, time.September: Fall,
		time.October: Fall, time.November: Fall, time.December: Winter,
	}
	valid := map[string]bool{Winter: true, Spring: true, Summer: true, Fall: true}

	for month := time.January; month <= time.December; month++ {
		got := Season(month)
		assert.True(t, valid[got], "month %d", month)
		assert.Equal(t, expected[month], got, "month %d", month)
		assert.Equal(t, got, Season(month), "repeated call for month %d", month)
	}
}

func TestBuild_Winter(t *testing.T) {
	record, err := Build(request("2024-01-15", "AA", "JFK"))
	require.NoError(t, err)

	assert.Equal(t, &Record{
		Year:           2024,
		Month:          1,
		Carrier:        "AA",
		Airport:        "JFK",
		ArrFlights:     1,
		ArrDel15:       0,
		CarrierCt:      0,
		WeatherCt:      0,
		NasCt:          0,
		SecurityCt:     0,
		LateAircraftCt: 0,
		Season:         Winter,
	}, record)
}

func TestBuild_Summer(t *testing.T) {
	record, err := Build(request("2024-07-04", "DL", "ATL"))
	require.NoError(t, err)

	assert.Equal(t, 2024, record.Year)
	assert.Equal(t, 7, record.Month)
	assert.Equal(t, Summer, record.Season)
}

func TestBuild_IsPure(t *testing.T) {
	req := request("2023-11-30", "UA", "SFO")
	first, err := Build(req)
	require.NoError(t, err)
	second, err := Build(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_InvalidDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{name: "month out of range", date: "2024-13-01"},
		{name: "not a date", date: "not-a-date"},
		{name: "day out of range", date: "2023-02-29"},
		{name: "missing zero padding", date: "2024-1-5"},
		{name: "trailing time", date: "2024-01-15T10:00:00"},
		{name: "empty", date: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := Build(request(tt.date, "AA", "JFK"))
			assert.Nil(t, record)

			var dateErr *errors.InvalidDateError
			require.True(t, stderrors.As(err, &dateErr))
			assert.Equal(t, tt.date, dateErr.Value)
		})
	}
}

func TestRecord_ColumnsFollowSchema(t *testing.T) {
	record, err := Build(request("2024-04-02", "B6", "BOS"))
	require.NoError(t, err)

	keys := record.Columns().Keys()
	require.Len(t, keys, len(Schema))
	for i, key := range keys {
		assert.Equal(t, Schema[i], key)
	}
}

func TestRecord_Frame(t *testing.T) {
	record, err := Build(request("2024-04-02", "B6", "BOS"))
	require.NoError(t, err)

	frame := record.Frame()
	require.NoError(t, frame.Err)
	assert.Equal(t, 1, frame.Nrow())
	assert.Equal(t, Schema, frame.Names())
	assert.Equal(t, []string{"BOS"}, frame.Col(ColAirport).Records())
	assert.Equal(t, []float64{4}, frame.Col(ColMonth).Float())
	assert.Equal(t, []string{Spring}, frame.Col(ColSeason).Records())
}
