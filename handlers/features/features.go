package features

import (
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const DateLayout = "2006-01-02"

// column names, in the order the models were trained on
const (
	ColYear           = "year"
	ColMonth          = "month"
	ColCarrier        = "carrier"
	ColAirport        = "airport"
	ColArrFlights     = "arr_flights"
	ColArrDel15       = "arr_del15"
	ColCarrierCt      = "carrier_ct"
	ColWeatherCt      = "weather_ct"
	ColNasCt          = "nas_ct"
	ColSecurityCt     = "security_ct"
	ColLateAircraftCt = "late_aircraft_ct"
	ColSeason         = "season"
)

var Schema = []string{
	ColYear, ColMonth, ColCarrier, ColAirport, ColArrFlights, ColArrDel15,
	ColCarrierCt, ColWeatherCt, ColNasCt, ColSecurityCt, ColLateAircraftCt, ColSeason,
}

// Placeholder aggregates. The models were trained on historical counts that
// are not available at request time.
const (
	placeholderArrFlights = 1
	placeholderCount      = 0
)

// Record is the single feature row fed to every model.
type Record struct {
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	Carrier        string `json:"carrier"`
	Airport        string `json:"airport"`
	ArrFlights     int    `json:"arr_flights"`
	ArrDel15       int    `json:"arr_del15"`
	CarrierCt      int    `json:"carrier_ct"`
	WeatherCt      int    `json:"weather_ct"`
	NasCt          int    `json:"nas_ct"`
	SecurityCt     int    `json:"security_ct"`
	LateAircraftCt int    `json:"late_aircraft_ct"`
	Season         string `json:"season"`
}

// Build derives the feature record for a request. Only the date is parsed;
// carrier and origin are passed through as opaque categories.
func Build(req *models.PredictionRequest) (*Record, error) {
	rawDate := req.GetDate()
	date, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return nil, &errors.InvalidDateError{Value: rawDate, Err: err}
	}
	return &Record{
		Year:           date.Year(),
		Month:          int(date.Month()),
		Carrier:        req.GetCarrier(),
		Airport:        req.GetOrigin(),
		ArrFlights:     placeholderArrFlights,
		ArrDel15:       placeholderCount,
		CarrierCt:      placeholderCount,
		WeatherCt:      placeholderCount,
		NasCt:          placeholderCount,
		SecurityCt:     placeholderCount,
		LateAircraftCt: placeholderCount,
		Season:         Season(date.Month()),
	}, nil
}

// Columns returns the record as an insertion-ordered column map following Schema.
func (r *Record) Columns() *linkedhashmap.Map {
	columns := linkedhashmap.New()
	columns.Put(ColYear, r.Year)
	columns.Put(ColMonth, r.Month)
	columns.Put(ColCarrier, r.Carrier)
	columns.Put(ColAirport, r.Airport)
	columns.Put(ColArrFlights, r.ArrFlights)
	columns.Put(ColArrDel15, r.ArrDel15)
	columns.Put(ColCarrierCt, r.CarrierCt)
	columns.Put(ColWeatherCt, r.WeatherCt)
	columns.Put(ColNasCt, r.NasCt)
	columns.Put(ColSecurityCt, r.SecurityCt)
	columns.Put(ColLateAircraftCt, r.LateAircraftCt)
	columns.Put(ColSeason, r.Season)
	return columns
}

// Frame returns the record as a one-row table.
func (r *Record) Frame() dataframe.DataFrame {
	columns := r.Columns()
	cols := make([]series.Series, 0, columns.Size())
	it := columns.Iterator()
	for it.Next() {
		name := it.Key().(string)
		switch v := it.Value().(type) {
		case int:
			cols = append(cols, series.New([]int{v}, series.Int, name))
		case string:
			cols = append(cols, series.New([]string{v}, series.String, name))
		default:
			panic(fmt.Sprintf("unsupported feature type %T for column %s", v, name))
		}
	}
	return dataframe.New(cols...)
}
