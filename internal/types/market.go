package types

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// validate caches struct metadata across calls and is safe for concurrent use.
var validate = validator.New()

// Bar is one daily OHLCV record.
type Bar struct {
	Date   time.Time `yaml:"date" json:"date" csv:"date" validate:"required"`
	Open   float64   `yaml:"open" json:"open" csv:"open" validate:"gt=0"`
	High   float64   `yaml:"high" json:"high" csv:"high" validate:"gt=0"`
	Low    float64   `yaml:"low" json:"low" csv:"low" validate:"gt=0"`
	Close  float64   `yaml:"close" json:"close" csv:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
}

// Validate checks a single bar: positive finite prices, non-negative volume and
// open/close inside the [low, high] range.
func (b Bar) Validate() error {
	if err := validate.Struct(b); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidSeries, err, "invalid bar at %s", b.Date.Format(time.DateOnly))
	}

	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsInf(v, 0) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "non-finite value in bar at %s", b.Date.Format(time.DateOnly))
		}
	}

	if b.Low > b.High {
		return errors.Newf(errors.ErrCodeInvalidSeries, "bar at %s has low %.4f above high %.4f", b.Date.Format(time.DateOnly), b.Low, b.High)
	}

	if b.Close < b.Low || b.Close > b.High || b.Open < b.Low || b.Open > b.High {
		return errors.Newf(errors.ErrCodeInvalidSeries, "bar at %s has open/close outside the low-high range", b.Date.Format(time.DateOnly))
	}

	return nil
}

// TimeSeries is an ordered run of bars for one stock, ascending by date.
type TimeSeries struct {
	Code string `yaml:"code" json:"code"`
	Bars []Bar  `yaml:"bars" json:"bars"`
}

// NewTimeSeries copies bars into a new series.
func NewTimeSeries(code string, bars []Bar) TimeSeries {
	copied := make([]Bar, len(bars))
	copy(copied, bars)

	return TimeSeries{Code: code, Bars: copied}
}

// Len returns the number of bars.
func (s TimeSeries) Len() int {
	return len(s.Bars)
}

// Clone returns a deep copy of the series.
func (s TimeSeries) Clone() TimeSeries {
	return NewTimeSeries(s.Code, s.Bars)
}

// Validate checks the series invariants: non-empty, strictly ascending unique dates
// and every bar valid.
func (s TimeSeries) Validate() error {
	if len(s.Bars) == 0 {
		return errors.Newf(errors.ErrCodeEmptySeries, "time series %q has no bars", s.Code)
	}

	for i, bar := range s.Bars {
		if err := bar.Validate(); err != nil {
			return err
		}

		if i == 0 {
			continue
		}

		prev := s.Bars[i-1].Date
		if bar.Date.Equal(prev) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "duplicate date %s at row %d", bar.Date.Format(time.DateOnly), i)
		}

		if bar.Date.Before(prev) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "row %d (%s) is earlier than row %d (%s)", i, bar.Date.Format(time.DateOnly), i-1, prev.Format(time.DateOnly))
		}
	}

	return nil
}

// OHLCV holds the raw price and volume columns as aligned arrays.
type OHLCV struct {
	Dates  []time.Time
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// Len returns the number of rows.
func (o OHLCV) Len() int {
	return len(o.Close)
}

// Columns splits the bars into fresh column arrays.
func (s TimeSeries) Columns() OHLCV {
	n := len(s.Bars)
	out := OHLCV{
		Dates:  make([]time.Time, n),
		Open:   make([]float64, n),
		High:   make([]float64, n),
		Low:    make([]float64, n),
		Close:  make([]float64, n),
		Volume: make([]float64, n),
	}

	for i, bar := range s.Bars {
		out.Dates[i] = bar.Date
		out.Open[i] = bar.Open
		out.High[i] = bar.High
		out.Low[i] = bar.Low
		out.Close[i] = bar.Close
		out.Volume[i] = bar.Volume
	}

	return out
}
