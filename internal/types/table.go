package types

import (
	"strings"
	"time"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/shopspring/decimal"
)

// Raw column names of an OHLCV table. Lookups are case-insensitive.
const (
	ColumnDate   = "date"
	ColumnOpen   = "open"
	ColumnHigh   = "high"
	ColumnLow    = "low"
	ColumnClose  = "close"
	ColumnVolume = "volume"
)

// RequiredColumns lists the raw columns every OHLCV table must carry.
var RequiredColumns = []string{ColumnDate, ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006/01/02",
	"20060102",
}

// ParseDate parses the date formats commonly produced by market data exports.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeNonNumericCell, "unrecognized date %q", value)
}

// ParseTable converts a string table (header plus rows, e.g. a CSV export or an API
// response) into a TimeSeries. Header names are matched case-insensitively, extra
// columns are ignored and numeric cells are coerced through decimal parsing.
func ParseTable(code string, header []string, rows [][]string) (TimeSeries, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return TimeSeries{}, errors.NewMissingColumnError(col)
		}
	}

	bars := make([]Bar, 0, len(rows))

	for r, row := range rows {
		if len(row) != len(header) {
			return TimeSeries{}, errors.Newf(errors.ErrCodeLengthMismatch, "row %d has %d cells, header has %d", r, len(row), len(header))
		}

		date, err := ParseDate(row[index[ColumnDate]])
		if err != nil {
			return TimeSeries{}, errors.Wrapf(errors.ErrCodeNonNumericCell, err, "row %d column %q", r, ColumnDate)
		}

		values := make(map[string]float64, 5)

		for _, col := range RequiredColumns[1:] {
			v, err := parseNumber(row[index[col]])
			if err != nil {
				return TimeSeries{}, errors.Wrapf(errors.ErrCodeNonNumericCell, err, "row %d column %q is not numeric", r, col)
			}

			values[col] = v
		}

		bars = append(bars, Bar{
			Date:   date,
			Open:   values[ColumnOpen],
			High:   values[ColumnHigh],
			Low:    values[ColumnLow],
			Close:  values[ColumnClose],
			Volume: values[ColumnVolume],
		})
	}

	return TimeSeries{Code: code, Bars: bars}, nil
}

// SeriesFromColumns builds a TimeSeries from named column arrays. Names are matched
// case-insensitively and all arrays must share the length of dates.
func SeriesFromColumns(code string, dates []time.Time, columns map[string][]float64) (TimeSeries, error) {
	lookup := make(map[string][]float64, len(columns))
	for name, values := range columns {
		lookup[strings.ToLower(name)] = values
	}

	for _, col := range RequiredColumns[1:] {
		values, ok := lookup[col]
		if !ok {
			return TimeSeries{}, errors.NewMissingColumnError(col)
		}

		if len(values) != len(dates) {
			return TimeSeries{}, errors.Newf(errors.ErrCodeLengthMismatch, "column %q has %d values, expected %d", col, len(values), len(dates))
		}
	}

	bars := make([]Bar, len(dates))
	for i, date := range dates {
		bars[i] = Bar{
			Date:   date,
			Open:   lookup[ColumnOpen][i],
			High:   lookup[ColumnHigh][i],
			Low:    lookup[ColumnLow][i],
			Close:  lookup[ColumnClose][i],
			Volume: lookup[ColumnVolume][i],
		}
	}

	return TimeSeries{Code: code, Bars: bars}, nil
}

func parseNumber(cell string) (float64, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")

	d, err := decimal.NewFromString(cell)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}
