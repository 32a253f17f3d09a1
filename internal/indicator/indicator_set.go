package indicator

import (
	"encoding/json"
	"math"
	"time"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IndicatorSet is the series plus its derived indicator columns. It is immutable:
// every accessor returns copies.
type IndicatorSet struct {
	series  types.TimeSeries
	columns map[types.Column][]float64
	order   []types.Column
}

// Len returns the number of rows.
func (s *IndicatorSet) Len() int {
	return s.series.Len()
}

// Code returns the stock code of the underlying series.
func (s *IndicatorSet) Code() string {
	return s.series.Code
}

// Series returns a copy of the underlying series.
func (s *IndicatorSet) Series() types.TimeSeries {
	return s.series.Clone()
}

// Columns returns the derived column names in computation order.
func (s *IndicatorSet) Columns() []types.Column {
	return append([]types.Column(nil), s.order...)
}

// Has reports whether the set carries the column.
func (s *IndicatorSet) Has(col types.Column) bool {
	_, ok := s.columns[col]

	return ok
}

// Column returns a copy of a derived column.
func (s *IndicatorSet) Column(col types.Column) ([]float64, error) {
	values, ok := s.columns[col]
	if !ok {
		return nil, errors.NewMissingIndicatorError(string(col))
	}

	return append([]float64(nil), values...), nil
}

// Value returns one cell of a derived column. Negative rows count from the end,
// so -1 is the latest row.
func (s *IndicatorSet) Value(col types.Column, row int) (float64, error) {
	values, ok := s.columns[col]
	if !ok {
		return 0, errors.NewMissingIndicatorError(string(col))
	}

	if row < 0 {
		row += len(values)
	}

	if row < 0 || row >= len(values) {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "row %d out of range for %d rows", row, len(values))
	}

	return values[row], nil
}

// Row is one exported row of an IndicatorSet. Undefined values are nil.
type Row struct {
	Date       time.Time           `json:"date" yaml:"date"`
	Bar        types.Bar           `json:"bar" yaml:"bar"`
	Indicators map[string]*float64 `json:"indicators" yaml:"indicators"`
}

// Rows exports the last n rows (all rows when n <= 0 or n exceeds the length).
func (s *IndicatorSet) Rows(n int) []Row {
	start := 0
	if n > 0 && n < s.Len() {
		start = s.Len() - n
	}

	rows := make([]Row, 0, s.Len()-start)

	for i := start; i < s.Len(); i++ {
		bar := s.series.Bars[i]
		values := make(map[string]*float64, len(s.order))

		for _, col := range s.order {
			v := s.columns[col][i]
			if IsNA(v) || math.IsInf(v, 0) {
				values[string(col)] = nil

				continue
			}

			values[string(col)] = &v
		}

		rows = append(rows, Row{Date: bar.Date, Bar: bar, Indicators: values})
	}

	return rows
}

type exportedSet struct {
	Code    string         `json:"code" yaml:"code"`
	Columns []types.Column `json:"columns" yaml:"columns"`
	Rows    []Row          `json:"rows" yaml:"rows"`
}

func (s *IndicatorSet) export() exportedSet {
	return exportedSet{Code: s.series.Code, Columns: s.Columns(), Rows: s.Rows(0)}
}

// MarshalJSON exports the set row by row with null for undefined values.
func (s *IndicatorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.export())
}

// MarshalYAML exports the set row by row with null for undefined values.
func (s *IndicatorSet) MarshalYAML() (any, error) {
	return s.export(), nil
}

// ToYAML encodes the set as YAML.
func (s *IndicatorSet) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// builder accumulates named output arrays and produces an immutable IndicatorSet.
type builder struct {
	series  types.TimeSeries
	columns map[types.Column][]float64
	order   []types.Column
}

func newBuilder(series types.TimeSeries) *builder {
	return &builder{
		series:  series.Clone(),
		columns: make(map[types.Column][]float64),
	}
}

func (b *builder) add(col types.Column, values []float64) error {
	if _, exists := b.columns[col]; exists {
		return errors.Newf(errors.ErrCodeColumnConflict, "column %s written twice", col)
	}

	if len(values) != b.series.Len() {
		return errors.Newf(errors.ErrCodeLengthMismatch, "column %s has %d rows, series has %d", col, len(values), b.series.Len())
	}

	b.columns[col] = append([]float64(nil), values...)
	b.order = append(b.order, col)

	return nil
}

func (b *builder) build() *IndicatorSet {
	return &IndicatorSet{
		series:  b.series,
		columns: b.columns,
		order:   b.order,
	}
}
