package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// SMA returns the trailing arithmetic mean over period rows. Row i is defined from
// period-1 on, and is NaN when its window contains NaN.
func SMA(values []float64, period int) []float64 {
	out := newNA(len(values))
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		out[i] = windowSum(values, i, period) / float64(period)
	}

	return out
}

// MA computes simple moving averages of close for a set of periods.
type MA struct {
	periods []int
}

// NewMA creates a new MA indicator with the 5, 10, 20 and 60 day periods.
func NewMA() Indicator {
	return &MA{
		periods: []int{5, 10, 20, 60},
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Columns returns MA<period> for every configured period.
func (m *MA) Columns() []types.Column {
	cols := make([]types.Column, len(m.periods))
	for i, p := range m.periods {
		cols[i] = maColumn(p)
	}

	return cols
}

// Config sets the periods. Expected parameters: one or more periods (int).
func (m *MA) Config(params ...any) error {
	if len(params) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "ma Config expects at least 1 parameter: period (int)")
	}

	periods := make([]int, 0, len(params))
	seen := make(map[int]bool, len(params))

	for _, param := range params {
		period, err := parsePeriod("period", param)
		if err != nil {
			return err
		}

		if seen[period] {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "duplicate ma period %d", period)
		}

		seen[period] = true
		periods = append(periods, period)
	}

	m.periods = periods

	return nil
}

// Compute calculates one SMA column per period.
func (m *MA) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	out := make(map[types.Column][]float64, len(m.periods))
	for _, p := range m.periods {
		out[maColumn(p)] = SMA(data.Close, p)
	}

	return out, nil
}

func maColumn(period int) types.Column {
	return types.Column(fmt.Sprintf("MA%d", period))
}
