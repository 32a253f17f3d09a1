package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// RSI returns Wilder's relative strength index. The first average gain and loss are
// simple means of the first period changes; later rows use
// avg = (avg*(period-1) + x) / period. Row period is the first defined row. A row
// with neither gains nor losses is NaN.
func RSI(close []float64, period int) []float64 {
	n := len(close)
	out := newNA(n)

	if period <= 0 || n <= period {
		return out
	}

	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		gain, loss := change(close[i-1], close[i])
		avgGain += gain
		avgLoss += loss
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	p := float64(period)
	for i := period + 1; i < n; i++ {
		gain, loss := change(close[i-1], close[i])
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return out
}

func change(prev, cur float64) (gain, loss float64) {
	diff := cur - prev
	if diff > 0 {
		return diff, 0
	}

	return 0, -diff
}

func rsiValue(avgGain, avgLoss float64) float64 {
	return 100 * safeDiv(avgGain, avgGain+avgLoss)
}

// RSIIndicator writes one RSI<period> column per configured period.
type RSIIndicator struct {
	periods []int
}

// NewRSI creates a new RSI indicator with the 6, 12 and 24 day periods.
func NewRSI() Indicator {
	return &RSIIndicator{
		periods: []int{6, 12, 24},
	}
}

// Name returns the name of the indicator.
func (r *RSIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Columns returns RSI<period> for every configured period.
func (r *RSIIndicator) Columns() []types.Column {
	cols := make([]types.Column, len(r.periods))
	for i, p := range r.periods {
		cols[i] = RSIColumn(p)
	}

	return cols
}

// Periods returns the configured periods.
func (r *RSIIndicator) Periods() []int {
	return append([]int(nil), r.periods...)
}

// Config sets the periods. Expected parameters: one or more periods (int), each at least 2.
func (r *RSIIndicator) Config(params ...any) error {
	if len(params) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "rsi Config expects at least 1 parameter: period (int)")
	}

	periods := make([]int, 0, len(params))
	seen := make(map[int]bool, len(params))

	for _, param := range params {
		period, err := parsePeriod("period", param)
		if err != nil {
			return err
		}

		if period < 2 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "rsi period must be at least 2, got %d", period)
		}

		if seen[period] {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "duplicate rsi period %d", period)
		}

		seen[period] = true
		periods = append(periods, period)
	}

	r.periods = periods

	return nil
}

// Compute calculates one RSI column per period.
func (r *RSIIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	out := make(map[types.Column][]float64, len(r.periods))
	for _, p := range r.periods {
		out[RSIColumn(p)] = RSI(data.Close, p)
	}

	return out, nil
}

// RSIColumn returns the column name for an RSI period.
func RSIColumn(period int) types.Column {
	return types.Column(fmt.Sprintf("RSI%d", period))
}
