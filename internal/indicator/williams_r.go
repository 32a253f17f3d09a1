package indicator

import (
	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// WilliamsR returns -100*(HH-C)/(HH-LL) over the trailing period rows. Defined
// from row period-1; NaN on a zero high-low range.
func WilliamsR(high, low, close []float64, period int) []float64 {
	n := len(close)
	out := newNA(n)

	for i := period - 1; i < n && period > 0; i++ {
		hh := windowMax(high, i, period)
		ll := windowMin(low, i, period)
		out[i] = -100 * safeDiv(hh-close[i], hh-ll)
	}

	return out
}

// WilliamsRIndicator writes the WILLR column.
type WilliamsRIndicator struct {
	period int
}

// NewWilliamsR creates a new Williams %R indicator with a 14 day period.
func NewWilliamsR() Indicator {
	return &WilliamsRIndicator{period: 14}
}

// Name returns the name of the indicator.
func (w *WilliamsRIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeWilliamsR
}

// Columns returns WILLR.
func (w *WilliamsRIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnWILLR}
}

// Config configures the indicator. Expected parameters: period (int).
func (w *WilliamsRIndicator) Config(params ...any) error {
	if err := expectParams(w.Name(), params, 1, "period (int)"); err != nil {
		return err
	}

	period, err := parsePeriod("period", params[0])
	if err != nil {
		return err
	}

	w.period = period

	return nil
}

// Compute calculates Williams %R.
func (w *WilliamsRIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	return map[types.Column][]float64{
		types.ColumnWILLR: WilliamsR(data.High, data.Low, data.Close, w.period),
	}, nil
}
