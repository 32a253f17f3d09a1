package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-analyst/internal/types"
)

const cciConstant = 0.015

// CCI returns the commodity channel index of the typical price (H+L+C)/3:
// (TP - SMA(TP)) / (0.015 * mean absolute deviation). Defined from row period-1;
// NaN when the mean deviation is zero.
func CCI(high, low, close []float64, period int) []float64 {
	n := len(close)
	out := newNA(n)

	if period <= 0 {
		return out
	}

	tp := make([]float64, n)
	for i := range tp {
		tp[i] = (high[i] + low[i] + close[i]) / 3
	}

	for i := period - 1; i < n; i++ {
		mean := windowSum(tp, i, period) / float64(period)

		dev := 0.0
		for j := i - period + 1; j <= i; j++ {
			dev += math.Abs(tp[j] - mean)
		}

		dev /= float64(period)
		out[i] = safeDiv(tp[i]-mean, cciConstant*dev)
	}

	return out
}

// CCIIndicator writes the CCI column.
type CCIIndicator struct {
	period int
}

// NewCCI creates a new CCI indicator with a 14 day period.
func NewCCI() Indicator {
	return &CCIIndicator{period: 14}
}

// Name returns the name of the indicator.
func (c *CCIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeCCI
}

// Columns returns CCI.
func (c *CCIIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnCCI}
}

// Config configures the CCI indicator. Expected parameters: period (int).
func (c *CCIIndicator) Config(params ...any) error {
	if err := expectParams(c.Name(), params, 1, "period (int)"); err != nil {
		return err
	}

	period, err := parsePeriod("period", params[0])
	if err != nil {
		return err
	}

	c.period = period

	return nil
}

// Compute calculates CCI.
func (c *CCIIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	return map[types.Column][]float64{
		types.ColumnCCI: CCI(data.High, data.Low, data.Close, c.period),
	}, nil
}
