package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// BollingerBands returns upper, middle and lower bands. The middle band is the SMA
// of close and the bands sit multiplier population standard deviations away.
func BollingerBands(close []float64, period int, multiplier float64) (upper, middle, lower []float64) {
	n := len(close)
	middle = SMA(close, period)
	upper = newNA(n)
	lower = newNA(n)

	for i := period - 1; i < n && period > 0; i++ {
		if IsNA(middle[i]) {
			continue
		}

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := close[j] - middle[i]
			variance += d * d
		}

		sd := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + multiplier*sd
		lower[i] = middle[i] - multiplier*sd
	}

	return upper, middle, lower
}

// BollingerBandsIndicator writes BB_UPPER, BB_MIDDLE and BB_LOWER.
type BollingerBandsIndicator struct {
	period     int     // Number of periods for moving average
	multiplier float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBandsIndicator{
		period:     20,
		multiplier: 2.0,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBandsIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Columns returns the band columns.
func (bb *BollingerBandsIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnBBUpper, types.ColumnBBMiddle, types.ColumnBBLower}
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), multiplier (float64).
func (bb *BollingerBandsIndicator) Config(params ...any) error {
	if err := expectParams(bb.Name(), params, 2, "period (int), multiplier (float64)"); err != nil {
		return err
	}

	period, err := parsePeriod("period", params[0])
	if err != nil {
		return err
	}

	multiplier, err := parsePositiveFloat("multiplier", params[1])
	if err != nil {
		return err
	}

	bb.period = period
	bb.multiplier = multiplier

	return nil
}

// Compute calculates the bands.
func (bb *BollingerBandsIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	upper, middle, lower := BollingerBands(data.Close, bb.period, bb.multiplier)

	return map[types.Column][]float64{
		types.ColumnBBUpper:  upper,
		types.ColumnBBMiddle: middle,
		types.ColumnBBLower:  lower,
	}, nil
}
