package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// DMI returns the plus and minus directional indicators and ADX.
//
// +DM, -DM and true range are Wilder-smoothed: rows 1..period-1 are summed, then
// every row applies sm = sm - sm/period + x. The DI lines are defined from row
// period and are NaN when the smoothed true range is zero. ADX is the mean of the
// first period DX values (defined at row 2*period-1) followed by Wilder smoothing.
// A degenerate DX adds zero while seeding and leaves ADX unchanged afterwards.
func DMI(high, low, close []float64, period int) (plusDI, minusDI, adx []float64) {
	n := len(close)
	plusDI = newNA(n)
	minusDI = newNA(n)
	adx = newNA(n)

	if period < 2 || n <= period {
		return plusDI, minusDI, adx
	}

	var smPlus, smMinus, smTR float64

	for i := 1; i < period; i++ {
		pdm, mdm, tr := directionalMove(high, low, close, i)
		smPlus += pdm
		smMinus += mdm
		smTR += tr
	}

	p := float64(period)
	seedEnd := 2*period - 1

	var sumDX, adxValue float64

	for i := period; i < n; i++ {
		pdm, mdm, tr := directionalMove(high, low, close, i)
		smPlus = smPlus - smPlus/p + pdm
		smMinus = smMinus - smMinus/p + mdm
		smTR = smTR - smTR/p + tr

		pdi := 100 * safeDiv(smPlus, smTR)
		mdi := 100 * safeDiv(smMinus, smTR)
		plusDI[i] = pdi
		minusDI[i] = mdi

		dx := 100 * safeDiv(math.Abs(pdi-mdi), pdi+mdi)

		switch {
		case i < seedEnd:
			if !IsNA(dx) {
				sumDX += dx
			}
		case i == seedEnd:
			if !IsNA(dx) {
				sumDX += dx
			}

			adxValue = sumDX / p
			adx[i] = adxValue
		default:
			if !IsNA(dx) {
				adxValue = (adxValue*(p-1) + dx) / p
			}

			adx[i] = adxValue
		}
	}

	return plusDI, minusDI, adx
}

// directionalMove returns +DM, -DM and the true range of row i against row i-1.
func directionalMove(high, low, close []float64, i int) (plusDM, minusDM, trueRange float64) {
	up := high[i] - high[i-1]
	down := low[i-1] - low[i]

	if up > 0 && up > down {
		plusDM = up
	}

	if down > 0 && down > up {
		minusDM = down
	}

	trueRange = math.Max(high[i]-low[i], math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))

	return plusDM, minusDM, trueRange
}

// DMIIndicator writes PLUS_DI, MINUS_DI and ADX.
type DMIIndicator struct {
	period int
}

// NewDMI creates a new DMI indicator with a 14 day period.
func NewDMI() Indicator {
	return &DMIIndicator{period: 14}
}

// Name returns the name of the indicator.
func (m *DMIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeDMI
}

// Columns returns PLUS_DI, MINUS_DI and ADX.
func (m *DMIIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnPlusDI, types.ColumnMinusDI, types.ColumnADX}
}

// Config configures the DMI indicator. Expected parameters: period (int), at least 2.
func (m *DMIIndicator) Config(params ...any) error {
	if err := expectParams(m.Name(), params, 1, "period (int)"); err != nil {
		return err
	}

	period, err := parsePeriod("period", params[0])
	if err != nil {
		return err
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "dmi period must be at least 2, got %d", period)
	}

	m.period = period

	return nil
}

// Compute calculates the directional movement columns.
func (m *DMIIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	plus, minus, adx := DMI(data.High, data.Low, data.Close, m.period)

	return map[types.Column][]float64{
		types.ColumnPlusDI:  plus,
		types.ColumnMinusDI: minus,
		types.ColumnADX:     adx,
	}, nil
}
