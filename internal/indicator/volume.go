package indicator

import (
	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// OBV returns on-balance volume. OBV[0] is volume[0]; later rows add the volume on
// an up close, subtract it on a down close and carry the total on an equal close.
func OBV(close, volume []float64) []float64 {
	out := make([]float64, len(close))
	if len(close) == 0 {
		return out
	}

	out[0] = volume[0]
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}

	return out
}

// VR returns the volume ratio 100 * up volume / down volume over the trailing
// period rows. Row 0 has no direction and flat closes count for neither side.
// Defined from row period-1; NaN when the window has no down volume.
func VR(close, volume []float64, period int) []float64 {
	n := len(close)
	out := newNA(n)

	if period <= 0 {
		return out
	}

	up := make([]float64, n)
	down := make([]float64, n)

	for i := 1; i < n; i++ {
		switch {
		case close[i] > close[i-1]:
			up[i] = volume[i]
		case close[i] < close[i-1]:
			down[i] = volume[i]
		}
	}

	for i := period - 1; i < n; i++ {
		out[i] = 100 * safeDiv(windowSum(up, i, period), windowSum(down, i, period))
	}

	return out
}

// OBVIndicator writes the OBV column.
type OBVIndicator struct{}

// NewOBV creates a new OBV indicator.
func NewOBV() Indicator {
	return &OBVIndicator{}
}

// Name returns the name of the indicator.
func (o *OBVIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeOBV
}

// Columns returns OBV.
func (o *OBVIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnOBV}
}

// Config accepts no parameters.
func (o *OBVIndicator) Config(params ...any) error {
	return expectParams(o.Name(), params, 0, "none")
}

// Compute calculates OBV.
func (o *OBVIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	return map[types.Column][]float64{
		types.ColumnOBV: OBV(data.Close, data.Volume),
	}, nil
}

// VRIndicator writes the VR column.
type VRIndicator struct {
	period int
}

// NewVR creates a new VR indicator with a 26 day period.
func NewVR() Indicator {
	return &VRIndicator{period: 26}
}

// Name returns the name of the indicator.
func (v *VRIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeVR
}

// Columns returns VR.
func (v *VRIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnVR}
}

// Config configures the VR indicator. Expected parameters: period (int).
func (v *VRIndicator) Config(params ...any) error {
	if err := expectParams(v.Name(), params, 1, "period (int)"); err != nil {
		return err
	}

	period, err := parsePeriod("period", params[0])
	if err != nil {
		return err
	}

	v.period = period

	return nil
}

// Compute calculates VR.
func (v *VRIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	return map[types.Column][]float64{
		types.ColumnVR: VR(data.Close, data.Volume, v.period),
	}, nil
}
