package indicator

import (
	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// KDJ returns the stochastic oscillator K and D lines and J = 3K - 2D.
// RSV = 100*(C-LL)/(HH-LL) over the rsv window, K is the SMA of RSV and D the SMA
// of K. With 9/3/3, K is defined from row 10 and D and J from row 12. A zero
// high-low range makes RSV NaN for that row.
func KDJ(high, low, close []float64, rsvPeriod, kPeriod, dPeriod int) (k, d, j []float64) {
	n := len(close)
	rsv := newNA(n)

	for i := rsvPeriod - 1; i < n && rsvPeriod > 0; i++ {
		hh := windowMax(high, i, rsvPeriod)
		ll := windowMin(low, i, rsvPeriod)
		rsv[i] = 100 * safeDiv(close[i]-ll, hh-ll)
	}

	k = SMA(rsv, kPeriod)
	d = SMA(k, dPeriod)

	j = newNA(n)
	for i := range j {
		if !IsNA(k[i]) && !IsNA(d[i]) {
			j[i] = 3*k[i] - 2*d[i]
		}
	}

	return k, d, j
}

// KDJIndicator writes K, D and J.
type KDJIndicator struct {
	rsvPeriod int
	kPeriod   int
	dPeriod   int
}

// NewKDJ creates a new KDJ indicator with the 9, 3, 3 configuration.
func NewKDJ() Indicator {
	return &KDJIndicator{
		rsvPeriod: 9,
		kPeriod:   3,
		dPeriod:   3,
	}
}

// Name returns the name of the indicator.
func (s *KDJIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeKDJ
}

// Columns returns K, D and J.
func (s *KDJIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnK, types.ColumnD, types.ColumnJ}
}

// Config configures the KDJ indicator. Expected parameters: rsvPeriod (int), kPeriod (int), dPeriod (int).
func (s *KDJIndicator) Config(params ...any) error {
	if err := expectParams(s.Name(), params, 3, "rsvPeriod (int), kPeriod (int), dPeriod (int)"); err != nil {
		return err
	}

	rsvPeriod, err := parsePeriod("rsvPeriod", params[0])
	if err != nil {
		return err
	}

	kPeriod, err := parsePeriod("kPeriod", params[1])
	if err != nil {
		return err
	}

	dPeriod, err := parsePeriod("dPeriod", params[2])
	if err != nil {
		return err
	}

	s.rsvPeriod = rsvPeriod
	s.kPeriod = kPeriod
	s.dPeriod = dPeriod

	return nil
}

// Compute calculates K, D and J.
func (s *KDJIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	k, d, j := KDJ(data.High, data.Low, data.Close, s.rsvPeriod, s.kPeriod, s.dPeriod)

	return map[types.Column][]float64{
		types.ColumnK: k,
		types.ColumnD: d,
		types.ColumnJ: j,
	}, nil
}
