package indicator

import (
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// MACD returns the MACD line (fast EMA minus slow EMA), its signal EMA and the
// histogram. With 12/26/9 the line is defined from row 25 and signal and
// histogram from row 33.
func MACD(close []float64, fast, slow, signal int) (line, signalLine, hist []float64) {
	n := len(close)
	fastEMA := EMA(close, fast)
	slowEMA := EMA(close, slow)

	line = newNA(n)
	for i := range close {
		if !IsNA(fastEMA[i]) && !IsNA(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	signalLine = EMA(line, signal)

	hist = newNA(n)
	for i := range close {
		if !IsNA(line[i]) && !IsNA(signalLine[i]) {
			hist[i] = line[i] - signalLine[i]
		}
	}

	return line, signalLine, hist
}

// MACDIndicator writes MACD, MACD_SIGNAL and MACD_HIST.
type MACDIndicator struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACDIndicator{
		fastPeriod:   12,
		slowPeriod:   26,
		signalPeriod: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACDIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Columns returns the MACD columns.
func (m *MACDIndicator) Columns() []types.Column {
	return []types.Column{types.ColumnMACD, types.ColumnMACDSignal, types.ColumnMACDHist}
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACDIndicator) Config(params ...any) error {
	if err := expectParams(m.Name(), params, 3, "fastPeriod (int), slowPeriod (int), signalPeriod (int)"); err != nil {
		return err
	}

	fast, err := parsePeriod("fastPeriod", params[0])
	if err != nil {
		return err
	}

	slow, err := parsePeriod("slowPeriod", params[1])
	if err != nil {
		return err
	}

	signal, err := parsePeriod("signalPeriod", params[2])
	if err != nil {
		return err
	}

	if fast >= slow {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "fastPeriod (%d) must be less than slowPeriod (%d)", fast, slow)
	}

	m.fastPeriod = fast
	m.slowPeriod = slow
	m.signalPeriod = signal

	return nil
}

// Compute calculates the MACD columns.
func (m *MACDIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	line, signal, hist := MACD(data.Close, m.fastPeriod, m.slowPeriod, m.signalPeriod)

	return map[types.Column][]float64{
		types.ColumnMACD:       line,
		types.ColumnMACDSignal: signal,
		types.ColumnMACDHist:   hist,
	}, nil
}
