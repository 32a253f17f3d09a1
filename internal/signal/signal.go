// Package signal classifies the latest rows of an IndicatorSet into categorical
// trading signals.
package signal

import (
	"math"

	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// Config holds the signal thresholds.
type Config struct {
	// RSIPeriod selects the RSI column the RSI signal reads; it must be a computed period
	RSIPeriod     int     `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI period,description=RSI column used for the RSI signal,default=12" validate:"gte=2"`
	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought" jsonschema:"title=RSI overbought,default=70" validate:"gt=0,lte=100,gtfield=RSIOversold"`
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold" jsonschema:"title=RSI oversold,default=30" validate:"gte=0,lt=100"`
	CCIOverbought float64 `yaml:"cci_overbought" json:"cci_overbought" jsonschema:"title=CCI overbought,default=100" validate:"gtfield=CCIOversold"`
	CCIOversold   float64 `yaml:"cci_oversold" json:"cci_oversold" jsonschema:"title=CCI oversold,default=-100"`
	ADXTrend      float64 `yaml:"adx_trend" json:"adx_trend" jsonschema:"title=ADX trend threshold,default=25" validate:"gte=0,lte=100"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:     12,
		RSIOverbought: 70,
		RSIOversold:   30,
		CCIOverbought: 100,
		CCIOversold:   -100,
		ADXTrend:      25,
	}
}

// Validate checks that the thresholds are finite and ordered.
func (c Config) Validate() error {
	if c.RSIPeriod < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "rsi period must be at least 2, got %d", c.RSIPeriod)
	}

	for _, v := range []float64{c.RSIOverbought, c.RSIOversold, c.CCIOverbought, c.CCIOversold, c.ADXTrend} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidThreshold, "signal thresholds must be finite")
		}
	}

	switch {
	case c.RSIOversold < 0 || c.RSIOverbought > 100 || c.RSIOversold >= c.RSIOverbought:
		return errors.Newf(errors.ErrCodeInvalidThreshold,
			"rsi thresholds need 0 <= oversold < overbought <= 100, got %g and %g", c.RSIOversold, c.RSIOverbought)
	case c.CCIOversold >= c.CCIOverbought:
		return errors.Newf(errors.ErrCodeInvalidThreshold,
			"cci oversold %g must be below overbought %g", c.CCIOversold, c.CCIOverbought)
	case c.ADXTrend < 0 || c.ADXTrend > 100:
		return errors.Newf(errors.ErrCodeInvalidThreshold, "adx trend threshold %g is outside [0, 100]", c.ADXTrend)
	}

	return nil
}

// MinRows is the number of rows Derive needs for crossover signals.
const MinRows = 2

// Derive classifies every signal from the last one or two rows of set.
//
// Thresholds that fail Config.Validate are rejected first. A set with fewer than
// MinRows rows fails with *errors.InsufficientDataError. A missing indicator
// column fails with *errors.MissingColumnError. A signal whose inputs are still
// undefined on the last rows gets SignalLabelInsufficientData.
func Derive(set *indicator.IndicatorSet, cfg Config) (types.SignalSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if set.Len() < MinRows {
		return nil, errors.NewInsufficientDataErrorf(MinRows, set.Len(), set.Code(),
			"signal derivation needs at least %d rows, got %d", MinRows, set.Len())
	}

	classifiers := []struct {
		name     types.SignalName
		classify func() (types.SignalLabel, error)
	}{
		{types.SignalMACD, func() (types.SignalLabel, error) { return MACD(set) }},
		{types.SignalRSI, func() (types.SignalLabel, error) { return RSI(set, cfg) }},
		{types.SignalBB, func() (types.SignalLabel, error) { return Bollinger(set) }},
		{types.SignalKDJ, func() (types.SignalLabel, error) { return KDJCross(set) }},
		{types.SignalCCI, func() (types.SignalLabel, error) { return CCI(set, cfg) }},
		{types.SignalDMI, func() (types.SignalLabel, error) { return DMI(set, cfg) }},
	}

	summary := make(types.SignalSummary, len(classifiers))

	for _, c := range classifiers {
		label, err := c.classify()
		if err != nil {
			if errors.IsInsufficientDataError(err) {
				summary[c.name] = types.SignalLabelInsufficientData

				continue
			}

			return nil, err
		}

		summary[c.name] = label
	}

	return summary, nil
}

// MACD returns buy when the MACD line is above its signal line and sell otherwise.
// There is no neutral band: equal lines are a sell.
func MACD(set *indicator.IndicatorSet) (types.SignalLabel, error) {
	v, err := latest(set, types.ColumnMACD, types.ColumnMACDSignal)
	if err != nil {
		return "", err
	}

	if v[0] > v[1] {
		return types.SignalLabelBuy, nil
	}

	return types.SignalLabelSell, nil
}

// RSI classifies the configured RSI column: above the overbought threshold is
// overbought, below the oversold threshold is oversold.
func RSI(set *indicator.IndicatorSet, cfg Config) (types.SignalLabel, error) {
	v, err := latest(set, indicator.RSIColumn(cfg.RSIPeriod))
	if err != nil {
		return "", err
	}

	return band(v[0], cfg.RSIOverbought, cfg.RSIOversold), nil
}

// Bollinger compares the latest close with the bands.
func Bollinger(set *indicator.IndicatorSet) (types.SignalLabel, error) {
	v, err := latest(set, types.ColumnBBUpper, types.ColumnBBLower)
	if err != nil {
		return "", err
	}

	series := set.Series()
	if series.Len() == 0 {
		return "", errors.NewInsufficientDataError(1, 0, set.Code(), "no rows to compare with the bands")
	}

	close := series.Bars[series.Len()-1].Close

	switch {
	case close > v[0]:
		return types.SignalLabelOverbought, nil
	case close < v[1]:
		return types.SignalLabelOversold, nil
	default:
		return types.SignalLabelNeutral, nil
	}
}

// KDJCross detects a K/D crossover between the last two rows.
func KDJCross(set *indicator.IndicatorSet) (types.SignalLabel, error) {
	k, err := trailing(set, types.ColumnK, 2)
	if err != nil {
		return "", err
	}

	d, err := trailing(set, types.ColumnD, 2)
	if err != nil {
		return "", err
	}

	switch {
	case k[1] > d[1] && k[0] <= d[0]:
		return types.SignalLabelGoldenCross, nil
	case k[1] < d[1] && k[0] >= d[0]:
		return types.SignalLabelDeadCross, nil
	default:
		return types.SignalLabelNeutral, nil
	}
}

// CCI classifies the latest CCI value against the configured thresholds.
func CCI(set *indicator.IndicatorSet, cfg Config) (types.SignalLabel, error) {
	v, err := latest(set, types.ColumnCCI)
	if err != nil {
		return "", err
	}

	return band(v[0], cfg.CCIOverbought, cfg.CCIOversold), nil
}

// DMI reports a strong trend when ADX is above the trend threshold, in the
// direction of the dominant directional indicator.
func DMI(set *indicator.IndicatorSet, cfg Config) (types.SignalLabel, error) {
	v, err := latest(set, types.ColumnPlusDI, types.ColumnMinusDI, types.ColumnADX)
	if err != nil {
		return "", err
	}

	plus, minus, adx := v[0], v[1], v[2]

	switch {
	case plus > minus && adx > cfg.ADXTrend:
		return types.SignalLabelStrongUptrend, nil
	case minus > plus && adx > cfg.ADXTrend:
		return types.SignalLabelStrongDowntrend, nil
	default:
		return types.SignalLabelConsolidating, nil
	}
}

func band(v, upper, lower float64) types.SignalLabel {
	switch {
	case v > upper:
		return types.SignalLabelOverbought
	case v < lower:
		return types.SignalLabelOversold
	default:
		return types.SignalLabelNeutral
	}
}

// latest returns the last value of each column.
func latest(set *indicator.IndicatorSet, cols ...types.Column) ([]float64, error) {
	out := make([]float64, len(cols))

	for i, col := range cols {
		values, err := trailing(set, col, 1)
		if err != nil {
			return nil, err
		}

		out[i] = values[0]
	}

	return out, nil
}

// trailing returns the last n values of a column, oldest first. Undefined values
// fail with *errors.InsufficientDataError.
func trailing(set *indicator.IndicatorSet, col types.Column, n int) ([]float64, error) {
	if !set.Has(col) {
		return nil, errors.NewMissingIndicatorError(string(col))
	}

	if set.Len() < n {
		return nil, errors.NewInsufficientDataErrorf(n, set.Len(), string(col),
			"%s needs %d rows, got %d", col, n, set.Len())
	}

	out := make([]float64, n)

	for i := 0; i < n; i++ {
		v, err := set.Value(col, i-n)
		if err != nil {
			return nil, err
		}

		if indicator.IsNA(v) {
			return nil, errors.NewInsufficientDataErrorf(n, i, string(col),
				"%s is undefined on the last %d rows", col, n)
		}

		out[i] = v
	}

	return out, nil
}
