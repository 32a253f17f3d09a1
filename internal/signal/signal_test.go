package signal_test

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/signal"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/mocks"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/stretchr/testify/suite"
)

var nan = math.NaN()

// fixedIndicator writes preset columns, used to drive the classifiers with exact values.
type fixedIndicator struct {
	columns map[types.Column][]float64
	order   []types.Column
}

func (f *fixedIndicator) Name() types.IndicatorType { return "fixed" }

func (f *fixedIndicator) Columns() []types.Column { return f.order }

func (f *fixedIndicator) Config(params ...any) error { return nil }

func (f *fixedIndicator) Compute(data types.OHLCV) (map[types.Column][]float64, error) {
	return f.columns, nil
}

type SignalTestSuite struct {
	suite.Suite
	cfg signal.Config
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) SetupTest() {
	suite.cfg = signal.DefaultConfig()
}

// buildSet computes a set over an ascending series of len(values) rows carrying the given columns.
func (suite *SignalTestSuite) buildSet(closes []float64, columns map[types.Column][]float64) *indicator.IndicatorSet {
	series := mocks.Ascending("sh.600000", len(closes), 10)
	for i, c := range closes {
		series.Bars[i].Open = c
		series.Bars[i].Close = c
		series.Bars[i].High = c + 1
		series.Bars[i].Low = c - 1
	}

	fixed := &fixedIndicator{columns: columns}
	for col := range columns {
		fixed.order = append(fixed.order, col)
	}

	registry := indicator.NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(fixed))

	set, err := indicator.NewEngine(registry, nil).ComputeAll(series)
	suite.Require().NoError(err)

	return set
}

func (suite *SignalTestSuite) TestMACD() {
	tests := []struct {
		name   string
		line   float64
		signal float64
		want   types.SignalLabel
	}{
		{name: "line above signal", line: 0.5, signal: 0.2, want: types.SignalLabelBuy},
		{name: "line below signal", line: -0.1, signal: 0.2, want: types.SignalLabelSell},
		// no neutral band: equal lines and a tiny positive gap flip between sell and buy
		{name: "equal lines are a sell", line: 0.2, signal: 0.2, want: types.SignalLabelSell},
		{name: "tiny gap is a buy", line: 0.2 + 1e-12, signal: 0.2, want: types.SignalLabelBuy},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
				types.ColumnMACD:       {nan, tc.line},
				types.ColumnMACDSignal: {nan, tc.signal},
			})

			label, err := signal.MACD(set)
			suite.NoError(err)
			suite.Equal(tc.want, label)
		})
	}
}

func (suite *SignalTestSuite) TestMACDUndefined() {
	set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
		types.ColumnMACD:       {nan, nan},
		types.ColumnMACDSignal: {nan, nan},
	})

	_, err := signal.MACD(set)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *SignalTestSuite) TestRSI() {
	tests := []struct {
		value float64
		want  types.SignalLabel
	}{
		{75, types.SignalLabelOverbought},
		{70, types.SignalLabelNeutral},
		{50, types.SignalLabelNeutral},
		{30, types.SignalLabelNeutral},
		{29.9, types.SignalLabelOversold},
	}

	for _, tc := range tests {
		set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
			types.ColumnRSI12: {nan, tc.value},
		})

		label, err := signal.RSI(set, suite.cfg)
		suite.NoError(err)
		suite.Equal(tc.want, label, "rsi %f", tc.value)
	}
}

func (suite *SignalTestSuite) TestRSIConfiguredPeriod() {
	set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
		types.ColumnRSI6:  {nan, 90},
		types.ColumnRSI12: {nan, 50},
	})

	cfg := suite.cfg
	cfg.RSIPeriod = 6

	label, err := signal.RSI(set, cfg)
	suite.NoError(err)
	suite.Equal(types.SignalLabelOverbought, label)

	cfg.RSIPeriod = 14
	_, err = signal.RSI(set, cfg)
	suite.True(errors.IsMissingColumnError(err))
	suite.Contains(err.Error(), "RSI14")
}

func (suite *SignalTestSuite) TestBollinger() {
	tests := []struct {
		name  string
		close float64
		want  types.SignalLabel
	}{
		{name: "above upper", close: 13, want: types.SignalLabelOverbought},
		{name: "below lower", close: 7, want: types.SignalLabelOversold},
		{name: "inside", close: 10, want: types.SignalLabelNeutral},
		{name: "on the upper band", close: 12, want: types.SignalLabelNeutral},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			set := suite.buildSet([]float64{10, tc.close}, map[types.Column][]float64{
				types.ColumnBBUpper: {nan, 12},
				types.ColumnBBLower: {nan, 8},
			})

			label, err := signal.Bollinger(set)
			suite.NoError(err)
			suite.Equal(tc.want, label)
		})
	}
}

func (suite *SignalTestSuite) TestKDJCross() {
	tests := []struct {
		name string
		k    []float64
		d    []float64
		want types.SignalLabel
	}{
		{name: "golden cross", k: []float64{40, 60}, d: []float64{50, 50}, want: types.SignalLabelGoldenCross},
		{name: "golden cross from touch", k: []float64{50, 60}, d: []float64{50, 50}, want: types.SignalLabelGoldenCross},
		{name: "dead cross", k: []float64{60, 40}, d: []float64{50, 50}, want: types.SignalLabelDeadCross},
		{name: "dead cross from touch", k: []float64{50, 40}, d: []float64{50, 50}, want: types.SignalLabelDeadCross},
		{name: "stays above", k: []float64{60, 70}, d: []float64{50, 50}, want: types.SignalLabelNeutral},
		{name: "stays below", k: []float64{30, 20}, d: []float64{50, 50}, want: types.SignalLabelNeutral},
		{name: "equal lines", k: []float64{50, 50}, d: []float64{50, 50}, want: types.SignalLabelNeutral},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
				types.ColumnK: tc.k,
				types.ColumnD: tc.d,
			})

			label, err := signal.KDJCross(set)
			suite.NoError(err)
			suite.Equal(tc.want, label)
		})
	}
}

func (suite *SignalTestSuite) TestKDJCrossNeedsTwoDefinedRows() {
	set := suite.buildSet([]float64{10, 11, 12}, map[types.Column][]float64{
		types.ColumnK: {nan, nan, 60},
		types.ColumnD: {nan, 50, 50},
	})

	_, err := signal.KDJCross(set)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *SignalTestSuite) TestCCI() {
	for value, want := range map[float64]types.SignalLabel{
		150:  types.SignalLabelOverbought,
		100:  types.SignalLabelNeutral,
		0:    types.SignalLabelNeutral,
		-100: types.SignalLabelNeutral,
		-101: types.SignalLabelOversold,
	} {
		set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
			types.ColumnCCI: {nan, value},
		})

		label, err := signal.CCI(set, suite.cfg)
		suite.NoError(err)
		suite.Equal(want, label, "cci %f", value)
	}
}

func (suite *SignalTestSuite) TestDMI() {
	tests := []struct {
		name             string
		plus, minus, adx float64
		want             types.SignalLabel
	}{
		{name: "strong uptrend", plus: 30, minus: 10, adx: 30, want: types.SignalLabelStrongUptrend},
		{name: "strong downtrend", plus: 10, minus: 30, adx: 30, want: types.SignalLabelStrongDowntrend},
		{name: "weak trend", plus: 30, minus: 10, adx: 20, want: types.SignalLabelConsolidating},
		{name: "adx on threshold", plus: 30, minus: 10, adx: 25, want: types.SignalLabelConsolidating},
		{name: "balanced", plus: 20, minus: 20, adx: 40, want: types.SignalLabelConsolidating},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
				types.ColumnPlusDI:  {nan, tc.plus},
				types.ColumnMinusDI: {nan, tc.minus},
				types.ColumnADX:     {nan, tc.adx},
			})

			label, err := signal.DMI(set, suite.cfg)
			suite.NoError(err)
			suite.Equal(tc.want, label)
		})
	}
}

func (suite *SignalTestSuite) TestDeriveMissingColumn() {
	set := suite.buildSet([]float64{10, 11}, map[types.Column][]float64{
		types.ColumnMACD:       {nan, 1},
		types.ColumnMACDSignal: {nan, 0},
	})

	_, err := signal.Derive(set, suite.cfg)
	suite.Require().Error(err)
	suite.True(errors.IsMissingColumnError(err))
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
	suite.Contains(err.Error(), "RSI12")
}

func (suite *SignalTestSuite) TestConfigValidate() {
	suite.NoError(signal.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*signal.Config)
		code   errors.ErrorCode
	}{
		{"rsi period", func(c *signal.Config) { c.RSIPeriod = 1 }, errors.ErrCodeInvalidPeriod},
		{"rsi inverted", func(c *signal.Config) { c.RSIOversold, c.RSIOverbought = 70, 30 }, errors.ErrCodeInvalidThreshold},
		{"rsi equal", func(c *signal.Config) { c.RSIOversold = c.RSIOverbought }, errors.ErrCodeInvalidThreshold},
		{"rsi above 100", func(c *signal.Config) { c.RSIOverbought = 120 }, errors.ErrCodeInvalidThreshold},
		{"cci inverted", func(c *signal.Config) { c.CCIOversold = 200 }, errors.ErrCodeInvalidThreshold},
		{"adx negative", func(c *signal.Config) { c.ADXTrend = -1 }, errors.ErrCodeInvalidThreshold},
		{"nan", func(c *signal.Config) { c.CCIOverbought = nan }, errors.ErrCodeInvalidThreshold},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			cfg := signal.DefaultConfig()
			tc.mutate(&cfg)
			suite.True(errors.HasCode(cfg.Validate(), tc.code))
		})
	}
}

func (suite *SignalTestSuite) TestDeriveRejectsInvalidThresholds() {
	set, err := indicator.NewEngine(nil, nil).ComputeAll(mocks.RandomWalk("sh.600000", 40))
	suite.Require().NoError(err)

	cfg := suite.cfg
	cfg.RSIOversold = 80

	summary, err := signal.Derive(set, cfg)
	suite.Nil(summary)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidThreshold), "got %v", err)
}

func (suite *SignalTestSuite) TestDeriveTwoRows() {
	engine := indicator.NewEngine(nil, nil)

	set, err := engine.ComputeAll(mocks.RandomWalk("sh.600000", 1))
	suite.Require().NoError(err)

	_, err = signal.Derive(set, suite.cfg)
	suite.Require().Error(err)

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(2, insufficient.Required)
	suite.Equal(1, insufficient.Actual)

	// two rows: derivation runs, every signal is still warming up
	set, err = engine.ComputeAll(mocks.RandomWalk("sh.600000", 2))
	suite.Require().NoError(err)

	summary, err := signal.Derive(set, suite.cfg)
	suite.Require().NoError(err)
	suite.Len(summary, len(types.AllSignals))

	for _, name := range types.AllSignals {
		suite.Equal(types.SignalLabelInsufficientData, summary[name], string(name))
	}

	_, err = signal.KDJCross(set)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *SignalTestSuite) TestDeriveAscendingSeries() {
	set, err := indicator.NewEngine(nil, nil).ComputeAll(mocks.Ascending("sh.600000", 100, 100))
	suite.Require().NoError(err)

	summary, err := signal.Derive(set, suite.cfg)
	suite.Require().NoError(err)

	// a linear trend gives a flat MACD equal to its signal line, so either label is possible
	suite.Contains([]types.SignalLabel{types.SignalLabelBuy, types.SignalLabelSell}, summary[types.SignalMACD])
	suite.Equal(types.SignalLabelOverbought, summary[types.SignalRSI])
	suite.Equal(types.SignalLabelNeutral, summary[types.SignalKDJ])
	suite.Equal(types.SignalLabelStrongUptrend, summary[types.SignalDMI])

	for _, name := range types.AllSignals {
		suite.True(summary.Get(name).IsSome(), string(name))
	}
}

func (suite *SignalTestSuite) TestDeriveRandomWalk() {
	set, err := indicator.NewEngine(nil, nil).ComputeAll(mocks.RandomWalk("sh.600000", 250))
	suite.Require().NoError(err)

	summary, err := signal.Derive(set, suite.cfg)
	suite.Require().NoError(err)
	suite.Len(summary, len(types.AllSignals))

	for name, label := range summary {
		suite.True(label.Valid(), string(name))
		suite.NotEqual(types.SignalLabelInsufficientData, label, string(name))
	}
}
