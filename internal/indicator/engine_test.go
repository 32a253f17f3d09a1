package indicator_test

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/logger"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/mocks"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"
)

type EngineTestSuite struct {
	suite.Suite
	engine *indicator.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.engine = indicator.NewEngine(indicator.DefaultRegistry(), logger.NewNopLogger())
}

func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if indicator.IsNA(a[i]) != indicator.IsNA(b[i]) {
			return false
		}

		if !indicator.IsNA(a[i]) && a[i] != b[i] {
			return false
		}
	}

	return true
}

func (suite *EngineTestSuite) column(set *indicator.IndicatorSet, col types.Column) []float64 {
	values, err := set.Column(col)
	suite.Require().NoError(err)

	return values
}

func (suite *EngineTestSuite) TestComputeAllProducesEveryColumn() {
	series := mocks.RandomWalk("sh.600000", 120)

	set, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)
	suite.Equal(types.DefaultColumns, set.Columns())
	suite.Equal(120, set.Len())
	suite.Equal("sh.600000", set.Code())

	for _, col := range types.DefaultColumns {
		suite.True(set.Has(col))
		suite.Len(suite.column(set, col), 120, string(col))
	}
}

func (suite *EngineTestSuite) TestWarmUpRows() {
	set, err := suite.engine.ComputeAll(mocks.RandomWalk("sh.600000", 120))
	suite.Require().NoError(err)

	firstDefined := map[types.Column]int{
		types.ColumnMA5: 4, types.ColumnMA10: 9, types.ColumnMA20: 19, types.ColumnMA60: 59,
		types.ColumnMACD: 25, types.ColumnMACDSignal: 33, types.ColumnMACDHist: 33,
		types.ColumnRSI6: 6, types.ColumnRSI12: 12, types.ColumnRSI24: 24,
		types.ColumnBBUpper: 19, types.ColumnBBMiddle: 19, types.ColumnBBLower: 19,
		types.ColumnK: 10, types.ColumnD: 12, types.ColumnJ: 12,
		types.ColumnCCI:    13,
		types.ColumnPlusDI: 14, types.ColumnMinusDI: 14, types.ColumnADX: 27,
		types.ColumnOBV:   0,
		types.ColumnVR:    25,
		types.ColumnWILLR: 13,
	}

	for col, first := range firstDefined {
		values := suite.column(set, col)
		if first > 0 {
			suite.True(indicator.IsNA(values[first-1]), "%s row %d should be NaN", col, first-1)
		}

		suite.False(indicator.IsNA(values[first]), "%s row %d should be defined", col, first)
	}
}

func (suite *EngineTestSuite) TestIdentities() {
	series := mocks.RandomWalk("sh.600000", 200)
	set, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)

	closes := series.Columns().Close
	ma5 := suite.column(set, types.ColumnMA5)
	macd := suite.column(set, types.ColumnMACD)
	signal := suite.column(set, types.ColumnMACDSignal)
	hist := suite.column(set, types.ColumnMACDHist)
	k := suite.column(set, types.ColumnK)
	d := suite.column(set, types.ColumnD)
	j := suite.column(set, types.ColumnJ)
	upper := suite.column(set, types.ColumnBBUpper)
	middle := suite.column(set, types.ColumnBBMiddle)
	lower := suite.column(set, types.ColumnBBLower)

	for i := 0; i < set.Len(); i++ {
		if i >= 4 {
			mean := (closes[i] + closes[i-1] + closes[i-2] + closes[i-3] + closes[i-4]) / 5
			suite.InDelta(mean, ma5[i], 1e-9)
		}

		if !indicator.IsNA(hist[i]) {
			suite.Equal(macd[i]-signal[i], hist[i])
		}

		if !indicator.IsNA(j[i]) {
			suite.Equal(3*k[i]-2*d[i], j[i])
		}

		if !indicator.IsNA(middle[i]) {
			suite.LessOrEqual(lower[i], middle[i])
			suite.LessOrEqual(middle[i], upper[i])
		}

		for _, col := range []types.Column{types.ColumnRSI6, types.ColumnRSI12, types.ColumnRSI24} {
			v, err := set.Value(col, i)
			suite.Require().NoError(err)

			if !indicator.IsNA(v) {
				suite.GreaterOrEqual(v, 0.0)
				suite.LessOrEqual(v, 100.0)
			}
		}

		willr, err := set.Value(types.ColumnWILLR, i)
		suite.Require().NoError(err)

		if !indicator.IsNA(willr) {
			suite.GreaterOrEqual(willr, -100.0)
			suite.LessOrEqual(willr, 0.0)
		}
	}
}

func (suite *EngineTestSuite) TestIdempotent() {
	series := mocks.RandomWalk("sh.600000", 150)

	first, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)

	second, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)

	for _, col := range first.Columns() {
		suite.True(sameFloats(suite.column(first, col), suite.column(second, col)), string(col))
	}
}

func (suite *EngineTestSuite) TestDoesNotMutateInput() {
	series := mocks.RandomWalk("sh.600000", 80)
	before := series.Clone()

	set, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)
	suite.Equal(before, series)

	// the set keeps its own copy
	series.Bars[0].Close = 999
	suite.NotEqual(999.0, set.Series().Bars[0].Close)
}

func (suite *EngineTestSuite) TestAscendingSeries() {
	set, err := suite.engine.ComputeAll(mocks.Ascending("sh.600000", 100, 100))
	suite.Require().NoError(err)

	ma5, err := set.Value(types.ColumnMA5, 99)
	suite.Require().NoError(err)
	suite.InDelta(197.0, ma5, 1e-9)

	for _, col := range []types.Column{types.ColumnRSI6, types.ColumnRSI12, types.ColumnRSI24} {
		rsi, err := set.Value(col, -1)
		suite.Require().NoError(err)
		suite.Equal(100.0, rsi)
	}

	// every close is up, so there is no down volume
	vr, err := set.Value(types.ColumnVR, -1)
	suite.Require().NoError(err)
	suite.True(indicator.IsNA(vr))

	k := suite.column(set, types.ColumnK)
	d := suite.column(set, types.ColumnD)

	for i := 13; i < set.Len(); i++ {
		crossedUp := k[i] > d[i] && k[i-1] <= d[i-1]
		crossedDown := k[i] < d[i] && k[i-1] >= d[i-1]
		suite.False(crossedUp || crossedDown, "unexpected KDJ cross at %d", i)
	}
}

func (suite *EngineTestSuite) TestSpikeRowStaysFinite() {
	series := mocks.RandomWalk("sh.600000", 60)
	last := &series.Bars[len(series.Bars)-1]
	last.High = last.High * 3
	last.Close = last.High
	last.Volume *= 10

	set, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)

	cci, err := set.Value(types.ColumnCCI, -1)
	suite.Require().NoError(err)
	suite.False(math.IsNaN(cci) || math.IsInf(cci, 0))

	willr, err := set.Value(types.ColumnWILLR, -1)
	suite.Require().NoError(err)
	suite.False(math.IsNaN(willr) || math.IsInf(willr, 0))
	suite.GreaterOrEqual(willr, -100.0)
	suite.LessOrEqual(willr, 0.0)
}

func (suite *EngineTestSuite) TestSpikeDownThenRecovery() {
	series := mocks.RandomWalk("sh.600000", 60)
	spike := &series.Bars[30]
	spike.Open = 0.02
	spike.High = 0.02
	spike.Low = 0.001
	spike.Close = 0.005
	suite.Require().NoError(series.Validate())

	set, err := suite.engine.ComputeAll(series)
	suite.Require().NoError(err)

	cci := suite.column(set, types.ColumnCCI)
	willr := suite.column(set, types.ColumnWILLR)

	for i := range cci {
		if !indicator.IsNA(cci[i]) {
			suite.False(math.IsInf(cci[i], 0), "CCI[%d] is infinite", i)
		}

		if !indicator.IsNA(willr[i]) {
			suite.False(math.IsInf(willr[i], 0), "WILLR[%d] is infinite", i)
			suite.GreaterOrEqual(willr[i], -100.0, "WILLR[%d]", i)
			suite.LessOrEqual(willr[i], 0.0, "WILLR[%d]", i)
		}
	}

	// the spike row and the recovery rows after it are all defined
	for i := 30; i < len(cci); i++ {
		suite.False(indicator.IsNA(cci[i]), "CCI[%d]", i)
		suite.False(indicator.IsNA(willr[i]), "WILLR[%d]", i)
	}
}

func (suite *EngineTestSuite) TestShortSeries() {
	set, err := suite.engine.ComputeAll(mocks.RandomWalk("sh.600000", 1))
	suite.Require().NoError(err)
	suite.Equal(1, set.Len())

	obv, err := set.Value(types.ColumnOBV, 0)
	suite.Require().NoError(err)
	suite.False(indicator.IsNA(obv))

	ma60, err := set.Value(types.ColumnMA60, 0)
	suite.Require().NoError(err)
	suite.True(indicator.IsNA(ma60))
}

func (suite *EngineTestSuite) TestInvalidSeries() {
	_, err := suite.engine.ComputeAll(types.TimeSeries{Code: "sh.600000"})
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))

	series := mocks.RandomWalk("sh.600000", 10)
	series.Bars[5].Date = series.Bars[4].Date
	_, err = suite.engine.ComputeAll(series)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSeries))
}

func (suite *EngineTestSuite) TestConcurrentComputeAll() {
	all := mocks.NewDataGenerator(7).GenerateMultiCode([]string{"sh.600000", "sz.000063", "sh.601398", "sz.000001"}, mocks.DefaultConfig())

	var wg sync.WaitGroup

	results := make([]*indicator.IndicatorSet, len(all))
	errs := make([]error, len(all))

	for i, series := range all {
		wg.Add(1)

		go func(i int, series types.TimeSeries) {
			defer wg.Done()
			results[i], errs[i] = suite.engine.ComputeAll(series)
		}(i, series)
	}

	wg.Wait()

	for i, series := range all {
		suite.Require().NoError(errs[i])
		suite.Equal(series.Code, results[i].Code())

		sequential, err := suite.engine.ComputeAll(series)
		suite.Require().NoError(err)
		suite.True(sameFloats(suite.column(sequential, types.ColumnADX), suite.column(results[i], types.ColumnADX)))
	}
}

func (suite *EngineTestSuite) TestIndicatorErrorIsWrapped() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	broken := mocks.NewMockIndicator(ctrl)
	broken.EXPECT().Name().Return(types.IndicatorType("broken")).AnyTimes()
	broken.EXPECT().Columns().Return([]types.Column{"BROKEN"}).AnyTimes()
	broken.EXPECT().Compute(gomock.Any()).Return(nil, errors.New(errors.ErrCodeUnknown, "boom"))

	registry := indicator.NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(broken))

	_, err := indicator.NewEngine(registry, nil).ComputeAll(mocks.RandomWalk("sh.600000", 10))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.Contains(err.Error(), "boom")
}

func (suite *EngineTestSuite) TestIndicatorMissingColumn() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	partial := mocks.NewMockIndicator(ctrl)
	partial.EXPECT().Name().Return(types.IndicatorType("partial")).AnyTimes()
	partial.EXPECT().Columns().Return([]types.Column{"A", "B"}).AnyTimes()
	partial.EXPECT().Compute(gomock.Any()).Return(map[types.Column][]float64{"A": make([]float64, 10)}, nil)

	registry := indicator.NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(partial))

	_, err := indicator.NewEngine(registry, nil).ComputeAll(mocks.RandomWalk("sh.600000", 10))
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
}

func (suite *EngineTestSuite) TestIndicatorSetAccessors() {
	set, err := suite.engine.ComputeAll(mocks.RandomWalk("sh.600000", 40))
	suite.Require().NoError(err)

	suite.Run("column copies", func() {
		values := suite.column(set, types.ColumnOBV)
		values[0] = -1
		suite.NotEqual(-1.0, suite.column(set, types.ColumnOBV)[0])
	})

	suite.Run("missing column", func() {
		_, err := set.Column("NOPE")
		suite.True(errors.IsMissingColumnError(err))
		suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))

		_, err = set.Value("NOPE", 0)
		suite.True(errors.IsMissingColumnError(err))
	})

	suite.Run("row bounds", func() {
		_, err := set.Value(types.ColumnOBV, 40)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

		_, err = set.Value(types.ColumnOBV, -41)
		suite.Error(err)

		first, err := set.Value(types.ColumnOBV, -40)
		suite.NoError(err)
		suite.Equal(suite.column(set, types.ColumnOBV)[0], first)
	})

	suite.Run("columns copy", func() {
		cols := set.Columns()
		cols[0] = "X"
		suite.Equal(types.ColumnMA5, set.Columns()[0])
	})
}

func (suite *EngineTestSuite) TestExport() {
	set, err := suite.engine.ComputeAll(mocks.RandomWalk("sh.600000", 30))
	suite.Require().NoError(err)

	rows := set.Rows(5)
	suite.Len(rows, 5)
	suite.Equal(set.Series().Bars[25].Date, rows[0].Date)
	suite.Nil(rows[0].Indicators[string(types.ColumnMA60)])
	suite.NotNil(rows[4].Indicators[string(types.ColumnMA5)])
	suite.Len(set.Rows(0), 30)
	suite.Len(set.Rows(100), 30)

	data, err := json.Marshal(set)
	suite.Require().NoError(err)

	var decoded struct {
		Code string `json:"code"`
		Rows []struct {
			Date       time.Time           `json:"date"`
			Indicators map[string]*float64 `json:"indicators"`
		} `json:"rows"`
	}

	suite.Require().NoError(json.Unmarshal(data, &decoded))
	suite.Equal("sh.600000", decoded.Code)
	suite.Len(decoded.Rows, 30)
	suite.Nil(decoded.Rows[0].Indicators["MA5"])
	suite.NotNil(decoded.Rows[29].Indicators["MA5"])

	out, err := set.ToYAML()
	suite.Require().NoError(err)

	var yamlDecoded map[string]any
	suite.Require().NoError(yaml.Unmarshal(out, &yamlDecoded))
	suite.Equal("sh.600000", yamlDecoded["code"])
}
