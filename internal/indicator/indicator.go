// Package indicator computes technical indicator columns over an OHLCV series.
//
// Every calculator is a pure function over float64 arrays that returns arrays of
// the same length as its input. Rows before a window is full, and rows where a
// denominator degenerates to zero, hold the NaN sentinel (see IsNA).
package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

// Indicator is a configurable calculator registered with the engine.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Columns returns the columns Compute writes, in order
	Columns() []types.Column
	// Config replaces the indicator parameters
	Config(params ...any) error
	// Compute calculates the indicator columns for the given data
	Compute(data types.OHLCV) (map[types.Column][]float64, error)
}

// NA is the sentinel stored in undefined rows.
var NA = math.NaN()

// IsNA reports whether v is the undefined sentinel.
func IsNA(v float64) bool {
	return math.IsNaN(v)
}

func newNA(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = NA
	}

	return out
}

// windowSum sums values[end-period+1 .. end]. It returns NaN when any value in the window is NaN.
func windowSum(values []float64, end, period int) float64 {
	sum := 0.0

	for i := end - period + 1; i <= end; i++ {
		if IsNA(values[i]) {
			return NA
		}

		sum += values[i]
	}

	return sum
}

func windowMax(values []float64, end, period int) float64 {
	out := values[end]
	for i := end - period + 1; i < end; i++ {
		out = math.Max(out, values[i])
	}

	return out
}

func windowMin(values []float64, end, period int) float64 {
	out := values[end]
	for i := end - period + 1; i < end; i++ {
		out = math.Min(out, values[i])
	}

	return out
}

// safeDiv divides and returns NaN on a zero denominator.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return NA
	}

	return num / den
}

// parsePeriod reads a positive integer period from a Config parameter. Floats are
// truncated so values decoded from YAML or JSON are accepted.
func parsePeriod(name string, param any) (int, error) {
	var period int

	switch p := param.(type) {
	case int:
		period = p
	case float64:
		period = int(p)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}

func parsePositiveFloat(name string, param any) (float64, error) {
	var value float64

	switch p := param.(type) {
	case float64:
		value = p
	case int:
		value = float64(p)
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected float64", name)
	}

	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Newf(errors.ErrCodeInvalidMultiplier, "%s must be a positive number, got %f", name, value)
	}

	return value, nil
}

func expectParams(name types.IndicatorType, params []any, want int, usage string) error {
	if len(params) != want {
		return errors.Newf(errors.ErrCodeMissingParameter, "%s Config expects %d parameter(s): %s", name, want, usage)
	}

	return nil
}
