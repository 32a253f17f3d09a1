package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-analyst/internal/logger"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"go.uber.org/zap"
)

// Engine runs every registered indicator over a series. The registry must not be
// changed while ComputeAll is running; ComputeAll itself may run concurrently for
// different series.
type Engine struct {
	registry IndicatorRegistry
	log      *logger.Logger
}

// NewEngine creates an engine over the given registry. A nil registry uses
// DefaultRegistry and a nil logger discards output.
func NewEngine(registry IndicatorRegistry, log *logger.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{registry: registry, log: log}
}

// Registry returns the engine's indicator registry.
func (e *Engine) Registry() IndicatorRegistry {
	return e.registry
}

// ComputeAll validates the series and computes every registered indicator in
// registry order. The caller's series is never modified.
func (e *Engine) ComputeAll(series types.TimeSeries) (*IndicatorSet, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	b := newBuilder(series)
	data := b.series.Columns()

	for _, name := range e.registry.ListIndicators() {
		ind, err := e.registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		out, err := ind.Compute(data)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to compute %s", name)
		}

		for _, col := range ind.Columns() {
			values, ok := out[col]
			if !ok {
				return nil, errors.Newf(errors.ErrCodeIndicatorCalculation, "%s did not produce column %s", name, col)
			}

			if err := b.add(col, values); err != nil {
				return nil, err
			}
		}
	}

	set := b.build()

	e.log.Debug("Computed indicators",
		zap.String("code", series.Code),
		zap.Int("rows", set.Len()),
		zap.Int("columns", len(set.order)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return set, nil
}
