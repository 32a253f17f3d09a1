package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/logger"
	"github.com/rxtech-lab/argo-analyst/internal/signal"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultReportRows is the number of trailing rows a Report carries.
const DefaultReportRows = 5

// Analyst wires the collaborators into the analysis pipeline. It is safe for
// concurrent use as long as the collaborators are.
type Analyst struct {
	fetcher      SeriesFetcher
	engine       *indicator.Engine
	signals      signal.Config
	fundamentals optional.Option[FundamentalsSummarizer]
	narrative    optional.Option[NarrativeGenerator]
	start        optional.Option[time.Time]
	end          optional.Option[time.Time]
	rows         int
	logger       *logger.Logger
	now          func() time.Time
}

// Option configures an Analyst.
type Option func(*Analyst)

// WithFundamentals attaches a fundamentals summary to every report.
func WithFundamentals(s FundamentalsSummarizer) Option {
	return func(a *Analyst) {
		a.fundamentals = optional.Some(s)
	}
}

// WithNarrative attaches a generated narrative to every report.
func WithNarrative(g NarrativeGenerator) Option {
	return func(a *Analyst) {
		a.narrative = optional.Some(g)
	}
}

// WithDateRange limits the fetched history.
func WithDateRange(start, end optional.Option[time.Time]) Option {
	return func(a *Analyst) {
		a.start = start
		a.end = end
	}
}

// WithReportRows sets how many trailing rows a report carries. n <= 0 keeps all rows.
func WithReportRows(n int) Option {
	return func(a *Analyst) {
		a.rows = n
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(a *Analyst) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyst) {
		a.now = now
	}
}

// NewAnalyst creates an Analyst. A nil engine runs every indicator with its defaults.
func NewAnalyst(fetcher SeriesFetcher, engine *indicator.Engine, signals signal.Config, opts ...Option) *Analyst {
	if engine == nil {
		engine = indicator.NewEngine(nil, nil)
	}

	a := &Analyst{
		fetcher:      fetcher,
		engine:       engine,
		signals:      signals,
		fundamentals: optional.None[FundamentalsSummarizer](),
		narrative:    optional.None[NarrativeGenerator](),
		start:        optional.None[time.Time](),
		end:          optional.None[time.Time](),
		rows:         DefaultReportRows,
		logger:       logger.NewNopLogger(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze produces the report of one stock. Any collaborator failure aborts the
// analysis with an error naming the failing step.
func (a *Analyst) Analyze(ctx context.Context, code, query string) (*Report, error) {
	code, err := types.NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	started := time.Now()
	log := a.logger.With(zap.String("request_id", id), zap.String("code", code))

	log.Debug("Fetching series")

	series, err := a.fetcher.FetchSeries(ctx, code, a.start, a.end)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFetchFailed, err, "failed to fetch series of %s", code)
	}

	set, err := a.engine.ComputeAll(series)
	if err != nil {
		return nil, err
	}

	summary, err := signal.Derive(set, a.signals)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSignalDerivation, err, "failed to derive signals of %s", code)
	}

	report := &Report{
		ID:          id,
		Code:        code,
		Query:       query,
		GeneratedAt: a.now(),
		Bars:        set.Len(),
		Rows:        set.Rows(a.rows),
		Signals:     summary,
		Set:         set,
	}

	if a.fundamentals.IsSome() {
		text, err := a.fundamentals.Unwrap().Summarize(ctx, code)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeFundamentalsFailed, err, "failed to summarize fundamentals of %s", code)
		}

		report.Fundamentals = text
	}

	if a.narrative.IsSome() {
		req := NarrativeRequest{
			RequestID:    id,
			Code:         code,
			Query:        query,
			Latest:       set.Rows(1)[0],
			Signals:      summary,
			Fundamentals: report.Fundamentals,
		}

		text, err := a.narrative.Unwrap().Generate(ctx, req)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeNarrativeFailed, err, "failed to generate narrative for %s", code)
		}

		report.Narrative = text
	}

	log.Info("Analysis complete",
		zap.Int("bars", report.Bars),
		zap.Any("signals", summary),
		zap.Duration("elapsed", time.Since(started)),
	)

	return report, nil
}

// AnalyzeAll analyses codes concurrently, at most limit at a time (unbounded when
// limit <= 0). Reports keep the order of codes. onDone, if not nil, is called after
// each finished analysis. The first failure cancels the rest.
func (a *Analyst) AnalyzeAll(ctx context.Context, codes []string, query string, limit int, onDone func()) ([]*Report, error) {
	reports := make([]*Report, len(codes))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, code := range codes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report, err := a.Analyze(ctx, code, query)
			if err != nil {
				return err
			}

			reports[i] = report

			if onDone != nil {
				onDone()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
