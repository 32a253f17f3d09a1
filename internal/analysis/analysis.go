// Package analysis runs the full per-stock pipeline: fetch the series, compute the
// indicators, derive the signals and attach the optional fundamentals and narrative.
package analysis

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// SeriesFetcher supplies the OHLCV history of a stock code, oldest first.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, code string, start, end optional.Option[time.Time]) (types.TimeSeries, error)
}

// FundamentalsSummarizer returns a short textual summary of a company's financials.
type FundamentalsSummarizer interface {
	Summarize(ctx context.Context, code string) (string, error)
}

// NarrativeGenerator turns the computed analysis into prose, typically through a
// language model.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) (string, error)
}

// NarrativeRequest is everything a NarrativeGenerator gets to work with.
type NarrativeRequest struct {
	RequestID    string              `json:"request_id"`
	Code         string              `json:"code"`
	Query        string              `json:"query"`
	Latest       indicator.Row       `json:"latest"`
	Signals      types.SignalSummary `json:"signals"`
	Fundamentals string              `json:"fundamentals,omitempty"`
}

// Report is the result of analysing one stock.
type Report struct {
	ID           string              `json:"id" yaml:"id"`
	Code         string              `json:"code" yaml:"code"`
	Query        string              `json:"query,omitempty" yaml:"query,omitempty"`
	GeneratedAt  time.Time           `json:"generated_at" yaml:"generated_at"`
	Bars         int                 `json:"bars" yaml:"bars"`
	Rows         []indicator.Row     `json:"rows" yaml:"rows"`
	Signals      types.SignalSummary `json:"signals" yaml:"signals"`
	Fundamentals string              `json:"fundamentals,omitempty" yaml:"fundamentals,omitempty"`
	Narrative    string              `json:"narrative,omitempty" yaml:"narrative,omitempty"`

	Set *indicator.IndicatorSet `json:"-" yaml:"-"`
}

// Latest returns the most recent exported row.
func (r *Report) Latest() optional.Option[indicator.Row] {
	if len(r.Rows) == 0 {
		return optional.None[indicator.Row]()
	}

	return optional.Some(r.Rows[len(r.Rows)-1])
}
