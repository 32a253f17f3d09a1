// Package fundamental condenses company financial metrics into a short summary
// that accompanies the technical report.
package fundamental

import (
	"context"
	"math"
	"strings"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/shopspring/decimal"
)

// ROE returns net profit over equity in percent, or NaN when equity is not positive.
func ROE(netProfit, equity float64) float64 {
	if equity <= 0 {
		return math.NaN()
	}

	return netProfit / equity * 100
}

// GrowthRate returns the change from previous to current in percent of |previous|,
// or NaN when previous is zero.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return math.NaN()
	}

	return (current - previous) / math.Abs(previous) * 100
}

// Metrics is the latest reported financial record of one company. Absent fields
// are nil and left out of the summary.
type Metrics struct {
	Code     string `yaml:"code" json:"code"`
	Industry string `yaml:"industry,omitempty" json:"industry,omitempty"`

	// profitability, percent unless noted
	ROEAvg    *float64 `yaml:"roeAvg,omitempty" json:"roeAvg,omitempty"`
	NPMargin  *float64 `yaml:"npMargin,omitempty" json:"npMargin,omitempty"`
	GPMargin  *float64 `yaml:"gpMargin,omitempty" json:"gpMargin,omitempty"`
	NetProfit *float64 `yaml:"netProfit,omitempty" json:"netProfit,omitempty"`
	EPSTTM    *float64 `yaml:"epsTTM,omitempty" json:"epsTTM,omitempty"`
	MBRevenue *float64 `yaml:"MBRevenue,omitempty" json:"MBRevenue,omitempty"`

	// growth, year over year percent
	YOYEquity   *float64 `yaml:"YOYEquity,omitempty" json:"YOYEquity,omitempty"`
	YOYAsset    *float64 `yaml:"YOYAsset,omitempty" json:"YOYAsset,omitempty"`
	YOYNI       *float64 `yaml:"YOYNI,omitempty" json:"YOYNI,omitempty"`
	YOYEPSBasic *float64 `yaml:"YOYEPSBasic,omitempty" json:"YOYEPSBasic,omitempty"`
	YOYPNI      *float64 `yaml:"YOYPNI,omitempty" json:"YOYPNI,omitempty"`

	// inputs for derived ratios
	Equity            *float64 `yaml:"equity,omitempty" json:"equity,omitempty"`
	PreviousNetProfit *float64 `yaml:"previousNetProfit,omitempty" json:"previousNetProfit,omitempty"`
}

// MetricsSource looks up the metrics of a company.
type MetricsSource interface {
	Metrics(ctx context.Context, code string) (Metrics, error)
}

// Summarizer renders metrics from a MetricsSource as a compact field listing.
type Summarizer struct {
	source MetricsSource
}

// NewSummarizer creates a Summarizer reading from source.
func NewSummarizer(source MetricsSource) *Summarizer {
	return &Summarizer{source: source}
}

// Summarize returns "name: value" pairs joined by "; " in a fixed order.
func (s *Summarizer) Summarize(ctx context.Context, code string) (string, error) {
	m, err := s.source.Metrics(ctx, code)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeFundamentalsFailed, err, "failed to load fundamentals of %s", code)
	}

	return Summary(m), nil
}

type field struct {
	name   string
	value  *float64
	places int32
	suffix string
}

// Summary formats m. Percentages carry a % suffix; undefined derived ratios are skipped.
func Summary(m Metrics) string {
	var parts []string

	if m.Industry != "" {
		parts = append(parts, "industry: "+m.Industry)
	}

	fields := []field{
		{"roeAvg", m.ROEAvg, 2, "%"},
		{"npMargin", m.NPMargin, 2, "%"},
		{"gpMargin", m.GPMargin, 2, "%"},
		{"netProfit", m.NetProfit, 2, ""},
		{"epsTTM", m.EPSTTM, 2, ""},
		{"MBRevenue", m.MBRevenue, 2, ""},
		{"YOYEquity", m.YOYEquity, 3, "%"},
		{"YOYAsset", m.YOYAsset, 3, "%"},
		{"YOYNI", m.YOYNI, 3, "%"},
		{"YOYEPSBasic", m.YOYEPSBasic, 3, "%"},
		{"YOYPNI", m.YOYPNI, 3, "%"},
	}

	if m.NetProfit != nil && m.Equity != nil {
		roe := ROE(*m.NetProfit, *m.Equity)
		fields = append(fields, field{"roe", &roe, 2, "%"})
	}

	if m.NetProfit != nil && m.PreviousNetProfit != nil {
		growth := GrowthRate(*m.NetProfit, *m.PreviousNetProfit)
		fields = append(fields, field{"netProfitGrowth", &growth, 3, "%"})
	}

	for _, f := range fields {
		if f.value == nil || math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			continue
		}

		parts = append(parts, f.name+": "+decimal.NewFromFloat(*f.value).StringFixed(f.places)+f.suffix)
	}

	return strings.Join(parts, "; ")
}
