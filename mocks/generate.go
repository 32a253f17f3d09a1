package mocks

//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-analyst/internal/indicator Indicator
//go:generate mockgen -destination=./mock_analysis.go -package=mocks github.com/rxtech-lab/argo-analyst/internal/analysis SeriesFetcher,FundamentalsSummarizer,NarrativeGenerator
