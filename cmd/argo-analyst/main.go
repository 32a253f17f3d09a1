package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-analyst/internal/analysis"
	"github.com/rxtech-lab/argo-analyst/internal/config"
	"github.com/rxtech-lab/argo-analyst/internal/datasource"
	"github.com/rxtech-lab/argo-analyst/internal/fundamental"
	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/logger"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// analyzeAction loads the data file, analyses every requested code and renders
// the reports.
func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	format := cmd.String("format")
	if format != formatTable && format != formatJSON && format != formatYAML {
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatTable, formatJSON, formatYAML)
	}

	start, err := dateFlag(cmd, "start")
	if err != nil {
		return err
	}

	end, err := dateFlag(cmd, "end")
	if err != nil {
		return err
	}

	lg, err := logger.NewLoggerWithConfig(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	source, err := datasource.NewDuckDBSource(lg)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Load(ctx, cmd.String("data")); err != nil {
		return err
	}

	codes := cmd.StringSlice("code")
	if len(codes) == 0 {
		codes, err = source.Codes(ctx)
		if err != nil {
			return err
		}

		if len(codes) == 0 {
			return fmt.Errorf("%s has no code column, pass --code", cmd.String("data"))
		}
	}

	opts := []analysis.Option{
		analysis.WithDateRange(start, end),
		analysis.WithReportRows(cmd.Int("rows")),
		analysis.WithLogger(lg),
	}

	if path := cmd.String("fundamentals"); path != "" {
		metrics, err := fundamental.LoadFileSource(path)
		if err != nil {
			return err
		}

		opts = append(opts, analysis.WithFundamentals(fundamental.NewSummarizer(metrics)))
	}

	analyst := analysis.NewAnalyst(source, indicator.NewEngine(registry, lg), cfg.Signals, opts...)

	var onDone func()

	if len(codes) > 1 && format == formatTable {
		bar := progressbar.NewOptions(len(codes),
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionSetWriter(cmd.Root().ErrWriter),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		onDone = func() { _ = bar.Add(1) }
	}

	started := time.Now()

	reports, err := analyst.AnalyzeAll(ctx, codes, cmd.String("query"), runtime.NumCPU(), onDone)
	if err != nil {
		return err
	}

	lg.Debug("Analyzed codes", zap.Strings("codes", codes), zap.Duration("elapsed", time.Since(started)))

	return render(cmd.Root().Writer, reports, format)
}

func dateFlag(cmd *cli.Command, name string) (optional.Option[time.Time], error) {
	value := cmd.String(name)
	if value == "" {
		return optional.None[time.Time](), nil
	}

	date, err := types.ParseDate(value)
	if err != nil {
		return optional.None[time.Time](), fmt.Errorf("invalid --%s: %w", name, err)
	}

	return optional.Some(date), nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-analyst",
		Usage:   "Technical indicators and trading signals for daily stock data",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Compute indicators and signals for the stocks in a CSV or Parquet file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to a CSV or Parquet file with date, open, high, low, close, volume and optionally code columns",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "code",
						Aliases: []string{"c"},
						Usage:   "Stock code to analyse, e.g. sh.600000. Defaults to every code in the file",
					},
					&cli.StringFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "First date in `YYYY-MM-DD` format",
					},
					&cli.StringFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "Last date in `YYYY-MM-DD` format",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "fundamentals",
						Usage: "Path to a YAML file of company fundamentals",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Question recorded with the report",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format (%s, %s, %s)", formatTable, formatJSON, formatYAML),
						Value:   formatTable,
					},
					&cli.IntFlag{
						Name:  "rows",
						Usage: "Number of trailing rows to show, 0 for all",
						Value: analysis.DefaultReportRows,
					},
				},
				Action: analyzeAction,
			},
			{
				Name:  "schema",
				Usage: "Print the config JSON schema, or write it with a sample config to a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Directory to write the schema and sample config to",
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
