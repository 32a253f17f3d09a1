// Package datasource reads OHLCV history from local CSV or Parquet files through an
// in-memory DuckDB database.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-analyst/internal/logger"
	"github.com/rxtech-lab/argo-analyst/internal/types"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"go.uber.org/zap"
)

const (
	viewName   = "market_data"
	codeColumn = "code"
	codeText   = "CAST(code AS VARCHAR)"
)

// DuckDBSource serves TimeSeries out of a CSV or Parquet file. Files may hold a
// single instrument or many, told apart by an optional "code" column.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType

	path      string
	hasCode   bool
	typedDate bool
}

// NewDuckDBSource opens an in-memory DuckDB database.
func NewDuckDBSource(log *logger.Logger) (*DuckDBSource, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Load points the source at a file. ".parquet" files are read with read_parquet,
// anything else as CSV with a header row.
func (d *DuckDBSource) Load(ctx context.Context, path string) error {
	d.logger.Debug("Loading market data file", zap.String("path", path))

	if _, err := d.db.ExecContext(ctx, `DROP VIEW IF EXISTS `+viewName); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	reader := "read_csv_auto('%s', header = true)"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = "read_parquet('%s')"
	}

	// CREATE VIEW cannot be parameterized
	query := fmt.Sprintf(`CREATE VIEW %s AS SELECT * FROM `+reader, viewName, strings.ReplaceAll(path, "'", "''"))
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	columns, err := d.describe(ctx)
	if err != nil {
		return err
	}

	for _, col := range types.RequiredColumns {
		if _, ok := columns[col]; !ok {
			return errors.NewMissingColumnError(col)
		}
	}

	_, d.hasCode = columns[codeColumn]
	dateType := columns[types.ColumnDate]
	d.typedDate = dateType == "DATE" || strings.HasPrefix(dateType, "TIMESTAMP")
	d.path = path

	d.logger.Debug("Market data file loaded",
		zap.String("path", path),
		zap.Bool("has_code", d.hasCode),
		zap.String("date_type", dateType),
	)

	return nil
}

// describe returns the lower-cased column names of the view mapped to their types.
func (d *DuckDBSource) describe(ctx context.Context) (map[string]string, error) {
	rows, err := d.db.QueryContext(ctx, `DESCRIBE `+viewName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to describe market data", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to describe market data", err)
	}

	columns := make(map[string]string)

	for rows.Next() {
		values := make([]sql.NullString, len(names))
		dest := make([]any, len(names))

		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan column description", err)
		}

		// column_name, column_type, ...
		columns[strings.ToLower(values[0].String)] = strings.ToUpper(values[1].String)
	}

	return columns, rows.Err()
}

// Codes lists the distinct instrument codes in the file in normalized form, so
// "000001" is reported as "sh.000001". A file without a code column yields nil.
func (d *DuckDBSource) Codes(ctx context.Context) ([]string, error) {
	if err := d.ensureLoaded(); err != nil {
		return nil, err
	}

	if !d.hasCode {
		return nil, nil
	}

	cells, err := d.codeCells(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(cells))
	codes := make([]string, 0, len(cells))

	for _, cell := range cells {
		code, err := types.NormalizeCode(cell)
		if err != nil {
			d.logger.Warn("Skipping invalid stock code", zap.String("code", cell))

			continue
		}

		if _, ok := seen[code]; ok {
			continue
		}

		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	slices.Sort(codes)

	return codes, nil
}

// codeCells returns the distinct code column values as written in the file.
func (d *DuckDBSource) codeCells(ctx context.Context) ([]string, error) {
	query, args, err := d.sq.
		Select(codeText + " AS code").
		Distinct().
		From(viewName).
		OrderBy(codeColumn).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list codes", err)
	}
	defer rows.Close()

	var cells []string

	for rows.Next() {
		var cell sql.NullString
		if err := rows.Scan(&cell); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan code", err)
		}

		if cell.Valid {
			cells = append(cells, cell.String)
		}
	}

	return cells, rows.Err()
}

// matchingCells returns the code column values that denote code. Values without
// an exchange prefix match on the six-digit number alone.
func (d *DuckDBSource) matchingCells(ctx context.Context, code string) ([]string, error) {
	target, err := types.NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	cells, err := d.codeCells(ctx)
	if err != nil {
		return nil, err
	}

	var matches []string

	for _, cell := range cells {
		normalized, err := types.NormalizeCode(cell)
		if err != nil {
			continue
		}

		if normalized == target || (!types.HasExchange(cell) && types.CodeNumber(normalized) == types.CodeNumber(target)) {
			matches = append(matches, cell)
		}
	}

	return matches, nil
}

// FetchSeries returns the bars of code between start and end (inclusive), oldest
// first. The code filter applies only when the file has a code column, where both
// "sz.000001" and a bare "000001" cell select the rows of sz.000001.
func (d *DuckDBSource) FetchSeries(ctx context.Context, code string, start, end optional.Option[time.Time]) (types.TimeSeries, error) {
	if err := d.ensureLoaded(); err != nil {
		return types.TimeSeries{}, err
	}

	started := time.Now()

	header := types.RequiredColumns
	selects := make([]string, len(header))

	for i, col := range header {
		selects[i] = fmt.Sprintf(`CAST(%q AS VARCHAR) AS %q`, col, col)
	}

	builder := d.sq.Select(selects...).From(viewName)
	date := fmt.Sprintf("%q", types.ColumnDate)

	if d.hasCode && code != "" {
		cells, err := d.matchingCells(ctx, code)
		if err != nil {
			return types.TimeSeries{}, err
		}

		if len(cells) == 0 {
			return types.TimeSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s in %s", code, d.path)
		}

		builder = builder.Where(squirrel.Eq{codeText: cells})
	}

	if d.typedDate {
		if start.IsSome() {
			builder = builder.Where(squirrel.GtOrEq{date: start.Unwrap()})
		}

		if end.IsSome() {
			builder = builder.Where(squirrel.LtOrEq{date: end.Unwrap()})
		}

		builder = builder.OrderBy(date + " ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return types.TimeSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return types.TimeSeries{}, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", code)
	}
	defer rows.Close()

	var table [][]string

	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]any, len(header))

		for i := range cells {
			dest[i] = &cells[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return types.TimeSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		row := make([]string, len(header))
		for i, cell := range cells {
			row[i] = cell.String
		}

		table = append(table, row)
	}

	if err := rows.Err(); err != nil {
		return types.TimeSeries{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read rows", err)
	}

	series, err := types.ParseTable(code, header, table)
	if err != nil {
		return types.TimeSeries{}, err
	}

	if !d.typedDate {
		series = within(series, start, end)
	}

	if series.Len() == 0 {
		return types.TimeSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "no bars for %s in %s", code, d.path)
	}

	d.logger.Debug("Fetched series",
		zap.String("code", code),
		zap.Int("bars", series.Len()),
		zap.Duration("elapsed", time.Since(started)),
	)

	return series, nil
}

// Close releases the database.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}

func (d *DuckDBSource) ensureLoaded() error {
	if d.path == "" {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "no market data file loaded")
	}

	return nil
}

// within keeps the bars dated in [start, end]. Used when the date column is text
// and cannot be compared in SQL.
func within(series types.TimeSeries, start, end optional.Option[time.Time]) types.TimeSeries {
	bars := make([]types.Bar, 0, series.Len())

	for _, bar := range series.Bars {
		if start.IsSome() && bar.Date.Before(start.Unwrap()) {
			continue
		}

		if end.IsSome() && bar.Date.After(end.Unwrap()) {
			continue
		}

		bars = append(bars, bar)
	}

	return types.NewTimeSeries(series.Code, bars)
}
