package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"
)

// Sink is the store a DataImporter loads into.
type Sink interface {
	UnitIDs(ctx context.Context) (map[int64]struct{}, error)
	Append(ctx context.Context, table string, columns []string, rows [][]any) (int, error)
}

// ImportConfig holds the settings shared by every dataset import.
type ImportConfig struct {
	// RejectsDir receives a CSV of dropped rows per dataset when set.
	RejectsDir string
	// ProgressEvery logs progress each time this many more rows are loaded.
	ProgressEvery int
	Logger        *slog.Logger
}

// ImportError reports a store failure while importing a dataset. Source
// problems never produce one; they skip the dataset instead.
type ImportError struct {
	Code    string
	Dataset string
	Err     error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Dataset, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ImportResult summarises one dataset import.
type ImportResult struct {
	Dataset    string
	Table      string
	SourceFile string
	Year       int
	Skipped    bool
	SkipReason string
	// Truncated is set when reading stopped early on an I/O error.
	Truncated    bool
	Chunks       int
	RowsRead     int
	RowsLoaded   int
	Malformed    int
	InvalidCells map[string]int
	// NonIntegralCells counts fractional or out-of-range numbers nulled in
	// integer columns.
	NonIntegralCells map[string]int
	Dropped          map[string]int
	RejectsFile      string
}

// DroppedTotal returns the number of rows removed before loading.
func (r ImportResult) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// DataImporter runs the locate, reconcile, coerce, filter and load stages
// for a dataset.
type DataImporter struct {
	sink   Sink
	config ImportConfig
	log    *slog.Logger
	now    func() time.Time
}

func NewDataImporter(sink Sink, config ImportConfig) *DataImporter {
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = DefaultProgressEvery
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataImporter{
		sink:   sink,
		config: config,
		log:    logger,
		now:    time.Now,
	}
}

// ImportDataset loads ds into its table. A missing or unusable source is
// logged and reported as skipped; only store failures return an error.
func (d *DataImporter) ImportDataset(ctx context.Context, ds Dataset) (ImportResult, error) {
	result := ImportResult{
		Dataset:      ds.Name,
		Table:        ds.Table,
		InvalidCells:     make(map[string]int),
		NonIntegralCells: make(map[string]int),
		Dropped:          make(map[string]int),
	}
	log := d.log.With("dataset", ds.Name)

	source, err := LocateSource(ds.Candidates)
	if err != nil {
		log.Warn("no source file found, skipping", "candidates", len(ds.Candidates))
		return skip(result, err.Error()), nil
	}
	result.SourceFile = source.File
	result.Year = source.Vintage()
	log.Info("loading source", "file", source.File, "year", result.Year)

	file, err := os.Open(source.File)
	if err != nil {
		log.Warn("cannot open source file, skipping", "file", source.File, "error", err)
		return skip(result, err.Error()), nil
	}
	defer file.Close()

	reader, err := NewChunkReader(file)
	if err != nil {
		log.Warn("cannot read header, skipping", "file", source.File, "error", err)
		return skip(result, err.Error()), nil
	}

	projection := Reconcile(reader.Headers(), ds.Mappings)
	if len(projection.Columns) == 0 {
		log.Warn("no recognizable columns, skipping", "file", source.File)
		return skip(result, "no recognizable columns"), nil
	}
	for _, col := range ds.Required {
		if !projection.Has(col) {
			log.Warn("required column missing, skipping", "file", source.File, "column", col)
			return skip(result, "missing required column "+col), nil
		}
	}
	if ds.YearColumn != "" && result.Year == 0 {
		log.Warn("no data year for source, leaving column empty", "column", ds.YearColumn)
	}

	var valid IDSet
	if ds.References {
		ids, err := d.sink.UnitIDs(ctx)
		if err != nil {
			return result, &ImportError{Code: "ID_LOOKUP_FAILED", Dataset: ds.Name, Err: err}
		}
		valid = ids
	}
	seen := make(IDSet)

	rejects := newRejectWriter(d.config.RejectsDir, ds.Name, d.now())
	defer rejects.Close()

	required := make([]string, 0, len(ds.Required))
	for _, col := range ds.Required {
		if col != ds.Key {
			required = append(required, col)
		}
	}

	nextProgress := d.config.ProgressEvery
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		records, err := reader.Next(ds.ChunkSize)
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("read failed, keeping rows loaded so far", "file", source.File, "error", err)
			result.Truncated = true
		}
		if len(records) == 0 {
			break
		}
		result.Chunks++
		result.RowsRead += len(records)

		frame := projection.Apply(records)
		if ds.YearColumn != "" && result.Year != 0 {
			frame.SetConstant(ds.YearColumn, int64(result.Year))
		}
		counts := Coerce(frame, ds.Kinds)
		for col, n := range counts.Invalid {
			result.InvalidCells[col] += n
		}
		for col, n := range counts.NonIntegral {
			result.NonIntegralCells[col] += n
		}

		var dropped []Rejection
		frame, dropped = d.filterFrame(frame, ds, required, valid, seen)
		for _, r := range dropped {
			result.Dropped[r.Reason]++
		}
		if err := rejects.Write(frame.Columns, dropped); err != nil {
			log.Warn("cannot record rejected rows", "error", err)
		}

		n, err := d.sink.Append(ctx, ds.Table, frame.Columns, frame.Rows)
		if err != nil {
			return result, &ImportError{Code: "LOAD_FAILED", Dataset: ds.Name, Err: err}
		}
		result.RowsLoaded += n

		if result.RowsLoaded >= nextProgress {
			log.Info("progress", "rows_loaded", result.RowsLoaded)
			for nextProgress <= result.RowsLoaded {
				nextProgress += d.config.ProgressEvery
			}
		}
		if result.Truncated {
			break
		}
	}

	result.Malformed = reader.Malformed
	result.RejectsFile = rejects.Path()
	d.logSummary(log, result)
	return result, nil
}

func (d *DataImporter) filterFrame(f *Frame, ds Dataset, required []string, valid, seen IDSet) (*Frame, []Rejection) {
	var all []Rejection

	f, rejected := DropIncomplete(f, required)
	all = append(all, rejected...)

	if ds.Unique {
		f, rejected = DedupeKeys(f, ds.Key, seen)
		all = append(all, rejected...)
	}
	if ds.References {
		f, rejected = FilterReferences(f, ds.Key, valid)
		all = append(all, rejected...)
	}
	return f, all
}

func skip(result ImportResult, reason string) ImportResult {
	result.Skipped = true
	result.SkipReason = reason
	return result
}

func (d *DataImporter) logSummary(log *slog.Logger, r ImportResult) {
	log.Info("import summary",
		"table", r.Table,
		"rows_read", r.RowsRead,
		"rows_loaded", r.RowsLoaded,
		"rows_dropped", r.DroppedTotal(),
		"malformed_records", r.Malformed,
		"chunks", r.Chunks)

	reasons := make([]string, 0, len(r.Dropped))
	for reason := range r.Dropped {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		log.Info("rows dropped", "reason", reason, "count", r.Dropped[reason])
	}

	logCells(log, "non-numeric values stored as null", r.InvalidCells)
	logCells(log, "non-integral values stored as null", r.NonIntegralCells)
	if r.RejectsFile != "" {
		log.Info("rejected rows saved", "file", r.RejectsFile)
	}
}

func logCells(log *slog.Logger, msg string, counts map[string]int) {
	cols := make([]string, 0, len(counts))
	for col, n := range counts {
		if n > 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	for _, col := range cols {
		log.Info(msg, "column", col, "count", counts[col])
	}
}
