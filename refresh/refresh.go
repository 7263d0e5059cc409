package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nonsonwune/college_db/config"
	"github.com/nonsonwune/college_db/importer"
	"github.com/nonsonwune/college_db/migrations"
	"github.com/nonsonwune/college_db/models"
	"github.com/nonsonwune/college_db/store"
)

// TableCount is the row count of one table after a refresh.
type TableCount struct {
	Table string
	Rows  int64
}

// Report describes a completed refresh.
type Report struct {
	Datasets  []importer.ImportResult
	Tables    []TableCount
	SizeBytes int64
	Duration  time.Duration
}

// Refresher rebuilds a store from the configured datasets. Datasets run in
// slice order, so institutions must come first.
type Refresher struct {
	store    *store.Store
	datasets []importer.Dataset
	importer *importer.DataImporter
	log      *slog.Logger
}

func NewRefresher(s *store.Store, datasets []importer.Dataset, cfg importer.ImportConfig) *Refresher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Logger = logger
	return &Refresher{
		store:    s,
		datasets: datasets,
		importer: importer.NewDataImporter(s, cfg),
		log:      logger,
	}
}

// Run drops and recreates the schema, loads every dataset and collects the
// final table counts. A dataset whose source is missing is skipped; any
// store failure aborts the run and is returned.
func (r *Refresher) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	r.log.Info("starting database refresh", "driver", r.store.Dialect(), "path", r.store.Path())

	if err := migrations.InitSchema(ctx, r.store); err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	r.log.Info("database schema created", "tables", len(models.AllTables))

	report := &Report{}
	for _, ds := range r.datasets {
		result, err := r.importer.ImportDataset(ctx, ds)
		report.Datasets = append(report.Datasets, result)
		if err != nil {
			return report, fmt.Errorf("error loading %s: %w", ds.Name, err)
		}
	}

	for _, table := range models.AllTables {
		n, err := r.store.CountRows(ctx, table)
		if err != nil {
			return report, err
		}
		report.Tables = append(report.Tables, TableCount{Table: table, Rows: n})
	}

	size, err := r.store.Size(ctx)
	if err != nil {
		return report, err
	}
	report.SizeBytes = size
	report.Duration = time.Since(start)

	r.log.Info("database refresh completed", "duration", report.Duration.Round(time.Millisecond))
	return report, nil
}

// Datasets builds the refresh datasets for cfg, applying the sources
// manifest when one is configured.
func Datasets(cfg config.Config) ([]importer.Dataset, error) {
	datasets := importer.DefaultDatasets(cfg.DataDir, cfg.ChunkSize)
	if cfg.SourcesFile == "" {
		return datasets, nil
	}

	sources, err := config.LoadSources(cfg.SourcesFile, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	for name, list := range sources {
		idx := -1
		for i := range datasets {
			if datasets[i].Name == name {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, fmt.Errorf("sources file names unknown dataset %q", name)
		}
		candidates := make([]importer.Candidate, 0, len(list))
		for _, src := range list {
			candidates = append(candidates, importer.Candidate{File: src.File, Year: src.Year})
		}
		datasets[idx].Candidates = candidates
	}
	return datasets, nil
}

// Run opens the configured store, refreshes it and closes it again on every
// path out.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (report *Report, err error) {
	datasets, err := Datasets(cfg)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing store: %w", cerr)
		}
	}()

	r := NewRefresher(s, datasets, importer.ImportConfig{
		RejectsDir: cfg.RejectsDir,
		Logger:     logger,
	})
	return r.Run(ctx)
}
