package pipeline

import (
	"fmt"
	"sort"

	"chessetl/internal/dataset"
	"chessetl/internal/models"
	"chessetl/internal/providers"
)

// Report carries the side-channel counters of one build pass.
type Report struct {
	Files      int `json:"files"`
	Records    int `json:"records"`
	Rejected   int `json:"rejected"`
	Duplicates int `json:"duplicates"`
	Rows       int `json:"rows"`
}

type Builder struct {
	normalizer *Normalizer
	files      *dataset.FileManager
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewBuilder(normalizer *Normalizer, files *dataset.FileManager, logger providers.Logger, metrics providers.MetricsProviderInterface) *Builder {
	return &Builder{
		normalizer: normalizer,
		files:      files,
		logger:     logger,
		metrics:    metrics,
	}
}

// Build normalizes every record of every batch, deduplicates by url
// keeping the first occurrence in concatenated input order, and sorts
// by end_time ascending with stable ties.
func (b *Builder) Build(batches [][]models.RawGameRecord) ([]models.CanonicalGameRow, Report) {
	report := Report{Files: len(batches)}

	var rows []models.CanonicalGameRow
	for _, batch := range batches {
		for _, raw := range batch {
			report.Records++
			row, ok := b.normalizer.Normalize(raw)
			if !ok {
				report.Rejected++
				b.metrics.IncRecordsRejected()
				continue
			}
			b.metrics.IncRecordsProcessed()
			rows = append(rows, row)
		}
	}

	seen := make(map[string]struct{}, len(rows))
	unique := rows[:0]
	for _, row := range rows {
		if _, dup := seen[row.URL]; dup {
			report.Duplicates++
			continue
		}
		seen[row.URL] = struct{}{}
		unique = append(unique, row)
	}
	if report.Duplicates > 0 {
		b.logger.Infof(providers.TypeProcess, "Removed %d duplicate games", report.Duplicates)
		b.metrics.AddDuplicatesRemoved(report.Duplicates)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].EndTime < unique[j].EndTime
	})

	report.Rows = len(unique)
	return unique, report
}

// BuildDir loads every data file in dir as one batch and builds the
// canonical dataset from them. Unreadable files are skipped with a
// warning; a missing dir or an empty result is an operation failure.
func (b *Builder) BuildDir(dir string) ([]models.CanonicalGameRow, Report, error) {
	paths, err := b.files.ListArchives(dir)
	if err != nil {
		return nil, Report{}, err
	}

	batches := make([][]models.RawGameRecord, 0, len(paths))
	for _, path := range paths {
		archive, err := b.files.LoadArchive(path)
		if err != nil {
			b.logger.Warnf(providers.TypeProcess, "Skipping unreadable archive %s: %s", path, err)
			batches = append(batches, nil)
			continue
		}
		batches = append(batches, archive.Games)
	}

	rows, report := b.Build(batches)
	if len(rows) == 0 {
		return nil, report, fmt.Errorf("%w: %s", dataset.ErrDatasetEmpty, dir)
	}

	b.logger.Infof(providers.TypeProcess,
		"Processed %d files: %d records, %d rejected, %d duplicates, %d rows",
		report.Files, report.Records, report.Rejected, report.Duplicates, report.Rows)
	return rows, report, nil
}
