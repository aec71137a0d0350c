package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"chessetl/internal/dataset"
	"chessetl/internal/fetch"
	"chessetl/internal/models"
	"chessetl/internal/perspective"
	"chessetl/internal/providers"
	"chessetl/internal/structures"
)

// ErrNoPlayers reports a fetch invocation with nobody to fetch.
var ErrNoPlayers = errors.New("no players configured")

// Runner wires the fetch, process and perspective stages together for
// the CLI and the refresh scheduler.
type Runner struct {
	conf      *structures.Config
	fetcher   *fetch.Fetcher
	builder   *Builder
	projector *perspective.Projector
	files     *dataset.FileManager
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

func NewRunner(conf *structures.Config, fetcher *fetch.Fetcher, builder *Builder, projector *perspective.Projector, files *dataset.FileManager, logger providers.Logger, metrics providers.MetricsProviderInterface) *Runner {
	return &Runner{
		conf:      conf,
		fetcher:   fetcher,
		builder:   builder,
		projector: projector,
		files:     files,
		logger:    logger,
		metrics:   metrics,
	}
}

// Fetch downloads raw archives for the given players, or for the
// configured player list when none are passed. A failing player does
// not stop the others.
func (r *Runner) Fetch(ctx context.Context, players []string) error {
	if len(players) == 0 {
		players = r.conf.Fetcher.Players
	}
	if len(players) == 0 {
		return ErrNoPlayers
	}

	for _, player := range players {
		if _, err := r.fetcher.FetchPlayer(ctx, player); err != nil {
			if ctx.Err() != nil {
				return err
			}
			r.logger.Errorf(providers.TypeFetch, "Fetch failed for %s: %s", player, err)
		}
	}
	return nil
}

// CanonicalPath is where the processed dataset of record lives.
func (r *Runner) CanonicalPath() string {
	return filepath.Join(r.conf.Processor.ProcessedDir, r.conf.Processor.OutputFile)
}

// Process builds the canonical dataset from the raw directory and
// persists it as CSV.
func (r *Runner) Process() ([]models.CanonicalGameRow, Report, error) {
	start := time.Now()

	rows, report, err := r.builder.BuildDir(r.conf.Processor.RawDir)
	if err != nil {
		return nil, report, err
	}

	if err := r.files.WriteCanonicalCSV(r.CanonicalPath(), rows); err != nil {
		return nil, report, err
	}

	r.metrics.SetDatasetRows("canonical", len(rows))
	r.metrics.ObserveProcessDuration(time.Since(start))
	return rows, report, nil
}

// Perspective projects the persisted canonical dataset into the
// subject-perspective CSV.
func (r *Runner) Perspective() (int, error) {
	outputPath := filepath.Join(r.conf.Processor.ProcessedDir, r.conf.Perspective.OutputFile)

	subjects := r.conf.Perspective.Subjects
	n, err := r.projector.ProjectFile(r.CanonicalPath(), outputPath, subjects)
	if err != nil {
		return 0, err
	}
	r.metrics.SetDatasetRows("perspective", n)
	return n, nil
}

// Refresh runs fetch and process back to back and returns the fresh
// canonical rows, for callers that keep the dataset in memory.
func (r *Runner) Refresh(ctx context.Context) ([]models.CanonicalGameRow, error) {
	if err := r.Fetch(ctx, nil); err != nil && !errors.Is(err, ErrNoPlayers) {
		return nil, err
	}
	rows, _, err := r.Process()
	if err != nil {
		return nil, err
	}
	if _, err := r.Perspective(); err != nil {
		r.logger.Warnf(providers.TypePerspective, "Perspective refresh skipped: %s", err)
	}
	return rows, nil
}
