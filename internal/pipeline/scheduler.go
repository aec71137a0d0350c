package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/roylee0704/gron"

	"chessetl/internal/dataset"
	"chessetl/internal/pipeline/interfaces"
	"chessetl/internal/providers"
	"chessetl/internal/services"
	"chessetl/internal/structures"
)

// Scheduler keeps the in-memory dataset fresh in serve mode: it loads
// the persisted canonical CSV on start and periodically re-runs the
// pipeline when refresh is enabled.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.DatasetServiceInterface
	runner  *Runner
	files   *dataset.FileManager
	cron    *gron.Cron
	opsMu   sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.config.Refresh.Enabled && s.config.Refresh.Interval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Refresh.Interval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			s.logger.Infof(providers.TypeApp, "Refreshing dataset...")
			rows, err := s.runner.Refresh(context.Background())
			if err != nil {
				s.logger.Errorf(providers.TypeApp, "Refresh failed: %s", err)
				return
			}
			s.service.Load(rows)
			s.logger.Infof(providers.TypeApp, "Dataset refreshed: %d rows", len(rows))
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the persisted canonical dataset into memory. A dataset
// that has not been processed yet is not an error.
func (s *Scheduler) Restore() error {
	rows, err := s.files.ReadCanonicalCSV(s.runner.CanonicalPath())
	if err != nil {
		if errors.Is(err, dataset.ErrSourceMissing) {
			return nil
		}
		return err
	}
	s.service.Load(rows)
	s.logger.Infof(providers.TypeApp, "Restored %d rows from %s", len(rows), s.runner.CanonicalPath())
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.DatasetServiceInterface, runner *Runner, files *dataset.FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		runner:  runner,
		files:   files,
	}
}
