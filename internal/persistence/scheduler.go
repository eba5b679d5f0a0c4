package persistence

import (
	"sid/internal/persistence/interfaces"
	"sid/internal/providers"
	"sid/internal/services"
	"sid/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.RegistryServiceInterface
	metrics     providers.MetricsProviderInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), s.persistTick)

	if s.config.Analytics.RetentionDays > 0 && s.config.Analytics.PruneInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Analytics.PruneInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			cutoff := time.Now().AddDate(0, 0, -s.config.Analytics.RetentionDays).Format(time.DateOnly)
			if dropped := s.service.PruneAnalytics(cutoff); dropped > 0 {
				s.logger.Infof(providers.TypeApp, "Pruned day counters for %d dates before %s", dropped, cutoff)
			}
		})
	}

	s.cron.Start()
}

// persistTick saves the registry when it holds unsaved changes. The dirty
// flag is cleared before the save so mutations racing a successful save stay
// flagged for the next tick; a failed save re-marks it so the state is
// retried once storage recovers.
func (s *Scheduler) persistTick() {
	if !s.service.Dirty() {
		return
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.service.ClearDirty()
	start := time.Now()
	if err := s.fileManager.SaveAll(); err != nil {
		s.service.MarkDirty()
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.logger.Infof(providers.TypeApp, "Persisted registry to %s", s.config.Persistence.Dir)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadAll()
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting registry to disk...")
	start := time.Now()
	if err := s.fileManager.SaveAll(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.service.ClearDirty()
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RegistryServiceInterface, metrics providers.MetricsProviderInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		metrics:     metrics,
		fileManager: fileManager,
	}
}
