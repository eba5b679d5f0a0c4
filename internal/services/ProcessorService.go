package services

import (
	"sid/internal/models"
	"sid/internal/providers"
	"sid/internal/sequence"
	"strings"
	"time"
)

type ProcessorServiceInterface interface {
	Process(userID, text string, when time.Time) (*models.SaveResult, error)
}

// ProcessorService runs one execute action: extract both length classes,
// filter each for sequential neighbors, concatenate (11-digit batch first)
// and hand the candidates to the registry's atomic save.
type ProcessorService struct {
	registry RegistryServiceInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
}

func NewProcessorService(registry RegistryServiceInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) ProcessorServiceInterface {
	return &ProcessorService{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

func (ps *ProcessorService) Process(userID, text string, when time.Time) (*models.SaveResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyInput
	}

	eleven, fifteen := sequence.Extract(text)
	if len(eleven)+len(fifteen) == 0 {
		return nil, models.ErrNoIdentifiers
	}
	ps.metrics.AddIDsExtracted(len(eleven) + len(fifteen))

	candidates := append(sequence.FilterSequential(eleven), sequence.FilterSequential(fifteen)...)
	if len(candidates) == 0 {
		return nil, models.ErrNoSequential
	}

	result := ps.registry.SaveIdentifiers(userID, candidates, when)

	ps.metrics.AddIDsSaved(result.NewCount)
	ps.metrics.AddIDsDuplicate(result.DuplicateCount)
	ps.logger.Infof(providers.TypeApp, "Processed input for %s: %d sequential, %d new, %d duplicate",
		userID, result.TotalFound, result.NewCount, result.DuplicateCount)

	return result, nil
}
