package services

import (
	"time"

	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/platform/config"
	"github.com/SscSPs/asset_depreciation/internal/utils/recurrence"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	options := []DepreciationOption{
		WithScheduleName(cfg.ScheduleName),
		WithAmountScale(cfg.AmountScale),
		WithConcurrency(cfg.RunConcurrency),
	}
	if loc, err := time.LoadLocation(cfg.DefaultTimezone); err == nil {
		options = append(options, WithLocation(loc))
	}
	container.Depreciation = NewDepreciationService(
		repos.AssetRepo,
		repos.LedgerRepo,
		repos.ScheduleRepo,
		options...,
	)

	// The schedule service triggers runs through the depreciation service
	container.Schedule = NewScheduleService(
		repos.ScheduleRepo,
		container.Depreciation,
		WithEvaluator(recurrence.NewEvaluator(cfg.PollInterval, cfg.MisfireGrace)),
	)

	return container
}
