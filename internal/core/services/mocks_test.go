package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) ListDepreciableAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) AdvanceLastDepreciatedPeriod(ctx context.Context, assetID string, period domain.Period) error {
	args := m.Called(ctx, assetID, period)
	return args.Error(0)
}

func (m *MockAssetRepository) MarkFullyDepreciated(ctx context.Context, assetID string, at time.Time) error {
	args := m.Called(ctx, assetID, at)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) RecordEntry(ctx context.Context, entry domain.LedgerEntry) (domain.RecordOutcome, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(domain.RecordOutcome), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAsset(ctx context.Context, assetID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock ScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetActiveSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockScheduleRepository) GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleConfig), args.Error(1)
}

func (m *MockScheduleRepository) ClaimRun(ctx context.Context, name string, windowStart, at time.Time) (bool, error) {
	args := m.Called(ctx, name, windowStart, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) UpdateRunMetadata(ctx context.Context, name string, lastRunAt time.Time, nextRunAt *time.Time, result domain.RunResult) error {
	args := m.Called(ctx, name, lastRunAt, nextRunAt, result)
	return args.Error(0)
}

// Ensure mocks implement the interfaces
var (
	_ portsrepo.AssetRepositoryFacade    = (*MockAssetRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade   = (*MockLedgerRepository)(nil)
	_ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)
)

// memoryStore is a stateful stand-in for the database. It keeps the same
// guarantees the tables do: one ledger entry per (asset, period), a marker that
// only moves forward and a row-locked claim on the schedule.
type memoryStore struct {
	mu        sync.Mutex
	order     []string
	assets    map[string]*domain.Asset
	entries   map[string]map[domain.Period]domain.LedgerEntry
	schedules map[string]*domain.ScheduleConfig
}

func newMemoryStore(assets ...domain.Asset) *memoryStore {
	s := &memoryStore{
		assets:    map[string]*domain.Asset{},
		entries:   map[string]map[domain.Period]domain.LedgerEntry{},
		schedules: map[string]*domain.ScheduleConfig{},
	}
	for _, a := range assets {
		a := a
		s.order = append(s.order, a.AssetID)
		s.assets[a.AssetID] = &a
	}
	return s
}

func (s *memoryStore) putSchedule(cfg domain.ScheduleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[cfg.Name] = &cfg
}

func (s *memoryStore) schedule(name string) domain.ScheduleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.schedules[name]
}

func (s *memoryStore) asset(id string) domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.assets[id]
}

func (s *memoryStore) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, byPeriod := range s.entries {
		n += len(byPeriod)
	}
	return n
}

func (s *memoryStore) ListDepreciableAssets(ctx context.Context) ([]domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Asset
	for _, id := range s.order {
		if a := s.assets[id]; a.Status == domain.AssetActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memoryStore) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[assetID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memoryStore) AdvanceLastDepreciatedPeriod(ctx context.Context, assetID string, period domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[assetID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if a.LastDepreciatedPeriod == nil || a.LastDepreciatedPeriod.Before(period) {
		p := period
		a.LastDepreciatedPeriod = &p
	}
	return nil
}

func (s *memoryStore) MarkFullyDepreciated(ctx context.Context, assetID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assets[assetID]; ok && a.Status == domain.AssetActive {
		a.Status = domain.AssetFullyDepreciated
	}
	return nil
}

func (s *memoryStore) RecordEntry(ctx context.Context, entry domain.LedgerEntry) (domain.RecordOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byPeriod, ok := s.entries[entry.AssetID]
	if !ok {
		byPeriod = map[domain.Period]domain.LedgerEntry{}
		s.entries[entry.AssetID] = byPeriod
	}
	if _, exists := byPeriod[entry.Period]; exists {
		return domain.AlreadyExists, nil
	}
	byPeriod[entry.Period] = entry
	return domain.Recorded, nil
}

func (s *memoryStore) ListEntriesByAsset(ctx context.Context, assetID string) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LedgerEntry, 0, len(s.entries[assetID]))
	for _, e := range s.entries[assetID] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out, nil
}

func (s *memoryStore) GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.schedules[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *cfg
	return &cp, nil
}

func (s *memoryStore) GetActiveSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	cfg, err := s.GetSchedule(ctx, name)
	if err != nil {
		return nil, err
	}
	if !cfg.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return cfg, nil
}

func (s *memoryStore) ClaimRun(ctx context.Context, name string, windowStart, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.schedules[name]
	if !ok {
		return false, apperrors.ErrNotFound
	}
	if !cfg.IsActive || (cfg.LastRunAt != nil && !cfg.LastRunAt.Before(windowStart)) {
		return false, nil
	}
	claimed := at
	cfg.LastRunAt = &claimed
	return true, nil
}

func (s *memoryStore) UpdateRunMetadata(ctx context.Context, name string, lastRunAt time.Time, nextRunAt *time.Time, result domain.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.schedules[name]
	if !ok {
		return apperrors.ErrNotFound
	}
	if cfg.LastRunAt == nil || cfg.LastRunAt.Before(lastRunAt) {
		t := lastRunAt
		cfg.LastRunAt = &t
	}
	cfg.NextRunAt = nextRunAt
	cfg.LastRunResult = []byte(`{}`)
	return nil
}
