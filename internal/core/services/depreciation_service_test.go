package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newAsset(id string, acquired time.Time, value string, life int) domain.Asset {
	return domain.Asset{
		AssetID:          id,
		AssetTag:         "TAG-" + id,
		AcquisitionDate:  acquired,
		Value:            decimal.RequireFromString(value),
		UsefulLifeMonths: life,
		Status:           domain.AssetActive,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func jakartaSchedule() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		Name:          domain.DefaultScheduleName,
		IsActive:      true,
		Frequency:     domain.Daily,
		ExecutionTime: "00:05",
		Timezone:      "Asia/Jakarta",
	}
}

func newStoreService(store *memoryStore, opts ...services.DepreciationOption) portssvc.DepreciationSvcFacade {
	return services.NewDepreciationService(store, store, store, opts...)
}

// --- Suite with mocked repositories ---

type DepreciationServiceTestSuite struct {
	suite.Suite
	assetRepo    *MockAssetRepository
	ledgerRepo   *MockLedgerRepository
	scheduleRepo *MockScheduleRepository
	service      portssvc.DepreciationSvcFacade
}

func (suite *DepreciationServiceTestSuite) SetupTest() {
	suite.assetRepo = new(MockAssetRepository)
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.scheduleRepo = new(MockScheduleRepository)
	suite.service = services.NewDepreciationService(
		suite.assetRepo,
		suite.ledgerRepo,
		suite.scheduleRepo,
		services.WithClock(clockAt(fixedNow)),
	)
}

func (suite *DepreciationServiceTestSuite) TestRunOnce_InvalidMode() {
	result, err := suite.service.RunOnce(context.Background(), domain.RunMode("yearly"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.assetRepo.AssertNotCalled(suite.T(), "ListDepreciableAssets", mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunOnce_ListAssetsFailurePersistsFailedResult() {
	cfg := jakartaSchedule()
	storeErr := errors.New("connection refused")

	suite.scheduleRepo.On("GetSchedule", mock.Anything, domain.DefaultScheduleName).Return(&cfg, nil).Once()
	suite.assetRepo.On("ListDepreciableAssets", mock.Anything).Return(nil, storeErr).Once()
	suite.scheduleRepo.On("UpdateRunMetadata", mock.Anything, domain.DefaultScheduleName, fixedNow, mock.Anything,
		mock.MatchedBy(func(r domain.RunResult) bool {
			return !r.Success && r.Error != "" && !r.Timestamp.IsZero()
		})).Return(nil).Once()

	result, err := suite.service.RunOnce(context.Background(), domain.CatchUp)

	suite.Require().Error(err)
	suite.ErrorIs(err, storeErr)
	suite.Require().NotNil(result)
	suite.False(result.Success)
	suite.Contains(result.Error, "connection refused")
	suite.scheduleRepo.AssertExpectations(suite.T())
	suite.assetRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestRunOnce_RecordFailureAbortsRun() {
	asset := newAsset("a1", date(2024, time.March, 3), "1200", 12)

	suite.scheduleRepo.On("GetSchedule", mock.Anything, domain.DefaultScheduleName).Return(nil, apperrors.ErrNotFound).Once()
	suite.assetRepo.On("ListDepreciableAssets", mock.Anything).Return([]domain.Asset{asset}, nil).Once()
	suite.ledgerRepo.On("RecordEntry", mock.Anything, mock.AnythingOfType("domain.LedgerEntry")).Return(domain.AlreadyExists, assert.AnError).Once()

	result, err := suite.service.RunOnce(context.Background(), domain.CatchUp)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Require().NotNil(result)
	suite.False(result.Success)
	suite.Equal(1, result.TotalAssets)
	suite.Len(result.Details, 1)
	suite.Equal(0, result.TotalPeriodsProcessed)
	suite.assetRepo.AssertNotCalled(suite.T(), "AdvanceLastDepreciatedPeriod", mock.Anything, mock.Anything, mock.Anything)
	suite.scheduleRepo.AssertNotCalled(suite.T(), "UpdateRunMetadata", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunOnce_ScheduleReadFailure() {
	suite.scheduleRepo.On("GetSchedule", mock.Anything, domain.DefaultScheduleName).Return(nil, assert.AnError).Once()

	result, err := suite.service.RunOnce(context.Background(), domain.CatchUp)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Require().NotNil(result)
	suite.False(result.Success)
	suite.assetRepo.AssertNotCalled(suite.T(), "ListDepreciableAssets", mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestRunOnce_MetadataWriteFailureKeepsSuccess() {
	cfg := jakartaSchedule()
	suite.scheduleRepo.On("GetSchedule", mock.Anything, domain.DefaultScheduleName).Return(&cfg, nil).Once()
	suite.assetRepo.On("ListDepreciableAssets", mock.Anything).Return([]domain.Asset{}, nil).Once()
	suite.scheduleRepo.On("UpdateRunMetadata", mock.Anything, domain.DefaultScheduleName, fixedNow, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	result, err := suite.service.RunOnce(context.Background(), domain.CatchUp)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(0, result.TotalAssets)
	suite.scheduleRepo.AssertExpectations(suite.T())
}

func (suite *DepreciationServiceTestSuite) TestListAssetEntries_NotFound() {
	suite.assetRepo.On("FindAssetByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	entries, err := suite.service.ListAssetEntries(context.Background(), "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(entries)
	suite.ledgerRepo.AssertNotCalled(suite.T(), "ListEntriesByAsset", mock.Anything, mock.Anything)
}

func (suite *DepreciationServiceTestSuite) TestListAssetEntries_Success() {
	asset := newAsset("a1", date(2024, time.January, 1), "600", 6)
	expected := []domain.LedgerEntry{{EntryID: "e1", AssetID: "a1", Period: domain.Period{Year: 2024, Month: time.February}, Amount: decimal.NewFromInt(100)}}

	suite.assetRepo.On("FindAssetByID", mock.Anything, "a1").Return(&asset, nil).Once()
	suite.ledgerRepo.On("ListEntriesByAsset", mock.Anything, "a1").Return(expected, nil).Once()

	entries, err := suite.service.ListAssetEntries(context.Background(), "a1")

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
}

func TestDepreciationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepreciationServiceTestSuite))
}

// --- Behaviour against a stateful store ---

func TestRunOnce_BacklogClosure(t *testing.T) {
	store := newMemoryStore(newAsset("a1", date(2024, time.January, 10), "600000", 6))
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))

	result, err := svc.RunOnce(context.Background(), domain.CatchUp)
	require.NoError(t, err)
	require.True(t, result.Success)

	entries, err := store.ListEntriesByAsset(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, domain.Period{Year: 2024, Month: time.February}.AddMonths(i), e.Period)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(100000)), "period %s amount %s", e.Period, e.Amount)
		assert.Equal(t, result.RunID, e.RunID)
	}

	a := store.asset("a1")
	require.NotNil(t, a.LastDepreciatedPeriod)
	assert.Equal(t, domain.Period{Year: 2024, Month: time.June}, *a.LastDepreciatedPeriod)
	assert.Equal(t, domain.AssetActive, a.Status)

	assert.Equal(t, 1, result.TotalAssets)
	assert.Equal(t, 5, result.TotalPeriodsProcessed)
	assert.Equal(t, 1, result.AssetsWithNewEntries)
	assert.Equal(t, 5, result.Details[0].NewEntries)
	assert.Equal(t, 0, result.Details[0].PeriodsPending)
}

func TestRunOnce_HorizonCapsEntries(t *testing.T) {
	store := newMemoryStore(newAsset("a1", date(2023, time.August, 20), "1000", 3))
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))

	for i := 0; i < 3; i++ {
		_, err := svc.RunOnce(context.Background(), domain.CatchUp)
		require.NoError(t, err)
	}

	entries, err := store.ListEntriesByAsset(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "333.33", entries[0].Amount.StringFixed(2))
	assert.Equal(t, "333.33", entries[1].Amount.StringFixed(2))
	assert.Equal(t, "333.34", entries[2].Amount.StringFixed(2))
	assert.Equal(t, domain.Period{Year: 2023, Month: time.November}, entries[2].Period)
	assert.Equal(t, domain.AssetFullyDepreciated, store.asset("a1").Status)
}

func TestRunOnce_LifetimeSumEqualsValue(t *testing.T) {
	cases := []struct {
		value string
		life  int
	}{
		{"1000.00", 7},
		{"600000", 6},
		{"0.05", 12},
		{"99999.99", 36},
		{"0", 4},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			store := newMemoryStore(newAsset("a1", date(2020, time.January, 31), tc.value, tc.life))

			// Advance the clock one month at a time so each run sees a single period.
			now := date(2020, time.February, 1)
			for i := 0; i < tc.life+3; i++ {
				svc := newStoreService(store, services.WithClock(clockAt(now)))
				_, err := svc.RunOnce(context.Background(), domain.CatchUp)
				require.NoError(t, err)
				now = now.AddDate(0, 1, 0)
			}

			entries, err := store.ListEntriesByAsset(context.Background(), "a1")
			require.NoError(t, err)
			require.Len(t, entries, tc.life)

			sum := decimal.Zero
			for _, e := range entries {
				assert.False(t, e.Amount.IsNegative())
				sum = sum.Add(e.Amount)
			}
			assert.True(t, sum.Equal(decimal.RequireFromString(tc.value)), "sum %s != %s", sum, tc.value)
		})
	}
}

func TestRunOnce_ConcurrentRunsNeverDuplicate(t *testing.T) {
	store := newMemoryStore(
		newAsset("a1", date(2023, time.January, 1), "1200", 24),
		newAsset("a2", date(2023, time.June, 1), "5000", 60),
		newAsset("a3", date(2024, time.February, 1), "300", 3),
		newAsset("a4", date(2022, time.December, 1), "999.99", 12),
		newAsset("a5", date(2024, time.May, 1), "10", 10),
	)
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)), services.WithConcurrency(3))

	const runs = 4
	var wg sync.WaitGroup
	results := make([]*domain.RunResult, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.RunOnce(context.Background(), domain.CatchUp)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	recorded := 0
	for _, r := range results {
		require.NotNil(t, r)
		for _, d := range r.Details {
			recorded += d.NewEntries
		}
	}
	// a1: 2023-02..2024-06 (17), a2: 2023-07..2024-06 (12), a3: 2024-03..2024-05 (3),
	// a4: 2023-01..2023-12 (12), a5: 2024-06 (1)
	assert.Equal(t, 45, store.entryCount())
	assert.Equal(t, store.entryCount(), recorded)
}

func TestRunOnce_IsolatesAssetFailures(t *testing.T) {
	store := newMemoryStore(
		newAsset("a1", date(2024, time.January, 10), "600", 6),
		newAsset("a2", date(2024, time.January, 10), "600", 0),
		newAsset("a3", date(2024, time.March, 10), "300", 3),
	)
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))

	result, err := svc.RunOnce(context.Background(), domain.CatchUp)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalAssets)
	assert.Equal(t, 1, result.FailedAssets)
	assert.Equal(t, 2, result.AssetsWithNewEntries)
	require.Len(t, result.Details, 3)

	assert.Equal(t, "a1", result.Details[0].AssetID)
	assert.False(t, result.Details[0].Failed())

	failed := result.Details[1]
	assert.Equal(t, "a2", failed.AssetID)
	assert.True(t, failed.Failed())
	assert.Contains(t, failed.Error, "useful life")
	require.NotNil(t, failed.FailedAt)
	assert.Equal(t, fixedNow, *failed.FailedAt)

	assert.Equal(t, "a3", result.Details[2].AssetID)
	assert.Equal(t, 3, result.Details[2].PeriodsProcessed)

	entries, err := store.ListEntriesByAsset(context.Background(), "a2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunOnce_CurrentPeriodOnly(t *testing.T) {
	store := newMemoryStore(newAsset("a1", date(2024, time.January, 10), "600000", 6))
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))

	result, err := svc.RunOnce(context.Background(), domain.CurrentPeriodOnly)
	require.NoError(t, err)

	entries, err := store.ListEntriesByAsset(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Period{Year: 2024, Month: time.June}, entries[0].Period)

	detail := result.Details[0]
	assert.Equal(t, 1, detail.PeriodsProcessed)
	assert.Equal(t, 4, detail.PeriodsPending)
	assert.Contains(t, detail.Message, "4 earlier period(s)")
	assert.Equal(t, domain.Period{Year: 2024, Month: time.June}, *store.asset("a1").LastDepreciatedPeriod)

	// The marker has moved past the skipped periods, so a catch-up finds nothing.
	again, err := svc.RunOnce(context.Background(), domain.CatchUp)
	require.NoError(t, err)
	assert.Equal(t, 0, again.TotalPeriodsProcessed)
}

func TestRunOnce_RecoversFromLaggingMarker(t *testing.T) {
	asset := newAsset("a1", date(2024, time.January, 10), "600000", 6)
	store := newMemoryStore(asset)
	// An entry written by a run that crashed before advancing the marker.
	_, err := store.RecordEntry(context.Background(), domain.LedgerEntry{
		EntryID: "previous",
		AssetID: "a1",
		Period:  domain.Period{Year: 2024, Month: time.February},
		Amount:  decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))
	result, err := svc.RunOnce(context.Background(), domain.CatchUp)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Details[0].PeriodsProcessed)
	assert.Equal(t, 4, result.Details[0].NewEntries)
	assert.Equal(t, 5, store.entryCount())
	assert.Equal(t, domain.Period{Year: 2024, Month: time.June}, *store.asset("a1").LastDepreciatedPeriod)
}

func TestRunOnce_PersistsRunMetadata(t *testing.T) {
	store := newMemoryStore(newAsset("a1", date(2024, time.January, 10), "600", 6))
	store.putSchedule(jakartaSchedule())
	svc := newStoreService(store, services.WithClock(clockAt(fixedNow)))

	_, err := svc.RunOnce(context.Background(), domain.CatchUp)
	require.NoError(t, err)

	cfg := store.schedule(domain.DefaultScheduleName)
	require.NotNil(t, cfg.LastRunAt)
	assert.True(t, cfg.LastRunAt.Equal(fixedNow))
	require.NotNil(t, cfg.NextRunAt)
	// 17:00 in Jakarta, so the next window is 00:05 the following day (UTC+7).
	assert.True(t, cfg.NextRunAt.Equal(time.Date(2024, time.June, 15, 17, 5, 0, 0, time.UTC)), "next run %s", cfg.NextRunAt)
	assert.NotEmpty(t, cfg.LastRunResult)
}

func TestRunOnce_UsesScheduleTimezoneForCurrentPeriod(t *testing.T) {
	// 20:00 UTC on 30 June is already 1 July in Jakarta.
	now := time.Date(2024, time.June, 30, 20, 0, 0, 0, time.UTC)
	asset := newAsset("a1", date(2024, time.May, 10), "1200", 12)

	withSchedule := newMemoryStore(asset)
	withSchedule.putSchedule(jakartaSchedule())
	_, err := newStoreService(withSchedule, services.WithClock(clockAt(now))).RunOnce(context.Background(), domain.CatchUp)
	require.NoError(t, err)
	assert.Equal(t, 2, withSchedule.entryCount())

	withoutSchedule := newMemoryStore(asset)
	_, err = newStoreService(withoutSchedule, services.WithClock(clockAt(now))).RunOnce(context.Background(), domain.CatchUp)
	require.NoError(t, err)
	assert.Equal(t, 1, withoutSchedule.entryCount())
}
