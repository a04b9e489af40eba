package recurrence

import (
	"testing"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func dailyAt(execTime, tz string) domain.ScheduleConfig {
	return domain.ScheduleConfig{
		Name:          "test",
		IsActive:      true,
		Frequency:     domain.Daily,
		ExecutionTime: execTime,
		Timezone:      tz,
	}
}

func TestExplain_Daily(t *testing.T) {
	jkt := mustLoad(t, "Asia/Jakarta")
	e := NewEvaluator(time.Minute, time.Minute)
	cfg := dailyAt("00:05", "Asia/Jakarta")

	tests := []struct {
		name   string
		now    time.Time
		due    bool
		reason string
	}{
		{"one second early", time.Date(2024, 6, 15, 0, 4, 59, 0, jkt), false, ReasonOutsideWindow},
		{"on the minute", time.Date(2024, 6, 15, 0, 5, 0, 0, jkt), true, ReasonDue},
		{"missed first poll", time.Date(2024, 6, 15, 0, 6, 59, 0, jkt), true, ReasonDue},
		{"window closed", time.Date(2024, 6, 15, 0, 7, 0, 0, jkt), false, ReasonOutsideWindow},
		{"evening", time.Date(2024, 6, 15, 19, 0, 0, 0, jkt), false, ReasonOutsideWindow},
		// 17:05 UTC is 00:05 the next day in Jakarta.
		{"utc clock", time.Date(2024, 6, 14, 17, 5, 30, 0, time.UTC), true, ReasonDue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.Explain(cfg, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.due, d.Due)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, jkt.String(), d.LocalNow.Location().String())
			if tt.due {
				require.NotNil(t, d.WindowStart)
				require.NotNil(t, d.WindowEnd)
				assert.Equal(t, 0, d.WindowStart.Hour())
				assert.Equal(t, 5, d.WindowStart.Minute())
				assert.Equal(t, 2*time.Minute, d.WindowEnd.Sub(*d.WindowStart))
			}
		})
	}
}

func TestExplain_AlreadyRan(t *testing.T) {
	jkt := mustLoad(t, "Asia/Jakarta")
	e := NewEvaluator(time.Minute, time.Minute)
	now := time.Date(2024, 6, 15, 0, 6, 0, 0, jkt)

	cfg := dailyAt("00:05", "Asia/Jakarta")
	ranThisWindow := time.Date(2024, 6, 15, 0, 5, 10, 0, jkt)
	cfg.LastRunAt = &ranThisWindow

	d, err := e.Explain(cfg, now)
	require.NoError(t, err)
	assert.False(t, d.Due)
	assert.Equal(t, ReasonAlreadyRan, d.Reason)

	ranYesterday := time.Date(2024, 6, 14, 0, 5, 3, 0, jkt)
	cfg.LastRunAt = &ranYesterday
	d, err = e.Explain(cfg, now)
	require.NoError(t, err)
	assert.True(t, d.Due)
}

func TestExplain_WeeklyAndMonthly(t *testing.T) {
	jkt := mustLoad(t, "Asia/Jakarta")
	e := NewEvaluator(time.Minute, time.Minute)

	weekly := domain.ScheduleConfig{
		Name: "weekly", IsActive: true, Frequency: domain.Weekly,
		ExecutionTime: "08:00", Timezone: "UTC", DayOfWeek: 1,
	}
	due, err := e.IsDue(weekly, time.Date(2024, 6, 17, 8, 0, 30, 0, time.UTC)) // Monday
	require.NoError(t, err)
	assert.True(t, due)
	due, err = e.IsDue(weekly, time.Date(2024, 6, 18, 8, 0, 30, 0, time.UTC)) // Tuesday
	require.NoError(t, err)
	assert.False(t, due)

	monthly := domain.ScheduleConfig{
		Name: "monthly", IsActive: true, Frequency: domain.Monthly,
		ExecutionTime: "00:00", Timezone: "Asia/Jakarta", DayOfMonth: 1,
	}
	due, err = e.IsDue(monthly, time.Date(2024, 7, 1, 0, 0, 30, 0, jkt))
	require.NoError(t, err)
	assert.True(t, due)
	due, err = e.IsDue(monthly, time.Date(2024, 7, 2, 0, 0, 30, 0, jkt))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestExplain_ConfigurationErrorsFailClosed(t *testing.T) {
	e := NewEvaluator(time.Minute, time.Minute)
	now := time.Date(2024, 6, 15, 0, 5, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*domain.ScheduleConfig)
	}{
		{"unknown timezone", func(c *domain.ScheduleConfig) { c.Timezone = "Mars/Olympus_Mons" }},
		{"empty timezone", func(c *domain.ScheduleConfig) { c.Timezone = "" }},
		{"hour out of range", func(c *domain.ScheduleConfig) { c.ExecutionTime = "25:00" }},
		{"seconds", func(c *domain.ScheduleConfig) { c.ExecutionTime = "00:05:30" }},
		{"garbage time", func(c *domain.ScheduleConfig) { c.ExecutionTime = "noon" }},
		{"unknown frequency", func(c *domain.ScheduleConfig) { c.Frequency = "hourly" }},
		{"weekday out of range", func(c *domain.ScheduleConfig) { c.Frequency = domain.Weekly; c.DayOfWeek = 7 }},
		{"day of month zero", func(c *domain.ScheduleConfig) { c.Frequency = domain.Monthly; c.DayOfMonth = 0 }},
		{"day of month 31", func(c *domain.ScheduleConfig) { c.Frequency = domain.Monthly; c.DayOfMonth = 31 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := dailyAt("00:05", "UTC")
			tt.mutate(&cfg)

			d, err := e.Explain(cfg, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrConfiguration)
			assert.False(t, d.Due)
			assert.Equal(t, ReasonMisconfigured, d.Reason)
		})
	}
}

func TestExplain_InactiveIgnoresConfiguration(t *testing.T) {
	e := NewEvaluator(time.Minute, time.Minute)
	cfg := dailyAt("bogus", "Nowhere/Nothing")
	cfg.IsActive = false

	d, err := e.Explain(cfg, time.Now())
	require.NoError(t, err)
	assert.False(t, d.Due)
	assert.Equal(t, ReasonInactive, d.Reason)
}

func TestExplain_WiderWindow(t *testing.T) {
	e := NewEvaluator(5*time.Minute, 5*time.Minute)
	cfg := dailyAt("00:05", "UTC")

	due, err := e.IsDue(cfg, time.Date(2024, 6, 15, 0, 14, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, due)
	due, err = e.IsDue(cfg, time.Date(2024, 6, 15, 0, 15, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, due)
}

func TestNewEvaluator_Defaults(t *testing.T) {
	e := NewEvaluator(0, -time.Second)
	assert.Equal(t, time.Minute, e.PollInterval)
	assert.Equal(t, time.Duration(0), e.MisfireGrace)
}

func TestNextRunAt(t *testing.T) {
	cfg := dailyAt("00:05", "Asia/Jakarta")

	next, err := NextRunAt(cfg, time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, next.Equal(time.Date(2024, 6, 15, 17, 5, 0, 0, time.UTC)), "got %s", next)

	cfg.Timezone = "bad/zone"
	_, err = NextRunAt(cfg, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestParseExecutionTime(t *testing.T) {
	h, m, err := ParseExecutionTime("00:05")
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, 5, m)

	h, m, err = ParseExecutionTime("23:59:00")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)

	for _, bad := range []string{"", "24:00", "12:60", "12:00:01", "12"} {
		_, _, err := ParseExecutionTime(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
