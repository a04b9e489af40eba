package recurrence

import (
	"fmt"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/robfig/cron/v3"
)

// Reasons reported by Explain.
const (
	ReasonDue           = "due"
	ReasonInactive      = "inactive"
	ReasonMisconfigured = "misconfigured"
	ReasonOutsideWindow = "outside_window"
	ReasonAlreadyRan    = "already_ran"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Decision explains a due-ness evaluation without side effects.
type Decision struct {
	Due         bool       `json:"due"`
	Reason      string     `json:"reason"`
	LocalNow    time.Time  `json:"localNow"`
	WindowStart *time.Time `json:"windowStart,omitempty"`
	WindowEnd   *time.Time `json:"windowEnd,omitempty"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt   *time.Time `json:"nextRunAt,omitempty"`
}

// Evaluator decides whether a schedule is due. The due window opens at the
// scheduled instant and stays open for one polling interval plus the misfire
// grace, so a single missed tick is still picked up by the next one.
type Evaluator struct {
	PollInterval time.Duration
	MisfireGrace time.Duration
}

// NewEvaluator creates an Evaluator; non-positive intervals fall back to one minute.
func NewEvaluator(pollInterval, misfireGrace time.Duration) Evaluator {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	if misfireGrace < 0 {
		misfireGrace = 0
	}
	return Evaluator{PollInterval: pollInterval, MisfireGrace: misfireGrace}
}

// IsDue reports whether cfg should run at now. Configuration errors fail closed:
// the result is false and the error says why.
func (e Evaluator) IsDue(cfg domain.ScheduleConfig, now time.Time) (bool, error) {
	d, err := e.Explain(cfg, now)
	return d.Due, err
}

// Explain evaluates cfg at now and reports the window it matched, if any.
// NextRunAt on the config is never consulted.
func (e Evaluator) Explain(cfg domain.ScheduleConfig, now time.Time) (Decision, error) {
	d := Decision{LocalNow: now, LastRunAt: cfg.LastRunAt}
	if !cfg.IsActive {
		d.Reason = ReasonInactive
		return d, nil
	}

	sched, loc, err := Build(cfg)
	if err != nil {
		d.Reason = ReasonMisconfigured
		return d, err
	}

	local := now.In(loc)
	d.LocalNow = local
	next := sched.Next(local)
	d.NextRunAt = &next

	width := e.PollInterval + e.MisfireGrace
	start, ok := windowStart(sched, local, width)
	if !ok {
		d.Reason = ReasonOutsideWindow
		return d, nil
	}
	end := start.Add(width)
	d.WindowStart, d.WindowEnd = &start, &end

	if cfg.LastRunAt != nil && !cfg.LastRunAt.Before(start) {
		d.Reason = ReasonAlreadyRan
		return d, nil
	}
	d.Due = true
	d.Reason = ReasonDue
	return d, nil
}

// NextRunAt returns the scheduled instant of the next recurrence window after now.
func NextRunAt(cfg domain.ScheduleConfig, now time.Time) (time.Time, error) {
	sched, loc, err := Build(cfg)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(now.In(loc)), nil
}

// Build turns a schedule row into a cron schedule bound to its timezone.
func Build(cfg domain.ScheduleConfig) (cron.Schedule, *time.Location, error) {
	if cfg.Timezone == "" {
		return nil, nil, apperrors.NewConfigurationError("schedule %s has no timezone", cfg.Name)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError("schedule %s has unknown timezone %q: %v", cfg.Name, cfg.Timezone, err)
	}

	hour, minute, err := ParseExecutionTime(cfg.ExecutionTime)
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError("schedule %s: %v", cfg.Name, err)
	}

	var expr string
	switch cfg.Frequency {
	case domain.Daily:
		expr = fmt.Sprintf("%d %d * * *", minute, hour)
	case domain.Weekly:
		if cfg.DayOfWeek < 0 || cfg.DayOfWeek > 6 {
			return nil, nil, apperrors.NewConfigurationError("schedule %s has day_of_week %d outside 0-6", cfg.Name, cfg.DayOfWeek)
		}
		expr = fmt.Sprintf("%d %d * * %d", minute, hour, cfg.DayOfWeek)
	case domain.Monthly:
		if cfg.DayOfMonth < 1 || cfg.DayOfMonth > 28 {
			return nil, nil, apperrors.NewConfigurationError("schedule %s has day_of_month %d outside 1-28", cfg.Name, cfg.DayOfMonth)
		}
		expr = fmt.Sprintf("%d %d %d * *", minute, hour, cfg.DayOfMonth)
	default:
		return nil, nil, apperrors.NewConfigurationError("schedule %s has unknown frequency %q", cfg.Name, cfg.Frequency)
	}

	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError("schedule %s: %v", cfg.Name, err)
	}
	if spec, ok := sched.(*cron.SpecSchedule); ok {
		spec.Location = loc
	}
	return sched, loc, nil
}

// ParseExecutionTime accepts "HH:MM" or "HH:MM:00".
func ParseExecutionTime(s string) (hour, minute int, err error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, perr := time.Parse(layout, s)
		if perr != nil {
			continue
		}
		if t.Second() != 0 {
			return 0, 0, fmt.Errorf("execution time %q must fall on a minute boundary", s)
		}
		return t.Hour(), t.Minute(), nil
	}
	return 0, 0, fmt.Errorf("malformed execution time %q, expected HH:MM", s)
}

// windowStart finds a scheduled instant s with s <= local < s+width.
func windowStart(sched cron.Schedule, local time.Time, width time.Duration) (time.Time, bool) {
	minutes := int(width / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	base := local.Truncate(time.Minute)
	for k := 0; k < minutes; k++ {
		candidate := base.Add(-time.Duration(k) * time.Minute)
		if !sched.Next(candidate.Add(-time.Second)).Equal(candidate) {
			continue
		}
		if local.Before(candidate.Add(width)) {
			return candidate, true
		}
	}
	return time.Time{}, false
}
