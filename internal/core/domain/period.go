package domain

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// Period is one accounting interval (a calendar month).
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t, in t's own location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return PeriodOf(t), nil
}

// AddMonths returns the period n months after p (n may be negative).
func (p Period) AddMonths(n int) Period {
	idx := p.index() + n
	return Period{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// Next returns the following period.
func (p Period) Next() Period {
	return p.AddMonths(1)
}

// Before reports whether p is earlier than o.
func (p Period) Before(o Period) bool {
	return p.index() < o.index()
}

// After reports whether p is later than o.
func (p Period) After(o Period) bool {
	return p.index() > o.index()
}

// MonthsUntil returns the number of months from p to o (negative when o is earlier).
func (p Period) MonthsUntil(o Period) int {
	return o.index() - p.index()
}

// FirstDay returns midnight UTC on the first day of the period.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalText implements encoding.TextMarshaler so periods serialize as "YYYY-MM".
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(b []byte) error {
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Period) index() int {
	return p.Year*12 + int(p.Month) - 1
}
