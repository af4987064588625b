package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"commitart/internal/grid"
	"commitart/internal/services"
)

const (
	// MinIntensity and MaxIntensity bound the per-cell commit multiplier.
	MinIntensity = 1
	MaxIntensity = 10

	// DateLayout is the civil date format used on the wire.
	DateLayout = "2006-01-02"
)

// Entry is one day of activity.
type Entry struct {
	Date  time.Time
	Count int
}

type entryJSON struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MarshalJSON encodes the entry as {"date":"YYYY-MM-DD","count":N}.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Date: e.Date.UTC().Format(DateLayout), Count: e.Count})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}
	e.Date = NormalizeDay(day)
	e.Count = raw.Count
	return nil
}

// Schedule is the ordered list of entries derived from a grid.
type Schedule []Entry

// TotalCommits sums the commit counts.
func (s Schedule) TotalCommits() int {
	total := 0
	for _, e := range s {
		total += e.Count
	}
	return total
}

// Span returns the earliest and latest entry dates. Both are zero for an
// empty schedule.
func (s Schedule) Span() (time.Time, time.Time) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}
	}
	first, last := s[0].Date, s[0].Date
	for _, e := range s[1:] {
		if e.Date.Before(first) {
			first = e.Date
		}
		if e.Date.After(last) {
			last = e.Date
		}
	}
	return first, last
}

// NormalizeDay returns noon UTC on t's calendar day, read in t's own location.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// NormalizeAnchor returns noon UTC on the Sunday on or before t's calendar day.
func NormalizeAnchor(t time.Time) time.Time {
	noon := NormalizeDay(t)
	return noon.AddDate(0, 0, -int(noon.Weekday()))
}

// Compile emits one entry per active cell in row-major order. The date of
// cell (row, col) is the normalized anchor plus col weeks and row days; the
// count is intensity. A blank grid yields an empty schedule. Intensity outside
// [MinIntensity, MaxIntensity] is a contract violation.
func Compile(g grid.Grid, anchor time.Time, intensity int) (Schedule, error) {
	if intensity < MinIntensity || intensity > MaxIntensity {
		return nil, services.Wrap(services.ErrContractViolation, "schedule", "compile",
			fmt.Sprintf("intensity %d outside [%d,%d]", intensity, MinIntensity, MaxIntensity), nil)
	}
	sunday := NormalizeAnchor(anchor)
	out := make(Schedule, 0, g.Active())
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Width(); col++ {
			if g.At(row, col) == 0 {
				continue
			}
			out = append(out, Entry{
				Date:  sunday.AddDate(0, 0, col*7+row),
				Count: intensity,
			})
		}
	}
	return out, nil
}

// ParseDate parses a strict YYYY-MM-DD civil date. Impossible dates such as
// 2025-02-30 are rejected rather than rolled over.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, services.Wrap(services.ErrValidation, "schedule", "parse date",
			fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", value), nil)
	}
	return t, nil
}
