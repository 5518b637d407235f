// Package progress implements the session aggregation engine.
//
// The engine turns a raw log of completed focus sessions into
// calendar-bucketed summaries and a consecutive-day streak. All
// computation is stateless and happens per invocation: callers pass
// the session window and the current time, and recomputing with
// unchanged input yields identical output.
//
// Calendar interpretation is the server's local timezone throughout.
package progress

import (
	"sort"
	"time"

	"github.com/kpom/kpom/internal/model"
)

const (
	// dayFormat keys daily buckets. ISO dates sort chronologically.
	dayFormat = "2006-01-02"
	// monthFormat keys monthly buckets.
	monthFormat = "2006-01"

	// HistoryWindowDays bounds how far back the engine looks.
	// Covers the twelve-month view; a streak longer than the window
	// is reported as the window length.
	HistoryWindowDays = 366

	weekWindowDays  = 7
	monthWindowDays = 30
	yearWindowMonths = 12
)

// DailyBuckets partitions sessions into per-day totals over a window
// of the trailing `days` calendar days ending today (inclusive).
//
// The result is sparse: days with no sessions have no entry, and a
// session with zero or negative minutes never creates one. Callers
// must treat missing days as zero.
func DailyBuckets(sessions []model.Session, now time.Time, days int) map[string]int {
	windowStart := startOfDay(now).AddDate(0, 0, -(days - 1))
	windowEnd := startOfDay(now).AddDate(0, 0, 1)

	buckets := make(map[string]int)
	for _, s := range sessions {
		if s.FocusMinutes <= 0 {
			continue
		}
		t := s.FinishedAt.Local()
		if t.Before(windowStart) || !t.Before(windowEnd) {
			continue
		}
		buckets[t.Format(dayFormat)] += s.FocusMinutes
	}
	return buckets
}

// TodayTotal returns the minutes bucketed on the current calendar day.
func TodayTotal(buckets map[string]int, now time.Time) int {
	return buckets[now.Format(dayFormat)]
}

// Streak counts consecutive days with at least one session, walking
// backward from today. Today itself counts only if it already has a
// bucket entry; the walk stops at the first empty day. A day present
// with a zero total breaks the streak exactly like an absent day.
func Streak(buckets map[string]int, now time.Time) int {
	streak := 0
	day := startOfDay(now)
	for streak < HistoryWindowDays {
		if buckets[day.Format(dayFormat)] <= 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// MonthlyBuckets rolls daily buckets up into the twelve calendar
// months ending at the current month, oldest first.
//
// Unlike the daily views the result is dense: every month appears,
// zero-initialized, so the output always has exactly twelve entries.
// Daily buckets outside the twelve-month window are ignored.
func MonthlyBuckets(daily map[string]int, now time.Time) []model.MonthTotal {
	months := make([]model.MonthTotal, 0, yearWindowMonths)
	slot := make(map[string]int, yearWindowMonths)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := yearWindowMonths - 1; i >= 0; i-- {
		period := first.AddDate(0, -i, 0).Format(monthFormat)
		slot[period] = len(months)
		months = append(months, model.MonthTotal{Period: period})
	}

	for day, total := range daily {
		period := day[:len(monthFormat)]
		if idx, ok := slot[period]; ok {
			months[idx].TotalMinutes += total
		}
	}
	return months
}

// WeekAverage computes the average daily minutes over a trailing
// seven-day window, dividing by the number of days that actually have
// sessions rather than by seven. Two active days out of seven yield
// an average over two days; empty days never dilute the figure.
// Returns 0 when the window has no sessions.
func WeekAverage(weekBuckets map[string]int) float64 {
	if len(weekBuckets) == 0 {
		return 0
	}
	total := 0
	for _, minutes := range weekBuckets {
		total += minutes
	}
	return float64(total) / float64(len(weekBuckets))
}

// BuildSummary computes the full progress summary from a session
// window. Sessions older than HistoryWindowDays are ignored.
func BuildSummary(sessions []model.Session, now time.Time) model.Summary {
	week := DailyBuckets(sessions, now, weekWindowDays)
	month := DailyBuckets(sessions, now, monthWindowDays)
	year := DailyBuckets(sessions, now, HistoryWindowDays)

	return model.Summary{
		Streak:         Streak(year, now),
		TodayMinutes:   TodayTotal(week, now),
		WeekAvgMinutes: WeekAverage(week),
		WeekHistory:    sortedDayTotals(week),
		MonthHistory:   sortedDayTotals(month),
		YearHistory:    MonthlyBuckets(year, now),
	}
}

// sortedDayTotals flattens a sparse bucket map into an ascending slice.
func sortedDayTotals(buckets map[string]int) []model.DayTotal {
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	totals := make([]model.DayTotal, 0, len(days))
	for _, day := range days {
		totals = append(totals, model.DayTotal{Day: day, TotalMinutes: buckets[day]})
	}
	return totals
}

func startOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
