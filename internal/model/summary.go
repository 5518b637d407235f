package model

// DayTotal is one day's aggregated focus minutes.
// Day is formatted as "YYYY-MM-DD" in server-local time.
type DayTotal struct {
	Day          string `json:"day"`
	TotalMinutes int    `json:"totalMinutes"`
}

// MonthTotal is one calendar month's aggregated focus minutes.
// Period is formatted as "YYYY-MM".
type MonthTotal struct {
	Period       string `json:"period"`
	TotalMinutes int    `json:"totalMinutes"`
}

// Summary is the aggregated progress view returned to clients.
// It is derived on every request and never persisted or cached.
//
// WeekHistory and MonthHistory are sparse: days without sessions are
// absent and readers must treat missing days as zero. YearHistory is
// dense: always exactly twelve entries, zero months included. The
// asymmetry is deliberate and relied upon by the charting client.
type Summary struct {
	Streak         int          `json:"streak"`
	TodayMinutes   int          `json:"todayMinutes"`
	WeekAvgMinutes float64      `json:"weekAvgMinutes"`
	WeekHistory    []DayTotal   `json:"weekHistory"`
	MonthHistory   []DayTotal   `json:"monthHistory"`
	YearHistory    []MonthTotal `json:"yearHistory"`
}
