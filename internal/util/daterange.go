package util

import "time"

// DateRange maps a dashboard time-range token ("day", "week", "month",
// "year") to an inclusive from/to pair formatted as YYYY-MM-DD. Unknown
// tokens behave like "day".
func DateRange(timeRange string, now time.Time) (from, to string) {
	start := now
	switch timeRange {
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "year":
		start = now.AddDate(-1, 0, 0)
	}
	return start.Format("2006-01-02"), now.Format("2006-01-02")
}
