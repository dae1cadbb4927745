package dateutil

import "time"

// Layout is the only date format accepted on the wire.
const Layout = "2006-01-02"

// DaysPerYear is the ACT year length used for all year fractions.
const DaysPerYear = 365.25

// Parse parses "YYYY-MM-DD" without going through time.Parse layout handling.
// Returns zero time and false on invalid input, including impossible days such as 2025-02-30.
func Parse(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// Format renders t in Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Truncate drops the time of day, keeping the calendar date as seen in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths behaves like Excel's EDATE: the day is clamped to the last day of the
// target month instead of overflowing into the next one (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of whole months from start to end, counted
// the same way AddMonths steps: Aug 31 to Feb 28/29 is a full 6 months.
// Negative when end is before start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return -MonthsBetween(end, start)
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if AddMonths(start, months).After(end) {
		months--
	}
	return months
}

// Days returns the calendar days between two dates.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// YearFraction returns ACT/365.25 years from start to end.
func YearFraction(start, end time.Time) float64 {
	return Days(start, end) / DaysPerYear
}
