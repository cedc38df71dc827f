package calendar

import "time"

// DateLayout is the layout used for days in plans and reports.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Days returns every day in [start, end) in ascending order.
func Days(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if !start.Before(end) {
		return nil
	}
	var result []time.Time
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		result = append(result, day)
	}
	return result
}
