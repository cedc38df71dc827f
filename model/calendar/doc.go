// Package calendar defines the workable-hours capability consumed by the
// allocation engine together with the calendar shapes a planner usually
// needs: the same hours every day, per-weekday hours, exception overrides
// and composites of several calendars.
//
// Days are represented as time.Time values truncated to midnight UTC; use
// Day or Date to build them.
package calendar
