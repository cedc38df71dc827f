// Package progress keeps counters of a plan run (tasks allocated, failed,
// days leveled) in the context so that callers can observe long plans.
package progress
