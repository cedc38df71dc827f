// Package load models resource load reporting data: utilization levels,
// load periods and validated load timelines.
package load
