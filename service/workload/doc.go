// Package workload turns allocations into load timelines and exposes the
// hours of other allocations as a resource's pre-existing load.
package workload
