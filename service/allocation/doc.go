// Package allocation implements generic resource allocation: the work of a
// task is spread day by day over a pool of interchangeable resources with a
// water-filling leveling algorithm, so that less busy resources absorb new
// work first.
//
// A Generic allocation is a single-writer aggregate. Allocate replaces every
// day assignment it previously produced; callers serialise concurrent use.
package allocation
