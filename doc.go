// Package leveling allocates the work of tasks over pools of resources,
// leveling each day's hours so that the least loaded resources receive work
// first, and reports the resulting load as timelines of load periods.
//
// End-users typically interact with the engine via the Service facade:
//
//	srv := leveling.New()
//	g, _ := srv.Allocate(ctx, aTask, workers, unit.Amount(2))
//	timeline, _ := srv.ResourceTimeline(ctx, worker, from, to)
//
// Plans (calendars, resources and tasks described in YAML) can be loaded
// and run as a whole:
//
//	p, _ := srv.LoadPlan(ctx, "shipyard.yaml")
//	report, _ := srv.RunPlan(ctx, p)
package leveling
