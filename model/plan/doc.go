// Package plan defines the YAML document describing calendars, resources
// and tasks to level, and builds the corresponding domain objects.
//
//	name: shipyard
//	calendars:
//	  office:
//	    hoursPerDay: 8
//	    weekdays: [monday, tuesday, wednesday, thursday, friday]
//	    exceptions: {"2024-01-01": 0}
//	resources:
//	  - id: alice
//	    calendar: office
//	    criteria: [{type: skill, name: welder}]
//	    load: {"2024-01-08": 2}
//	tasks:
//	  - id: hull
//	    start: "2024-01-08"
//	    days: 5
//	    criteria: [{type: skill, name: welder}]
//	    unit: {amount: 2}
package plan
