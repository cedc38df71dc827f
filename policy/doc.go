// Package policy provides the overtime rules applied when a day's required
// hours exceed what a resource pool can absorb within its calendars.
package policy
