package clock

import "time"

// NowFunc returns the current time; tests override it to pin allocation timestamps.
var NowFunc = time.Now

// Now returns NowFunc() in UTC.
func Now() time.Time { return NowFunc().UTC() }
