package application

import "expvar"

// Counters published under /debug/vars as "registrations".
var metrics = expvar.NewMap("registrations")

const (
	metricSubmitted = "submitted"
	metricFailed    = "failed"
	metricShared    = "shared"
	metricInvalid   = "invalid"
	metricDeleted   = "deleted"
)
