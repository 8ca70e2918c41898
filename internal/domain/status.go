package domain

// RequestStatus tracks the lifecycle of the most recent server round-trip.
// A single status is kept; when operations overlap, the last one to resolve
// wins.
type RequestStatus string

const (
	StatusIdle      RequestStatus = "idle"
	StatusLoading   RequestStatus = "loading"
	StatusSucceeded RequestStatus = "succeeded"
	StatusFailed    RequestStatus = "failed"
)
