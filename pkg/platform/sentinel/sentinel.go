package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
// - ErrUnavailable: the store could not be opened or is no longer reachable
// - ErrRateLimited: a limiter rejected the caller
//
// Input validation does not belong here; use pkg/domain-errors directly.
var (
	ErrUnavailable = errors.New("unavailable")
	ErrRateLimited = errors.New("rate limited")
)
