package session

import "time"

const (
	// DefaultWindow is the maximum number of turns retained per session.
	DefaultWindow = 20

	// DefaultTTL is how long an idle session survives before the
	// cleanup sweep removes it.
	DefaultTTL = 30 * time.Minute

	// DefaultCleanupInterval is how often idle sessions are swept.
	DefaultCleanupInterval = 5 * time.Minute
)
