package reservation

import "time"

type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusCommitted Status = "COMMITTED"
	StatusReleased  Status = "RELEASED"
	StatusExpired   Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusCommitted, StatusReleased, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible. COMMITTED
// is not terminal: it can still be released (refund path).
func (s Status) IsTerminal() bool {
	return s == StatusReleased || s == StatusExpired
}

const MinTTL = 60 * time.Second

// ClampTTL bounds a requested reservation TTL to [MinTTL, max]. Non-positive
// requested values fall back to the minimum.
func ClampTTL(requested, max time.Duration) time.Duration {
	if requested < MinTTL {
		return MinTTL
	}
	if max >= MinTTL && requested > max {
		return max
	}
	return requested
}
