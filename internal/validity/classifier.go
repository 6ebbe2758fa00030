package validity

import "time"

// DefaultLookaheadDays is the standard warning window for approaching
// expiries.
const DefaultLookaheadDays = 30

// IsExpired reports whether the expiry date has passed. A nil expiry never
// expires.
func IsExpired(validUntil *time.Time, now time.Time) bool {
	if validUntil == nil {
		return false
	}
	return validUntil.Before(now)
}

// IsExpiring reports whether the expiry date falls within the lookahead
// window: strictly after now, at most lookaheadDays ahead. A date exactly
// equal to now is not expiring; it is on the edge of expired and the next
// evaluation tick settles it.
func IsExpiring(validUntil *time.Time, now time.Time, lookaheadDays int) bool {
	if validUntil == nil {
		return false
	}
	delta := validUntil.Sub(now)
	return delta > 0 && delta <= time.Duration(lookaheadDays)*24*time.Hour
}
