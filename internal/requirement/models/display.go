package models

// DisplayStatus extends Status with the escalated overlay for presentation
// layers. Escalated is never stored; it is recomputed from the urgency
// ordering on every read.
type DisplayStatus string

const DisplayEscalated DisplayStatus = "escalated"

// Escalated reports whether a requirement in this status needs urgent human
// attention. Rejected and expired requirements block the compliance path
// until someone acts.
func (s Status) Escalated() bool {
	return urgencyRank[s] >= urgencyRank[StatusRejected]
}

// Display returns the presentation status: the escalated overlay when it
// applies, otherwise the stored status verbatim.
func (s Status) Display() DisplayStatus {
	if s.Escalated() {
		return DisplayEscalated
	}
	return DisplayStatus(s)
}

// LabelKey returns a stable translation key for UI layers. The engine does
// not prescribe label text, only the key space.
func (s Status) LabelKey() string {
	return "requirement.status." + string(s)
}
