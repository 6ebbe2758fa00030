package models

// Status is the lifecycle state of a document requirement.
type Status string

const (
	StatusMissing   Status = "missing"
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in_review"
	StatusValid     Status = "valid"
	StatusRejected  Status = "rejected"
	StatusExpiring  Status = "expiring"
	StatusExpired   Status = "expired"
)

// validStatuses is the single source of truth for valid statuses.
var validStatuses = map[Status]bool{
	StatusMissing:   true,
	StatusSubmitted: true,
	StatusInReview:  true,
	StatusValid:     true,
	StatusRejected:  true,
	StatusExpiring:  true,
	StatusExpired:   true,
}

// IsValidStatus checks if the status is one of the supported enum values.
func (s Status) IsValidStatus() bool {
	return validStatuses[s]
}

func (s Status) String() string {
	return string(s)
}

// transitions enumerates the allowed state machine edges. There is no
// terminal state: expired and rejected are always re-enterable via upload.
var transitions = map[Status][]Status{
	StatusMissing:   {StatusSubmitted},
	StatusSubmitted: {StatusInReview, StatusValid, StatusRejected},
	StatusInReview:  {StatusValid, StatusRejected},
	StatusValid:     {StatusExpiring, StatusExpired},
	StatusExpiring:  {StatusExpired},
	StatusRejected:  {StatusSubmitted},
	StatusExpired:   {StatusSubmitted},
}

// CanTransitionTo checks whether the state machine allows moving from s to
// target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// urgencyRank orders statuses by how much human attention they need, least to
// most urgent. Warnings are emitted most-urgent-first and escalation overlays
// derive from this ordering.
var urgencyRank = map[Status]int{
	StatusValid:     0,
	StatusExpiring:  1,
	StatusMissing:   2,
	StatusSubmitted: 3,
	StatusInReview:  4,
	StatusRejected:  5,
	StatusExpired:   6,
}

// UrgencyRank returns the attention ordering of the status.
func (s Status) UrgencyRank() int {
	return urgencyRank[s]
}

// MoreUrgent reports whether s needs attention ahead of other.
func (s Status) MoreUrgent(other Status) bool {
	return urgencyRank[s] > urgencyRank[other]
}
