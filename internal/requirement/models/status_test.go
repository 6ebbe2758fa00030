package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"missing accepts an upload", StatusMissing, StatusSubmitted, true},
		{"missing cannot jump to valid", StatusMissing, StatusValid, false},
		{"submitted can enter review", StatusSubmitted, StatusInReview, true},
		{"submitted can be accepted directly", StatusSubmitted, StatusValid, true},
		{"submitted can be rejected directly", StatusSubmitted, StatusRejected, true},
		{"in review resolves to valid", StatusInReview, StatusValid, true},
		{"in review resolves to rejected", StatusInReview, StatusRejected, true},
		{"in review cannot revert to submitted", StatusInReview, StatusSubmitted, false},
		{"valid decays to expiring", StatusValid, StatusExpiring, true},
		{"valid decays to expired", StatusValid, StatusExpired, true},
		{"expiring decays to expired", StatusExpiring, StatusExpired, true},
		{"expiring cannot recover without upload", StatusExpiring, StatusValid, false},
		{"rejected is re-enterable via upload", StatusRejected, StatusSubmitted, true},
		{"expired is re-enterable via upload", StatusExpired, StatusSubmitted, true},
		{"expired is not terminal but cannot self heal", StatusExpired, StatusValid, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for status := range transitions {
		assert.True(t, status.IsValidStatus(), "status %s", status)
	}
	assert.False(t, Status("archived").IsValidStatus())
	assert.False(t, Status("").IsValidStatus())
}

// TestUrgencyOrdering pins the full attention ordering; the warning sort and
// the escalation overlay both depend on it.
func TestUrgencyOrdering(t *testing.T) {
	ordered := []Status{
		StatusValid,
		StatusExpiring,
		StatusMissing,
		StatusSubmitted,
		StatusInReview,
		StatusRejected,
		StatusExpired,
	}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i].MoreUrgent(ordered[i-1]),
			"%s should outrank %s", ordered[i], ordered[i-1])
	}
	assert.False(t, StatusValid.MoreUrgent(StatusValid))
}

func TestEscalatedOverlay(t *testing.T) {
	assert.True(t, StatusRejected.Escalated())
	assert.True(t, StatusExpired.Escalated())
	assert.False(t, StatusMissing.Escalated())
	assert.False(t, StatusInReview.Escalated())
	assert.False(t, StatusExpiring.Escalated())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, DisplayEscalated, StatusExpired.Display())
	assert.Equal(t, DisplayEscalated, StatusRejected.Display())
	assert.Equal(t, DisplayStatus(StatusValid), StatusValid.Display())
	assert.Equal(t, DisplayStatus(StatusExpiring), StatusExpiring.Display())
}

func TestLabelKey(t *testing.T) {
	assert.Equal(t, "requirement.status.in_review", StatusInReview.LabelKey())
}
