package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownTypes(t *testing.T) {
	tests := []struct {
		typeID DocumentTypeID
		mode   RuleMode
		months int
	}{
		{TypeHaftpflicht, ModeFixedMonths, 12},
		{TypeUnbedenklichkeit, ModeFixedMonths, 3},
		{TypeGewerbeanmeldung, ModeNone, 0},
		{TypeHandelsregisterauszug, ModeMaxMonths, 3},
		{TypeFreistellung, ModeCustom, 36},
		{TypeA1Bescheinigung, ModeCustom, 24},
	}
	for _, tc := range tests {
		t.Run(tc.typeID.String(), func(t *testing.T) {
			rule := Resolve(tc.typeID)
			assert.Equal(t, tc.mode, rule.Mode)
			assert.Equal(t, tc.months, rule.Months)
		})
	}
}

// TestResolveTotality verifies the designed fallback path: unknown types get
// the wildcard rule, never a zero value.
func TestResolveTotality(t *testing.T) {
	for _, typeID := range []DocumentTypeID{"", "custom:project-42-safety-plan", "nonsense"} {
		rule := Resolve(typeID)
		assert.Equal(t, ModeFixedMonths, rule.Mode, "type %q", typeID)
		assert.Equal(t, 12, rule.Months, "type %q", typeID)
	}
}

func TestCustomRulesCarryNotes(t *testing.T) {
	assert.NotEmpty(t, Resolve(TypeFreistellung).Note)
	assert.NotEmpty(t, Resolve(TypeA1Bescheinigung).Note)
}

func TestHasExpiry(t *testing.T) {
	assert.True(t, HasExpiry(TypeHaftpflicht))
	assert.True(t, HasExpiry("custom:adhoc"))
	assert.False(t, HasExpiry(TypeGewerbeanmeldung))
}
