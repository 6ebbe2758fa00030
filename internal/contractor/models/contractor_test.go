package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "nachweis/pkg/domain-errors"
)

func boolPtr(v bool) *bool { return &v }

func TestNewContractor(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		contractor, err := NewContractor("Bau Müller GmbH", ComplianceFlags{}, now)
		require.NoError(t, err)
		assert.False(t, contractor.ID.IsZero())
		assert.Equal(t, ContractorStatusActive, contractor.Status)
		assert.True(t, contractor.IsActive())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewContractor("", ComplianceFlags{}, now)
		assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := NewContractor(strings.Repeat("a", 201), ComplianceFlags{}, now)
		assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})
}

func TestTristateOf(t *testing.T) {
	assert.Equal(t, TristateUnknown, TristateOf(nil))
	assert.Equal(t, TristateYes, TristateOf(boolPtr(true)))
	assert.Equal(t, TristateNo, TristateOf(boolPtr(false)))
}

func TestUpdateFlags(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	contractor, err := NewContractor("Bau Müller GmbH", ComplianceFlags{}, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	contractor.UpdateFlags(ComplianceFlags{HasNonEUWorkers: boolPtr(true)}, later)

	assert.Equal(t, TristateYes, TristateOf(contractor.Flags.HasNonEUWorkers))
	assert.Equal(t, TristateUnknown, TristateOf(contractor.Flags.RequiresEmployees))
	assert.Equal(t, later, contractor.UpdatedAt)
	assert.Equal(t, now, contractor.CreatedAt)
}
