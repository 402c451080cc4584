package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		got, err := ParseStatus(status)
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}

	_, err := ParseStatus("Done")
	assert.Error(t, err)
	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestParsePriority(t *testing.T) {
	for _, priority := range ValidPriorities {
		got, err := ParsePriority(priority)
		require.NoError(t, err)
		assert.Equal(t, priority, got)
	}

	_, err := ParsePriority("Urgent")
	assert.Error(t, err)
}

func TestNormalizeSubstitutesDefaults(t *testing.T) {
	assert.Equal(t, StatusInProgress, NormalizeStatus(StatusInProgress))
	assert.Equal(t, StatusNotStarted, NormalizeStatus("Done"))
	assert.Equal(t, StatusNotStarted, NormalizeStatus(""))

	assert.Equal(t, PriorityHigh, NormalizePriority(PriorityHigh))
	assert.Equal(t, PriorityMedium, NormalizePriority("Urgent"))
	assert.Equal(t, PriorityMedium, NormalizePriority(""))
}

func TestRoleValidation(t *testing.T) {
	assert.True(t, IsValidMemberRole(RoleOwner))
	assert.False(t, IsValidMemberRole("superuser"))

	assert.True(t, IsValidAccountRole(AccountRoleAdmin))
	assert.False(t, IsValidAccountRole(RoleOwner))
}
