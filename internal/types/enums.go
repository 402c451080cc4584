package types

import "fmt"

// Task / Project Task Status values
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusOnHold     = "On Hold"
	StatusClosed     = "Closed"
	StatusCancelled  = "Cancelled"
)

// Priority values
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Member roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

// Account roles (signup/login)
const (
	AccountRoleUser  = "user"
	AccountRoleAdmin = "admin"
)

// Valid values for validation
var ValidStatuses = []string{
	StatusNotStarted, StatusInProgress, StatusReview,
	StatusOnHold, StatusClosed, StatusCancelled,
}

var ValidPriorities = []string{
	PriorityHigh, PriorityMedium, PriorityLow,
}

var ValidMemberRoles = []string{
	RoleMember, RoleAdmin, RoleOwner,
}

var ValidAccountRoles = []string{
	AccountRoleUser, AccountRoleAdmin,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidMemberRole(role string) bool {
	for _, r := range ValidMemberRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidAccountRole(role string) bool {
	for _, r := range ValidAccountRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseStatus returns the status unchanged when it is one of the known
// values, and an error otherwise. The server rejects bad values instead of
// substituting a default.
func ParseStatus(status string) (string, error) {
	if IsValidStatus(status) {
		return status, nil
	}
	return "", fmt.Errorf("unknown status %q", status)
}

// ParsePriority is the strict counterpart of NormalizePriority.
func ParsePriority(priority string) (string, error) {
	if IsValidPriority(priority) {
		return priority, nil
	}
	return "", fmt.Errorf("unknown priority %q", priority)
}

// NormalizeStatus substitutes Not Started for anything outside the enum.
// Used by clients before sending, never by the server.
func NormalizeStatus(status string) string {
	if IsValidStatus(status) {
		return status
	}
	return StatusNotStarted
}

// NormalizePriority substitutes Medium for anything outside the enum.
func NormalizePriority(priority string) string {
	if IsValidPriority(priority) {
		return priority
	}
	return PriorityMedium
}
