package workflows

// StateMachine enforces case status transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewCaseStateMachine returns the compensation-case lifecycle
func NewCaseStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			"PENDING":            {"UNDER_REVIEW", "REJECTED"},
			"UNDER_REVIEW":       {"APPROVED", "REJECTED"},
			"APPROVED":           {"PAYMENT_PROCESSING"},
			"REJECTED":           {"UNDER_REVIEW"}, // Allow re-opening on appeal
			"PAYMENT_PROCESSING": {"COMPLETED"},
			"COMPLETED":          {},
		},
	}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}
