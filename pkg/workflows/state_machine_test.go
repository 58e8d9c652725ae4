package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseLifecycleTransitions(t *testing.T) {
	sm := NewCaseStateMachine()

	assert.True(t, sm.CanTransition("PENDING", "UNDER_REVIEW"))
	assert.True(t, sm.CanTransition("PENDING", "REJECTED"))
	assert.True(t, sm.CanTransition("UNDER_REVIEW", "APPROVED"))
	assert.True(t, sm.CanTransition("APPROVED", "PAYMENT_PROCESSING"))
	assert.True(t, sm.CanTransition("PAYMENT_PROCESSING", "COMPLETED"))
}

func TestRejectedCaseCanBeReopened(t *testing.T) {
	sm := NewCaseStateMachine()
	assert.True(t, sm.CanTransition("REJECTED", "UNDER_REVIEW"))
}

func TestInvalidTransitions(t *testing.T) {
	sm := NewCaseStateMachine()

	assert.False(t, sm.CanTransition("PENDING", "COMPLETED"))
	assert.False(t, sm.CanTransition("PENDING", "APPROVED"))
	assert.False(t, sm.CanTransition("APPROVED", "REJECTED"))
	assert.False(t, sm.CanTransition("COMPLETED", "PENDING"))
	assert.False(t, sm.CanTransition("UNKNOWN", "PENDING"))
}

func TestGetAllowedTransitions(t *testing.T) {
	sm := NewCaseStateMachine()

	assert.ElementsMatch(t, []string{"UNDER_REVIEW", "REJECTED"}, sm.GetAllowedTransitions("PENDING"))
	assert.Empty(t, sm.GetAllowedTransitions("COMPLETED"))
	assert.Empty(t, sm.GetAllowedTransitions("UNKNOWN"))
}
