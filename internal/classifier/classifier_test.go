package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortTextDefaultsToLow(t *testing.T) {
	c := New()

	p := c.ClassifyPriority("", "", "")
	assert.Equal(t, PriorityLow, p)

	res := c.ClassifyWithConfidence("hi", "", "")
	assert.Equal(t, PriorityLow, res.Priority)
	assert.Equal(t, 0.5, res.Confidence)
}

func TestLifeThreatClassifiesCritical(t *testing.T) {
	c := New()

	p := c.ClassifyPriority(
		"Death threat from accused",
		"The accused is threatening to kill the victim, family in grave danger, needs urgent protection now",
		"safety")

	assert.Equal(t, PriorityCritical, p)
}

func TestAdministrativeDelayClassifiesMedium(t *testing.T) {
	c := New()

	p := c.ClassifyPriority(
		"Payment delayed",
		"Compensation payment delayed, pending verification issue, case status not updated, waiting for officer response",
		"payment")

	assert.Equal(t, PriorityMedium, p)
}

func TestScoresNormalized(t *testing.T) {
	c := New()

	res := c.ClassifyWithConfidence(
		"General inquiry",
		"Question about case status information and procedure timeline",
		"inquiry")

	var total float64
	for _, s := range res.Scores {
		assert.GreaterOrEqual(t, s, 0.0)
		total += s
	}
	assert.InDelta(t, 1.0, total, 0.01)
	assert.NotEmpty(t, res.Explanation)
}

func TestIdenticalTemplateScoresHighest(t *testing.T) {
	c := New()

	res := c.ClassifyWithConfidence(
		"life threatening emergency situation requires immediate action",
		"",
		"")

	assert.Equal(t, PriorityCritical, res.Priority)
}
