package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

func TestSimulateModeWhenUnconfigured(t *testing.T) {
	sender := new(MockSender)
	service := NewService(nil, ProviderConfig{}, sender, zap.NewNop())

	err := service.CaseStatusChanged(context.Background(), "+919876543210", "FC-20260101000000", "APPROVED")

	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaseStatusMessage(t *testing.T) {
	sender := new(MockSender)
	cfg := ProviderConfig{AccountSID: "sid", AuthToken: "token"}
	service := NewService(nil, cfg, sender, zap.NewNop())

	sender.On("Send", mock.Anything, "+919876543210",
		"Good news. Your case FC-20260101000000 has been approved for compensation.").Return(nil)

	err := service.CaseStatusChanged(context.Background(), "+919876543210", "FC-20260101000000", "APPROVED")

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestUnknownStatusFallsBackToGenericMessage(t *testing.T) {
	sender := new(MockSender)
	cfg := ProviderConfig{AccountSID: "sid", AuthToken: "token"}
	service := NewService(nil, cfg, sender, zap.NewNop())

	sender.On("Send", mock.Anything, "+919876543210", mock.MatchedBy(func(msg string) bool {
		return len(msg) > 0
	})).Return(nil)

	err := service.CaseStatusChanged(context.Background(), "+919876543210", "FC-1", "ARCHIVED")

	assert.NoError(t, err)
}

func TestSendFailureReturnsError(t *testing.T) {
	sender := new(MockSender)
	cfg := ProviderConfig{AccountSID: "sid", AuthToken: "token"}
	service := NewService(nil, cfg, sender, zap.NewNop())

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("provider down"))

	err := service.GrievanceFiled(context.Background(), "+919876543210", "GR-1", "HIGH")

	assert.Error(t, err)
}
