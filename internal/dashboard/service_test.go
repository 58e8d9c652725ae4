package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"fairclaim/portal-backend/internal/auth"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CountCases(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CasesByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockRepository) CasesByStage(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockRepository) FundStatistics(ctx context.Context) (FundStatistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(FundStatistics), args.Error(1)
}

func (m *MockRepository) GrievanceCounters(ctx context.Context) (GrievanceCounters, error) {
	args := m.Called(ctx)
	return args.Get(0).(GrievanceCounters), args.Error(1)
}

func (m *MockRepository) CountCasesForVictim(ctx context.Context, phone, email string) (int, error) {
	args := m.Called(ctx, phone, email)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountGrievancesForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountOpenGrievances(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestGetStats(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("CountCases", ctx).Return(42, nil)
	mockRepo.On("CasesByStatus", ctx).Return(map[string]int{"PENDING": 30, "APPROVED": 12}, nil)
	mockRepo.On("CasesByStage", ctx).Return(map[string]int{"FIR": 40, "CONVICTION": 2}, nil)
	mockRepo.On("FundStatistics", ctx).Return(FundStatistics{TotalAllocated: 100000, TotalDisbursed: 25000, Pending: 75000}, nil)
	mockRepo.On("GrievanceCounters", ctx).Return(GrievanceCounters{Total: 5, Open: 3, HighPriority: 1}, nil)

	stats, err := service.GetStats(ctx, auth.RoleOfficial)

	assert.NoError(t, err)
	assert.Equal(t, 42, stats.TotalCases)
	assert.Equal(t, 30, stats.StatusBreakdown["PENDING"])
	assert.Equal(t, 75000.0, stats.FundStatistics.Pending)
	assert.Equal(t, "OFFICIAL", stats.UserRole)
}

func TestGetUserStatsVictim(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("CountCasesForVictim", ctx, "+919876543210", "asha@example.com").Return(2, nil)
	mockRepo.On("CountGrievancesForUser", ctx, userID).Return(1, nil)

	stats, err := service.GetUserStats(ctx, userID, auth.RoleVictim, "+919876543210", "asha@example.com")

	assert.NoError(t, err)
	victimStats, ok := stats.(*VictimStats)
	assert.True(t, ok)
	assert.Equal(t, 2, victimStats.MyCases)
	assert.Equal(t, 1, victimStats.MyGrievances)
}

func TestGetUserStatsOfficial(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("CountCases", ctx).Return(42, nil)
	mockRepo.On("CountOpenGrievances", ctx).Return(7, nil)

	stats, err := service.GetUserStats(ctx, userID, auth.RoleOfficial, "", "")

	assert.NoError(t, err)
	officialStats, ok := stats.(*OfficialStats)
	assert.True(t, ok)
	assert.Equal(t, 42, officialStats.ManageableCases)
	assert.Equal(t, 7, officialStats.PendingGrievances)
}
