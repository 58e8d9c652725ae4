package cases

import (
	"context"
	"testing"
	"time"

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

func (m *MockRepository) Create(ctx context.Context, c *Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Case), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter Filter) ([]Case, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]Case), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Update(ctx context.Context, c *Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateStatusHistory(ctx context.Context, h *CaseStatusHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CaseStatusChanged(ctx context.Context, phone, caseNumber, status string) error {
	args := m.Called(ctx, phone, caseNumber, status)
	return args.Error(0)
}

func officialActor() Actor {
	return Actor{UserID: uuid.New(), Role: auth.RoleOfficial, FullName: "Officer Sharma"}
}

func validCreateRequest() CreateCaseRequest {
	return CreateCaseRequest{
		VictimName:          "Asha Devi",
		VictimAadhaar:       "123456789012",
		VictimPhone:         "+919876543210",
		IncidentDescription: "Assault near market",
		IncidentDate:        time.Now().Add(-48 * time.Hour),
		IncidentLocation:    "Jaipur",
		Stage:               StageFIR,
		CompensationAmount:  50000,
		BankAccountNumber:   "12345678901",
		IFSCCode:            "SBIN0001234",
	}
}

func TestCreateCase(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()
	actor := officialActor()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*cases.Case")).Return(nil)
	mockRepo.On("CreateStatusHistory", ctx, mock.AnythingOfType("*cases.CaseStatusHistory")).Return(nil)

	c, err := service.CreateCase(ctx, actor, validCreateRequest())

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, c.Status)
	assert.Contains(t, c.CaseNumber, "FC-")
	assert.Equal(t, &actor.UserID, c.CreatedByUserID)
	mockRepo.AssertExpectations(t)
}

func TestCreateCaseRequiresOfficial(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	victim := Actor{UserID: uuid.New(), Role: auth.RoleVictim}
	_, err := service.CreateCase(context.Background(), victim, validCreateRequest())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateCaseRejectsBadAadhaar(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())

	req := validCreateRequest()
	req.VictimAadhaar = "1234"
	_, err := service.CreateCase(context.Background(), officialActor(), req)

	assert.Error(t, err)
}

func TestUpdateCaseStatusTransition(t *testing.T) {
	mockRepo := new(MockRepository)
	mockNotifier := new(MockNotifier)
	service := NewService(mockRepo, mockNotifier, zap.NewNop())
	ctx := context.Background()
	actor := officialActor()

	caseID := uuid.New()
	existing := &Case{
		ID:          caseID,
		CaseNumber:  "FC-20260101000000",
		Status:      StatusPending,
		VictimPhone: "+919876543210",
	}

	newStatus := StatusUnderReview
	mockRepo.On("GetByID", ctx, caseID).Return(existing, nil)
	mockRepo.On("CreateStatusHistory", ctx, mock.AnythingOfType("*cases.CaseStatusHistory")).Return(nil)
	mockRepo.On("Update", ctx, existing).Return(nil)
	mockNotifier.On("CaseStatusChanged", ctx, "+919876543210", "FC-20260101000000", "UNDER_REVIEW").Return(nil)

	updated, err := service.UpdateCase(ctx, actor, caseID, UpdateCaseRequest{Status: &newStatus})

	assert.NoError(t, err)
	assert.Equal(t, StatusUnderReview, updated.Status)
	mockNotifier.AssertExpectations(t)
}

func TestUpdateCaseRejectsInvalidTransition(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	caseID := uuid.New()
	existing := &Case{ID: caseID, Status: StatusPending}

	completed := StatusCompleted
	mockRepo.On("GetByID", ctx, caseID).Return(existing, nil)

	_, err := service.UpdateCase(ctx, officialActor(), caseID, UpdateCaseRequest{Status: &completed})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestVictimVisibilityScoping(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	victim := Actor{UserID: uuid.New(), Role: auth.RoleVictim, Phone: "+919876543210", Email: "asha@example.com"}

	mockRepo.On("List", ctx, mock.MatchedBy(func(f Filter) bool {
		return f.VictimPhone == victim.Phone && f.VictimEmail == victim.Email
	})).Return([]Case{}, int64(0), nil)

	_, err := service.ListCases(ctx, victim, nil, nil, 1, 10)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestVictimCannotReadOthersCase(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	caseID := uuid.New()
	mockRepo.On("GetByID", ctx, caseID).Return(&Case{
		ID:          caseID,
		VictimPhone: "+911111111111",
		VictimEmail: "other@example.com",
	}, nil)

	victim := Actor{UserID: uuid.New(), Role: auth.RoleVictim, Phone: "+919876543210", Email: "asha@example.com"}
	_, err := service.GetCase(ctx, victim, caseID)

	assert.ErrorIs(t, err, ErrForbidden)
}
