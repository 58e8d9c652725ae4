package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(repo Repository) Service {
	return NewService(repo, NewTokenIssuer("test-secret", 60), zap.NewNop())
}

func TestRegister(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(nil, ErrUserNotFound)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*auth.User")).Return(nil)

	user, err := service.Register(ctx, RegisterRequest{
		Email:         "asha@example.com",
		Password:      "str0ngpass",
		FullName:      "Asha Devi",
		AadhaarNumber: "123456789012",
	})

	assert.NoError(t, err)
	assert.Equal(t, RoleVictim, user.Role)
	assert.NotEqual(t, "str0ngpass", user.HashedPassword)
	mockRepo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(&User{}, nil)

	_, err := service.Register(ctx, RegisterRequest{
		Email:    "asha@example.com",
		Password: "str0ngpass",
		FullName: "Asha Devi",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsBadAadhaar(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(nil, ErrUserNotFound)

	_, err := service.Register(ctx, RegisterRequest{
		Email:         "asha@example.com",
		Password:      "str0ngpass",
		FullName:      "Asha Devi",
		AadhaarNumber: "1234",
	})

	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("str0ngpass"), bcrypt.DefaultCost)
	user := &User{
		ID:             uuid.New(),
		Email:          "asha@example.com",
		HashedPassword: string(hashed),
		Role:           RoleVictim,
		IsActive:       true,
	}

	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(user, nil)

	resp, err := service.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "str0ngpass"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("str0ngpass"), bcrypt.DefaultCost)
	user := &User{Email: "asha@example.com", HashedPassword: string(hashed), IsActive: true}

	mockRepo.On("GetByEmail", ctx, "asha@example.com").Return(user, nil)

	_, err := service.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 60)
	user := &User{ID: uuid.New(), Email: "asha@example.com", Role: RoleOfficial}

	token, err := issuer.Issue(user)
	assert.NoError(t, err)

	claims, err := issuer.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, RoleOfficial, claims.Role)
}
