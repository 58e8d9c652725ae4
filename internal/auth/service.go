package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveUser       = errors.New("account is deactivated")
)

var aadhaarPattern = regexp.MustCompile(`^\d{12}$`)

type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FullName      string `json:"full_name" binding:"required"`
	Role          Role   `json:"role"`
	Phone         string `json:"phone"`
	AadhaarNumber string `json:"aadhaar_number"`
	Address       string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	AadhaarNumber *string `json:"aadhaar_number"`
	Address       *string `json:"address"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error)
}

type authService struct {
	repo   Repository
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(repo Repository, tokens *TokenIssuer, logger *zap.Logger) Service {
	return &authService{repo: repo, tokens: tokens, logger: logger}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if req.AadhaarNumber != "" && !aadhaarPattern.MatchString(req.AadhaarNumber) {
		return nil, errors.New("aadhaar number must be 12 digits")
	}

	role := req.Role
	if role == "" {
		role = RoleVictim
	}
	if role != RoleVictim && role != RoleOfficial {
		return nil, errors.New("invalid role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:          req.Email,
		HashedPassword: string(hashed),
		FullName:       req.FullName,
		Role:           role,
		Phone:          req.Phone,
		AadhaarNumber:  req.AadhaarNumber,
		Address:        req.Address,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.AadhaarNumber != nil {
		if *req.AadhaarNumber != "" && !aadhaarPattern.MatchString(*req.AadhaarNumber) {
			return nil, errors.New("aadhaar number must be 12 digits")
		}
		user.AadhaarNumber = *req.AadhaarNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
