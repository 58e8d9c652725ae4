package cases

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/pkg/workflows"
)

var (
	ErrForbidden         = errors.New("insufficient permissions")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var (
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Actor is the authenticated caller as seen by the case service
type Actor struct {
	UserID   uuid.UUID
	Role     auth.Role
	FullName string
	Phone    string
	Email    string
}

// UserDirectory resolves token identities to full actor records
type UserDirectory interface {
	Lookup(ctx context.Context, id uuid.UUID) (Actor, error)
}

// Notifier sends status updates to victims
type Notifier interface {
	CaseStatusChanged(ctx context.Context, phone, caseNumber, status string) error
}

type CreateCaseRequest struct {
	VictimName          string    `json:"victim_name" binding:"required"`
	VictimAadhaar       string    `json:"victim_aadhaar" binding:"required"`
	VictimPhone         string    `json:"victim_phone" binding:"required"`
	VictimEmail         string    `json:"victim_email"`
	IncidentDescription string    `json:"incident_description" binding:"required"`
	IncidentDate        time.Time `json:"incident_date" binding:"required"`
	IncidentLocation    string    `json:"incident_location" binding:"required"`
	Stage               Stage     `json:"stage" binding:"required"`
	CompensationAmount  float64   `json:"compensation_amount" binding:"required"`
	BankAccountNumber   string    `json:"bank_account_number" binding:"required"`
	IFSCCode            string    `json:"ifsc_code" binding:"required"`
}

type UpdateCaseRequest struct {
	Status             *Status  `json:"status"`
	Stage              *Stage   `json:"stage"`
	AssignedOfficer    *string  `json:"assigned_officer"`
	Remarks            *string  `json:"remarks"`
	CompensationAmount *float64 `json:"compensation_amount"`
}

type CaseListResponse struct {
	Cases    []Case `json:"cases"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type Service interface {
	CreateCase(ctx context.Context, actor Actor, req CreateCaseRequest) (*Case, error)
	GetCase(ctx context.Context, actor Actor, id uuid.UUID) (*Case, error)
	ListCases(ctx context.Context, actor Actor, status *Status, stage *Stage, page, pageSize int) (*CaseListResponse, error)
	UpdateCase(ctx context.Context, actor Actor, id uuid.UUID, req UpdateCaseRequest) (*Case, error)
	DeleteCase(ctx context.Context, actor Actor, id uuid.UUID) error
	AttachDocuments(ctx context.Context, actor Actor, id uuid.UUID, paths []string) (*Case, error)
}

type caseService struct {
	repo         Repository
	notifier     Notifier
	stateMachine *workflows.StateMachine
	logger       *zap.Logger
}

func NewService(repo Repository, notifier Notifier, logger *zap.Logger) Service {
	return &caseService{
		repo:         repo,
		notifier:     notifier,
		stateMachine: workflows.NewCaseStateMachine(),
		logger:       logger,
	}
}

func generateCaseNumber() string {
	now := time.Now()
	return fmt.Sprintf("FC-%s%03d", now.Format("20060102150405"), now.Nanosecond()/1e6)
}

func (s *caseService) CreateCase(ctx context.Context, actor Actor, req CreateCaseRequest) (*Case, error) {
	if actor.Role != auth.RoleOfficial {
		return nil, ErrForbidden
	}
	if !aadhaarPattern.MatchString(req.VictimAadhaar) {
		return nil, errors.New("victim aadhaar must be 12 digits")
	}
	if !ifscPattern.MatchString(req.IFSCCode) {
		return nil, errors.New("invalid ifsc code")
	}
	switch req.Stage {
	case StageFIR, StageChargesheet, StageConviction:
	default:
		return nil, errors.New("invalid case stage")
	}

	c := &Case{
		CaseNumber:          generateCaseNumber(),
		VictimName:          req.VictimName,
		VictimAadhaar:       req.VictimAadhaar,
		VictimPhone:         req.VictimPhone,
		VictimEmail:         req.VictimEmail,
		IncidentDescription: req.IncidentDescription,
		IncidentDate:        req.IncidentDate,
		IncidentLocation:    req.IncidentLocation,
		Stage:               req.Stage,
		Status:              StatusPending,
		CompensationAmount:  req.CompensationAmount,
		BankAccountNumber:   req.BankAccountNumber,
		IFSCCode:            req.IFSCCode,
		CreatedByUserID:     &actor.UserID,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	history := &CaseStatusHistory{
		CaseID:    c.ID,
		Status:    StatusPending,
		ChangedAt: time.Now(),
		ChangedBy: actor.UserID,
	}
	if err := s.repo.CreateStatusHistory(ctx, history); err != nil {
		s.logger.Warn("failed to record status history", zap.Error(err))
	}

	s.logger.Info("case created",
		zap.String("case_number", c.CaseNumber),
		zap.String("created_by", actor.UserID.String()))

	return c, nil
}

func (s *caseService) GetCase(ctx context.Context, actor Actor, id uuid.UUID) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(actor, c) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *caseService) ListCases(ctx context.Context, actor Actor, status *Status, stage *Stage, page, pageSize int) (*CaseListResponse, error) {
	filter := Filter{
		Status:   status,
		Stage:    stage,
		Page:     page,
		PageSize: pageSize,
	}

	switch actor.Role {
	case auth.RoleVictim:
		filter.VictimPhone = actor.Phone
		filter.VictimEmail = actor.Email
	case auth.RoleOfficial:
		filter.CreatedByUserID = &actor.UserID
		filter.AssignedOfficer = actor.FullName
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return &CaseListResponse{Cases: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *caseService) UpdateCase(ctx context.Context, actor Actor, id uuid.UUID, req UpdateCaseRequest) (*Case, error) {
	if actor.Role != auth.RoleOfficial {
		return nil, ErrForbidden
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != c.Status {
		if !s.stateMachine.CanTransition(string(c.Status), string(*req.Status)) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, *req.Status)
		}
		c.Status = *req.Status

		history := &CaseStatusHistory{
			CaseID:    c.ID,
			Status:    *req.Status,
			ChangedAt: time.Now(),
			ChangedBy: actor.UserID,
		}
		if err := s.repo.CreateStatusHistory(ctx, history); err != nil {
			s.logger.Warn("failed to record status history", zap.Error(err))
		}

		if s.notifier != nil && c.VictimPhone != "" {
			if err := s.notifier.CaseStatusChanged(ctx, c.VictimPhone, c.CaseNumber, string(c.Status)); err != nil {
				s.logger.Warn("status notification failed",
					zap.String("case_number", c.CaseNumber), zap.Error(err))
			}
		}
	}
	if req.Stage != nil {
		c.Stage = *req.Stage
	}
	if req.AssignedOfficer != nil {
		c.AssignedOfficer = *req.AssignedOfficer
	}
	if req.Remarks != nil {
		c.Remarks = *req.Remarks
	}
	if req.CompensationAmount != nil {
		c.CompensationAmount = *req.CompensationAmount
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *caseService) DeleteCase(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.Role != auth.RoleOfficial {
		return ErrForbidden
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *caseService) AttachDocuments(ctx context.Context, actor Actor, id uuid.UUID, paths []string) (*Case, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(actor, c) {
		return nil, ErrForbidden
	}

	existing, err := decodeDocumentList(c.UploadedDocuments)
	if err != nil {
		return nil, err
	}
	existing = append(existing, paths...)

	encoded, err := encodeDocumentList(existing)
	if err != nil {
		return nil, err
	}
	c.UploadedDocuments = encoded
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *caseService) canAccess(actor Actor, c *Case) bool {
	switch actor.Role {
	case auth.RoleVictim:
		return (actor.Phone != "" && c.VictimPhone == actor.Phone) ||
			(actor.Email != "" && c.VictimEmail == actor.Email)
	case auth.RoleOfficial:
		if c.AssignedOfficer != "" && c.AssignedOfficer == actor.FullName {
			return true
		}
		return c.CreatedByUserID != nil && *c.CreatedByUserID == actor.UserID
	}
	return false
}
