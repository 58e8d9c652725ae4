package grievances

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairclaim/portal-backend/internal/auth"
	"fairclaim/portal-backend/internal/cases"
	"fairclaim/portal-backend/internal/classifier"
)

var ErrForbidden = errors.New("insufficient permissions")

// Notifier acknowledges newly filed grievances over SMS
type Notifier interface {
	GrievanceFiled(ctx context.Context, phone, grievanceNumber string, priority string) error
}

type CreateGrievanceRequest struct {
	CaseID       uuid.UUID `json:"case_id" binding:"required"`
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	Category     string    `json:"category" binding:"required"`
	ContactName  string    `json:"contact_name" binding:"required"`
	ContactPhone string    `json:"contact_phone" binding:"required"`
	ContactEmail string    `json:"contact_email"`
}

type UpdateGrievanceRequest struct {
	Status          *Status `json:"status"`
	ResolutionNotes *string `json:"resolution_notes"`
	ResolvedBy      *string `json:"resolved_by"`
}

type GrievanceListResponse struct {
	Grievances []Grievance `json:"grievances"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

type Service interface {
	CreateGrievance(ctx context.Context, actor cases.Actor, req CreateGrievanceRequest) (*Grievance, error)
	GetGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID) (*Grievance, error)
	ListGrievances(ctx context.Context, actor cases.Actor, filter Filter) (*GrievanceListResponse, error)
	UpdateGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID, req UpdateGrievanceRequest) (*Grievance, error)
	DeleteGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID) error
	PreviewClassification(title, description, category string) classifier.Result
}

type grievanceService struct {
	repo       Repository
	caseRepo   cases.Repository
	classifier *classifier.Classifier
	notifier   Notifier
	logger     *zap.Logger
}

func NewService(repo Repository, caseRepo cases.Repository, cls *classifier.Classifier, notifier Notifier, logger *zap.Logger) Service {
	return &grievanceService{
		repo:       repo,
		caseRepo:   caseRepo,
		classifier: cls,
		notifier:   notifier,
		logger:     logger,
	}
}

func generateGrievanceNumber() string {
	now := time.Now()
	return fmt.Sprintf("GR-%s%03d", now.Format("20060102150405"), now.Nanosecond()/1e6)
}

func (s *grievanceService) CreateGrievance(ctx context.Context, actor cases.Actor, req CreateGrievanceRequest) (*Grievance, error) {
	parent, err := s.caseRepo.GetByID(ctx, req.CaseID)
	if err != nil {
		return nil, err
	}
	if !canAccessCase(actor, parent) {
		return nil, ErrForbidden
	}

	classification := s.classifier.ClassifyWithConfidence(req.Title, req.Description, req.Category)

	g := &Grievance{
		GrievanceNumber: generateGrievanceNumber(),
		CaseID:          req.CaseID,
		CreatedByUserID: &actor.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        classification.Priority,
		Status:          StatusOpen,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("grievance filed",
		zap.String("grievance_number", g.GrievanceNumber),
		zap.String("priority", string(g.Priority)),
		zap.Float64("confidence", classification.Confidence))

	if s.notifier != nil && g.ContactPhone != "" {
		if err := s.notifier.GrievanceFiled(ctx, g.ContactPhone, g.GrievanceNumber, string(g.Priority)); err != nil {
			s.logger.Warn("grievance acknowledgement failed", zap.Error(err))
		}
	}

	return g, nil
}

func (s *grievanceService) GetGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID) (*Grievance, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parent, err := s.caseRepo.GetByID(ctx, g.CaseID)
	if err != nil {
		return nil, err
	}
	if !canAccessCase(actor, parent) {
		return nil, ErrForbidden
	}
	return g, nil
}

func (s *grievanceService) ListGrievances(ctx context.Context, actor cases.Actor, filter Filter) (*GrievanceListResponse, error) {
	switch actor.Role {
	case auth.RoleVictim:
		filter.VictimPhone = actor.Phone
		filter.VictimEmail = actor.Email
	case auth.RoleOfficial:
		filter.OfficerUserID = &actor.UserID
		filter.OfficerName = actor.FullName
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	return &GrievanceListResponse{Grievances: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *grievanceService) UpdateGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID, req UpdateGrievanceRequest) (*Grievance, error) {
	if actor.Role != auth.RoleOfficial {
		return nil, ErrForbidden
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parent, err := s.caseRepo.GetByID(ctx, g.CaseID)
	if err != nil {
		return nil, err
	}
	if !canAccessCase(actor, parent) {
		return nil, ErrForbidden
	}

	if req.Status != nil {
		g.Status = *req.Status
		if (*req.Status == StatusResolved || *req.Status == StatusClosed) && g.ResolvedAt == nil {
			now := time.Now()
			g.ResolvedAt = &now
			if g.ResolvedBy == "" {
				g.ResolvedBy = actor.FullName
			}
		}
	}
	if req.ResolutionNotes != nil {
		g.ResolutionNotes = *req.ResolutionNotes
	}
	if req.ResolvedBy != nil {
		g.ResolvedBy = *req.ResolvedBy
	}
	g.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *grievanceService) DeleteGrievance(ctx context.Context, actor cases.Actor, id uuid.UUID) error {
	if actor.Role != auth.RoleOfficial {
		return ErrForbidden
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *grievanceService) PreviewClassification(title, description, category string) classifier.Result {
	return s.classifier.ClassifyWithConfidence(title, description, category)
}

func canAccessCase(actor cases.Actor, c *cases.Case) bool {
	switch actor.Role {
	case auth.RoleVictim:
		return (actor.Phone != "" && c.VictimPhone == actor.Phone) ||
			(actor.Email != "" && c.VictimEmail == actor.Email)
	case auth.RoleOfficial:
		if c.CreatedByUserID != nil && *c.CreatedByUserID == actor.UserID {
			return true
		}
		if c.AssignedOfficerUserID != nil && *c.AssignedOfficerUserID == actor.UserID {
			return true
		}
		return c.AssignedOfficer != "" && c.AssignedOfficer == actor.FullName
	}
	return false
}
