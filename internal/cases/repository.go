package cases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("case not found")

type Filter struct {
	Status   *Status
	Stage    *Stage
	Page     int
	PageSize int

	// Visibility scoping, set by the service from the caller's role
	VictimPhone     string
	VictimEmail     string
	CreatedByUserID *uuid.UUID
	AssignedOfficer string
}

type Repository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	List(ctx context.Context, filter Filter) ([]Case, int64, error)
	Update(ctx context.Context, c *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateStatusHistory(ctx context.Context, h *CaseStatusHistory) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, c *Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	var c Case
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) List(ctx context.Context, filter Filter) ([]Case, int64, error) {
	query := r.db.WithContext(ctx).Model(&Case{})

	if filter.VictimPhone != "" || filter.VictimEmail != "" {
		query = query.Where("victim_phone = ? OR victim_email = ?", filter.VictimPhone, filter.VictimEmail)
	}
	if filter.CreatedByUserID != nil {
		query = query.Where("assigned_officer = ? OR created_by_user_id = ?", filter.AssignedOfficer, *filter.CreatedByUserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Stage != nil {
		query = query.Where("stage = ?", *filter.Stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var out []Case
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, total, err
}

func (r *gormRepository) Update(ctx context.Context, c *Case) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Case{}, "id = ?", id).Error
}

func (r *gormRepository) CreateStatusHistory(ctx context.Context, h *CaseStatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}
