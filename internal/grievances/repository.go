package grievances

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fairclaim/portal-backend/internal/classifier"
)

var ErrGrievanceNotFound = errors.New("grievance not found")

type Filter struct {
	CaseID   *uuid.UUID
	Status   *Status
	Priority *classifier.Priority
	Page     int
	PageSize int

	// Visibility scoping, applied via the owning case
	VictimPhone     string
	VictimEmail     string
	OfficerUserID   *uuid.UUID
	OfficerName     string
}

type Repository interface {
	Create(ctx context.Context, g *Grievance) error
	GetByID(ctx context.Context, id uuid.UUID) (*Grievance, error)
	List(ctx context.Context, filter Filter) ([]Grievance, int64, error)
	Update(ctx context.Context, g *Grievance) error
	Delete(ctx context.Context, id uuid.UUID) error
	EscalateStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, g *Grievance) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Grievance, error) {
	var g Grievance
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGrievanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gormRepository) List(ctx context.Context, filter Filter) ([]Grievance, int64, error) {
	query := r.db.WithContext(ctx).Model(&Grievance{})

	if filter.VictimPhone != "" || filter.VictimEmail != "" {
		query = query.Joins("JOIN cases ON cases.id = grievances.case_id").
			Where("cases.victim_phone = ? OR cases.victim_email = ?", filter.VictimPhone, filter.VictimEmail)
	} else if filter.OfficerUserID != nil {
		query = query.Joins("JOIN cases ON cases.id = grievances.case_id").
			Where("cases.assigned_officer = ? OR cases.created_by_user_id = ?", filter.OfficerName, *filter.OfficerUserID)
	}

	if filter.CaseID != nil {
		query = query.Where("grievances.case_id = ?", *filter.CaseID)
	}
	if filter.Status != nil {
		query = query.Where("grievances.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("grievances.priority = ?", *filter.Priority)
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

	var out []Grievance
	err := query.Order("grievances.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, total, err
}

func (r *gormRepository) Update(ctx context.Context, g *Grievance) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Grievance{}, "id = ?", id).Error
}

// EscalateStale marks unresolved grievances created before the cutoff as
// ESCALATED and returns how many rows changed.
func (r *gormRepository) EscalateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Grievance{}).
		Where("status IN ?", []Status{StatusOpen, StatusInProgress}).
		Where("created_at < ?", cutoff).
		Where("is_escalated = ?", false).
		Updates(map[string]interface{}{
			"status":       StatusEscalated,
			"is_escalated": true,
			"updated_at":   time.Now(),
		})
	return res.RowsAffected, res.Error
}
