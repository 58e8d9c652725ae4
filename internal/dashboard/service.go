package dashboard

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairclaim/portal-backend/internal/auth"
)

type Service interface {
	GetStats(ctx context.Context, role auth.Role) (*Stats, error)
	GetUserStats(ctx context.Context, userID uuid.UUID, role auth.Role, phone, email string) (interface{}, error)
}

type dashboardService struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetStats(ctx context.Context, role auth.Role) (*Stats, error) {
	total, err := s.repo.CountCases(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.CasesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byStage, err := s.repo.CasesByStage(ctx)
	if err != nil {
		return nil, err
	}
	funds, err := s.repo.FundStatistics(ctx)
	if err != nil {
		return nil, err
	}
	grievances, err := s.repo.GrievanceCounters(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalCases:      total,
		StatusBreakdown: byStatus,
		StageBreakdown:  byStage,
		FundStatistics:  funds,
		Grievances:      grievances,
		UserRole:        string(role),
	}, nil
}

func (s *dashboardService) GetUserStats(ctx context.Context, userID uuid.UUID, role auth.Role, phone, email string) (interface{}, error) {
	if role == auth.RoleVictim {
		myCases, err := s.repo.CountCasesForVictim(ctx, phone, email)
		if err != nil {
			return nil, err
		}
		myGrievances, err := s.repo.CountGrievancesForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &VictimStats{
			Role:         "victim",
			MyCases:      myCases,
			MyGrievances: myGrievances,
			UserID:       userID,
		}, nil
	}

	total, err := s.repo.CountCases(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountOpenGrievances(ctx)
	if err != nil {
		return nil, err
	}
	return &OfficialStats{
		Role:              "official",
		ManageableCases:   total,
		PendingGrievances: pending,
		UserID:            userID,
	}, nil
}
