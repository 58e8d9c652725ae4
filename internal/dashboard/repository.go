package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines the aggregate queries behind the dashboard
type Repository interface {
	CountCases(ctx context.Context) (int, error)
	CasesByStatus(ctx context.Context) (map[string]int, error)
	CasesByStage(ctx context.Context) (map[string]int, error)
	FundStatistics(ctx context.Context) (FundStatistics, error)
	GrievanceCounters(ctx context.Context) (GrievanceCounters, error)

	CountCasesForVictim(ctx context.Context, phone, email string) (int, error)
	CountGrievancesForUser(ctx context.Context, userID uuid.UUID) (int, error)
	CountOpenGrievances(ctx context.Context) (int, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountCases(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cases WHERE deleted_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CasesByStatus(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx,
		`SELECT status, COUNT(*) FROM cases WHERE deleted_at IS NULL GROUP BY status`)
}

func (r *PostgresRepository) CasesByStage(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx,
		`SELECT stage, COUNT(*) FROM cases WHERE deleted_at IS NULL GROUP BY stage`)
}

func (r *PostgresRepository) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run breakdown query: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		out[key] = count
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FundStatistics(ctx context.Context) (FundStatistics, error) {
	query := `
		SELECT
			COALESCE(SUM(compensation_amount), 0) AS allocated,
			COALESCE(SUM(compensation_amount) FILTER (WHERE status = 'COMPLETED'), 0) AS disbursed
		FROM cases
		WHERE deleted_at IS NULL
	`

	var stats FundStatistics
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalAllocated, &stats.TotalDisbursed)
	if err != nil {
		return FundStatistics{}, fmt.Errorf("failed to compute fund statistics: %w", err)
	}
	stats.Pending = stats.TotalAllocated - stats.TotalDisbursed
	return stats, nil
}

func (r *PostgresRepository) GrievanceCounters(ctx context.Context) (GrievanceCounters, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'OPEN'),
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
			COUNT(*) FILTER (WHERE status = 'RESOLVED'),
			COUNT(*) FILTER (WHERE status = 'ESCALATED'),
			COUNT(*) FILTER (WHERE priority IN ('HIGH', 'CRITICAL'))
		FROM grievances
		WHERE deleted_at IS NULL
	`

	var c GrievanceCounters
	err := r.db.QueryRowContext(ctx, query).Scan(
		&c.Total, &c.Open, &c.InProgress, &c.Resolved, &c.Escalated, &c.HighPriority)
	if err != nil {
		return GrievanceCounters{}, fmt.Errorf("failed to count grievances: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) CountCasesForVictim(ctx context.Context, phone, email string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cases WHERE deleted_at IS NULL AND (victim_phone = $1 OR victim_email = $2)`,
		phone, email).Scan(&n)
	return n, err
}

func (r *PostgresRepository) CountGrievancesForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances WHERE deleted_at IS NULL AND created_by_user_id = $1`,
		userID).Scan(&n)
	return n, err
}

func (r *PostgresRepository) CountOpenGrievances(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances WHERE deleted_at IS NULL AND status IN ('OPEN', 'IN_PROGRESS')`).Scan(&n)
	return n, err
}
