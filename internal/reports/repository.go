package reports

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	CaseRegister(ctx context.Context, status, stage string) ([]RegisterRow, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CaseRegister(ctx context.Context, status, stage string) ([]RegisterRow, error) {
	query := `
		SELECT case_number, victim_name, incident_date, incident_location,
		       stage, status, compensation_amount,
		       COALESCE(assigned_officer, '') AS assigned_officer, created_at
		FROM cases
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if stage != "" {
		args = append(args, stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	var rows []RegisterRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load case register: %w", err)
	}
	return rows, nil
}
