package planrepo

import (
	"context"
	"errors"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByID(ctx context.Context, planID string) (*domain.Plan, error) {
	var plan domain.Plan
	query := `
		SELECT id, name, amount, daily_return
		FROM plans
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, planID).Scan(&plan.ID, &plan.Name, &plan.Amount, &plan.DailyReturn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find plan", zap.Error(err))
		return nil, err
	}
	return &plan, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Plan, error) {
	query := `
		SELECT id, name, amount, daily_return
		FROM plans
		ORDER BY amount ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("failed to fetch plans", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Amount, &plan.DailyReturn); err != nil {
			zap.L().Error("failed to scan plan row", zap.Error(err))
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}
