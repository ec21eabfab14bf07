package investmentrepo

import (
	"context"
	"errors"
	"time"

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

// CreateIfAbsent inserts an investment keyed by source_transaction_id.
// The unique constraint arbitrates races: the loser's insert matches no
// rows and the winner's row is fetched and returned with created=false,
// so every caller observes the same investment.
func (r *Repository) CreateIfAbsent(ctx context.Context, inv *domain.Investment) (*domain.Investment, bool, error) {
	query := `
		INSERT INTO investments (user_id, plan_id, amount, daily_return, start_at, end_at, status, source_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source_transaction_id) DO NOTHING
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		inv.UserID, inv.PlanID, inv.Amount, inv.DailyReturn, inv.StartAt, inv.EndAt, inv.Status, inv.SourceTransactionID).
		Scan(&inv.ID, &inv.CreatedAt)
	if err == nil {
		return inv, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		zap.L().Error("can't save investment", zap.Error(err))
		return nil, false, err
	}

	existing, err := r.FindBySourceTransactionID(ctx, inv.SourceTransactionID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, errors.New("investment insert conflicted but no row found")
	}
	return existing, false, nil
}

func (r *Repository) FindBySourceTransactionID(ctx context.Context, transactionID int) (*domain.Investment, error) {
	var inv domain.Investment
	query := `
		SELECT id, user_id, plan_id, amount, daily_return, start_at, end_at, status, source_transaction_id, last_paid_at, created_at
		FROM investments
		WHERE source_transaction_id = $1
	`
	err := r.db.QueryRow(ctx, query, transactionID).
		Scan(&inv.ID, &inv.UserID, &inv.PlanID, &inv.Amount, &inv.DailyReturn, &inv.StartAt, &inv.EndAt, &inv.Status, &inv.SourceTransactionID, &inv.LastPaidAt, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find investment by source transaction", zap.Error(err))
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error) {
	query := `
		SELECT id, user_id, plan_id, amount, daily_return, start_at, end_at, status, source_transaction_id, last_paid_at, created_at
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch investments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		err := rows.Scan(&inv.ID, &inv.UserID, &inv.PlanID, &inv.Amount, &inv.DailyReturn, &inv.StartAt, &inv.EndAt, &inv.Status, &inv.SourceTransactionID, &inv.LastPaidAt, &inv.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan investment row", zap.Error(err))
			return nil, err
		}
		investments = append(investments, inv)
	}

	return investments, nil
}

// FindDueForPayout returns active investments whose last credit (or start)
// is at or before cutoff.
func (r *Repository) FindDueForPayout(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Investment, error) {
	query := `
		SELECT id, user_id, plan_id, amount, daily_return, start_at, end_at, status, source_transaction_id, last_paid_at, created_at
		FROM investments
		WHERE status = 'active' AND COALESCE(last_paid_at, start_at) <= $1
		ORDER BY COALESCE(last_paid_at, start_at) ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		zap.L().Error("failed to fetch investments due for payout", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		err := rows.Scan(&inv.ID, &inv.UserID, &inv.PlanID, &inv.Amount, &inv.DailyReturn, &inv.StartAt, &inv.EndAt, &inv.Status, &inv.SourceTransactionID, &inv.LastPaidAt, &inv.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan investment row", zap.Error(err))
			return nil, err
		}
		investments = append(investments, inv)
	}

	return investments, nil
}

// AdvanceLastPaid moves last_paid_at to paidAt, but only when the previous
// value is still at or before cutoff. Two runs racing on the same
// investment can therefore advance it once: the second matches no rows and
// gets false.
func (r *Repository) AdvanceLastPaid(ctx context.Context, id int, paidAt, cutoff time.Time) (bool, error) {
	query := `
		UPDATE investments
		SET last_paid_at = $2
		WHERE id = $1 AND status = 'active' AND COALESCE(last_paid_at, start_at) <= $3
	`
	tag, err := r.db.Exec(ctx, query, id, paidAt, cutoff)
	if err != nil {
		zap.L().Error("can't advance investment last_paid_at", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Complete(ctx context.Context, id int) error {
	query := `
		UPDATE investments
		SET status = 'completed'
		WHERE id = $1 AND status = 'active'
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't complete investment", zap.Error(err))
		return err
	}
	return nil
}
