package transactionrepo

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

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, email, plan_id, amount, provider_reference, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, tx.Email, tx.PlanID, tx.Amount, tx.ProviderReference, tx.Status).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) FindByProviderReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `
		SELECT id, user_id, email, plan_id, amount, provider_reference, provider_tx_id, status, created_at
		FROM transactions
		WHERE provider_reference = $1
	`
	err := r.db.QueryRow(ctx, query, reference).
		Scan(&tx.ID, &tx.UserID, &tx.Email, &tx.PlanID, &tx.Amount, &tx.ProviderReference, &tx.ProviderTxID, &tx.Status, &tx.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find transaction by provider reference", zap.Error(err))
		return nil, err
	}
	return &tx, nil
}

// MarkSuccess transitions the transaction out of pending and reports whether
// this call did the transition. A repeated call matches no rows and returns
// false, as does a transaction another writer already moved to failed.
func (r *Repository) MarkSuccess(ctx context.Context, id int, providerTxID string) (bool, error) {
	query := `
		UPDATE transactions
		SET status = 'success', provider_tx_id = $2
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, id, providerTxID)
	if err != nil {
		zap.L().Error("can't mark transaction success", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFailed only transitions from pending, so a late failure signal can
// never claw back an already settled transaction.
func (r *Repository) MarkFailed(ctx context.Context, id int) error {
	query := `
		UPDATE transactions
		SET status = 'failed'
		WHERE id = $1 AND status = 'pending'
	`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("can't mark transaction failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error) {
	query := `
		SELECT id, user_id, email, plan_id, amount, provider_reference, provider_tx_id, status, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(&tx.ID, &tx.UserID, &tx.Email, &tx.PlanID, &tx.Amount, &tx.ProviderReference, &tx.ProviderTxID, &tx.Status, &tx.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}
