package withdrawalrepo

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

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (user_id, email, amount, fee, net_amount, bank_code, account_number, account_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.Email, withdrawal.Amount, withdrawal.Fee, withdrawal.NetAmount,
		withdrawal.BankCode, withdrawal.AccountNumber, withdrawal.AccountName, withdrawal.Status).
		Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Withdrawal, error) {
	var wd domain.Withdrawal
	query := `
		SELECT id, user_id, email, amount, fee, net_amount, bank_code, account_number, account_name, provider_reference, status, error, created_at
		FROM withdrawals
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&wd.ID, &wd.UserID, &wd.Email, &wd.Amount, &wd.Fee, &wd.NetAmount, &wd.BankCode, &wd.AccountNumber, &wd.AccountName, &wd.ProviderReference, &wd.Status, &wd.Error, &wd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	return &wd, nil
}

func (r *Repository) MarkProcessing(ctx context.Context, id int, providerReference string) error {
	query := `
		UPDATE withdrawals
		SET status = 'processing', provider_reference = $2
		WHERE id = $1 AND status = 'initiated'
	`
	if _, err := r.db.Exec(ctx, query, id, providerReference); err != nil {
		zap.L().Error("can't mark withdrawal processing", zap.Error(err))
		return err
	}
	return nil
}

// MarkFailed transitions a non-terminal withdrawal to failed and reports
// whether this call did the transition. The caller credits the refund only
// when true, which is what makes the refund exactly-once.
func (r *Repository) MarkFailed(ctx context.Context, id int, errMsg string) (bool, error) {
	query := `
		UPDATE withdrawals
		SET status = 'failed', error = $2
		WHERE id = $1 AND status IN ('initiated', 'processing')
	`
	tag, err := r.db.Exec(ctx, query, id, errMsg)
	if err != nil {
		zap.L().Error("can't mark withdrawal failed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSuccess settles a non-terminal withdrawal. Initiated counts too: a
// transfer webhook can arrive for a withdrawal that never got its
// processing mark, and that must still be able to settle.
func (r *Repository) MarkSuccess(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE withdrawals
		SET status = 'success'
		WHERE id = $1 AND status IN ('initiated', 'processing')
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't mark withdrawal success", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `
		SELECT id, user_id, email, amount, fee, net_amount, bank_code, account_number, account_name, provider_reference, status, error, created_at
		FROM withdrawals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(&wd.ID, &wd.UserID, &wd.Email, &wd.Amount, &wd.Fee, &wd.NetAmount, &wd.BankCode, &wd.AccountNumber, &wd.AccountName, &wd.ProviderReference, &wd.Status, &wd.Error, &wd.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}

	return withdrawals, nil
}
