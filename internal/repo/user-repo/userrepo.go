package userrepo

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

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, password_hash, balance, referral_code, referred_by
		FROM users
		WHERE email = $1
	`
	err := repo.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByID(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, password_hash, balance, referral_code, referred_by
		FROM users
		WHERE id = $1
	`
	err := repo.db.QueryRow(ctx, query, userID).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	var user domain.User
	query := `
		SELECT id, email, password_hash, balance, referral_code, referred_by
		FROM users
		WHERE referral_code = $1
	`
	err := repo.db.QueryRow(ctx, query, code).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Balance, &user.ReferralCode, &user.ReferredBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by referral code", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, referral_code, referred_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := repo.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.ReferralCode, user.ReferredBy).Scan(&user.ID)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Debit subtracts amount from the user's balance in a single conditional
// update. The WHERE clause is the only balance check that counts; a
// concurrent spend that races the balance below amount makes the update
// match no rows and the debit is rejected with ErrInsufficientFunds.
func (repo *Repository) Debit(ctx context.Context, userID int, amount float64) (float64, error) {
	query := `
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`
	var balance float64
	err := repo.db.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		zap.L().Error("can't debit user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// Credit adds amount to the user's balance as a single atomic update.
func (repo *Repository) Credit(ctx context.Context, userID int, amount float64) (float64, error) {
	query := `
		UPDATE users
		SET balance = balance + $2
		WHERE id = $1
		RETURNING balance
	`
	var balance float64
	err := repo.db.QueryRow(ctx, query, userID, amount).Scan(&balance)
	if err != nil {
		zap.L().Error("can't credit user balance", zap.Error(err))
		return 0, err
	}
	return balance, nil
}
