package withdrawservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/pg"
	"github.com/havenvest/havenvest/internal/terms"
	"github.com/havenvest/havenvest/pkg/validate"
	"go.uber.org/zap"
)

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	FindByID(ctx context.Context, id int) (*domain.Withdrawal, error)
	MarkProcessing(ctx context.Context, id int, providerReference string) error
	MarkFailed(ctx context.Context, id int, errMsg string) (bool, error)
	MarkSuccess(ctx context.Context, id int) (bool, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type LedgerRepo interface {
	FindByID(ctx context.Context, userID int) (*domain.User, error)
	Debit(ctx context.Context, userID int, amount float64) (float64, error)
	Credit(ctx context.Context, userID int, amount float64) (float64, error)
}

type Gateway interface {
	ResolveAccount(ctx context.Context, bankCode, accountNumber string) (string, error)
	InitiateTransfer(ctx context.Context, req flutterwave.TransferRequest) (*flutterwave.TransferAck, error)
	ListBanks(ctx context.Context) ([]flutterwave.Bank, error)
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBelowMinimum       = errors.New("amount is below the minimum withdrawal")
	ErrMissingBankDetails = errors.New("bank details are incomplete")
	ErrInvalidAccount     = errors.New("account number is invalid")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
)

type Request struct {
	Amount        float64
	BankCode      string
	AccountNumber string
	AccountName   string
}

type Service struct {
	withdrawalRepo WithdrawalRepo
	ledger         LedgerRepo
	gateway        Gateway
	txManager      pg.TXManager
	minWithdrawal  float64
	feeRate        float64
}

func New(withdrawalRepo WithdrawalRepo, ledger LedgerRepo, gateway Gateway, txManager pg.TXManager, minWithdrawal, feeRate float64) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		gateway:        gateway,
		txManager:      txManager,
		minWithdrawal:  minWithdrawal,
		feeRate:        feeRate,
	}
}

// ResolveAccount validates the account shape locally before spending a
// provider call, then returns the account holder's name.
func (s *Service) ResolveAccount(ctx context.Context, bankCode, accountNumber string) (string, error) {
	if bankCode == "" || !validate.IsAccountNumber(accountNumber) {
		return "", ErrInvalidAccount
	}
	return s.gateway.ResolveAccount(ctx, bankCode, accountNumber)
}

func (s *Service) Banks(ctx context.Context) ([]flutterwave.Bank, error) {
	return s.gateway.ListBanks(ctx)
}

// Withdraw runs the outbound sequence: validate, fee, conditional gross
// debit, withdrawal row, provider transfer. The withdrawal row marks the
// point of no return; once it exists every failure path must refund the
// gross amount exactly once.
func (s *Service) Withdraw(ctx context.Context, userID int, req Request) (*domain.Withdrawal, error) {
	if req.BankCode == "" || req.AccountNumber == "" || req.AccountName == "" {
		return nil, ErrMissingBankDetails
	}
	if !validate.IsAccountNumber(req.AccountNumber) {
		return nil, ErrInvalidAccount
	}
	if req.Amount < s.minWithdrawal {
		return nil, ErrBelowMinimum
	}

	breakdown, err := terms.Fee(req.Amount, s.feeRate)
	if err != nil {
		return nil, err
	}

	user, err := s.ledger.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Balance < req.Amount {
		return nil, domain.ErrInsufficientFunds
	}

	// The conditional debit is the real balance check; the read above only
	// avoids provider traffic for obviously underfunded requests.
	if _, err := s.ledger.Debit(ctx, userID, req.Amount); err != nil {
		return nil, err
	}

	withdrawal, err := s.withdrawalRepo.Create(ctx, &domain.Withdrawal{
		UserID:        user.ID,
		Email:         user.Email,
		Amount:        breakdown.Gross,
		Fee:           breakdown.Fee,
		NetAmount:     breakdown.Net,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Status:        domain.WithdrawalInitiated,
	})
	if err != nil {
		zap.L().Error("can't create withdrawal, refunding debit", zap.Error(err))
		if _, creditErr := s.ledger.Credit(ctx, userID, req.Amount); creditErr != nil {
			zap.L().Error("refund after failed withdrawal insert did not apply",
				zap.Int("user_id", userID), zap.Float64("amount", req.Amount), zap.Error(creditErr))
		}
		return nil, err
	}

	ack, err := s.gateway.InitiateTransfer(ctx, flutterwave.TransferRequest{
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		Amount:        breakdown.Net,
		Currency:      "NGN",
		Narration:     fmt.Sprintf("Withdrawal (net of %v fee)", breakdown.Fee),
		Reference:     fmt.Sprintf("wd-%d-%s", withdrawal.ID, uuid.NewString()),
		Meta:          map[string]any{"withdrawal_id": withdrawal.ID},
	})
	if err != nil {
		var providerErr *flutterwave.ProviderError
		if errors.As(err, &providerErr) {
			// Synchronous rejection: the provider holds nothing, so the
			// gross amount goes back before we answer.
			if failErr := s.failAndRefund(ctx, withdrawal.ID, userID, req.Amount, providerErr.Message); failErr != nil {
				return nil, failErr
			}
			return nil, err
		}
		// Unknown outcome (timeout, network). The transfer may have been
		// accepted, so no compensation: the webhook or an operator settles
		// this withdrawal later.
		zap.L().Error("transfer outcome unknown, withdrawal left initiated",
			zap.Int("withdrawal_id", withdrawal.ID), zap.Error(err))
		return nil, err
	}

	if err := s.withdrawalRepo.MarkProcessing(ctx, withdrawal.ID, ack.Reference); err != nil {
		return nil, err
	}
	withdrawal.Status = domain.WithdrawalProcessing
	withdrawal.ProviderReference = ack.Reference

	zap.L().Info("withdrawal processing",
		zap.Int("withdrawal_id", withdrawal.ID),
		zap.Float64("gross", breakdown.Gross), zap.Float64("net", breakdown.Net))
	return withdrawal, nil
}

// SettleTransfer applies the provider's final transfer outcome delivered by
// webhook. Delivery is at-least-once, so both branches are guarded
// transitions; the refund only happens on the call that actually moved the
// withdrawal to failed, and moves with it atomically.
func (s *Service) SettleTransfer(ctx context.Context, withdrawalID int, providerStatus string) error {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if withdrawal == nil {
		zap.L().Error("settlement for unknown withdrawal", zap.Int("withdrawal_id", withdrawalID))
		return ErrWithdrawalNotFound
	}

	switch strings.ToUpper(providerStatus) {
	case "SUCCESSFUL":
		settled, err := s.withdrawalRepo.MarkSuccess(ctx, withdrawalID)
		if err != nil {
			return err
		}
		if settled {
			zap.L().Info("withdrawal settled", zap.Int("withdrawal_id", withdrawalID))
		}
		return nil
	case "FAILED":
		return s.failAndRefund(ctx, withdrawalID, withdrawal.UserID, withdrawal.Amount, "transfer failed")
	default:
		zap.L().Info("ignoring transfer status",
			zap.Int("withdrawal_id", withdrawalID), zap.String("status", providerStatus))
		return nil
	}
}

func (s *Service) failAndRefund(ctx context.Context, withdrawalID, userID int, gross float64, reason string) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		failed, err := s.withdrawalRepo.MarkFailed(ctx, withdrawalID, reason)
		if err != nil {
			return err
		}
		if !failed {
			// Already terminal; the refund happened on the call that won.
			return nil
		}
		if _, err := s.ledger.Credit(ctx, userID, gross); err != nil {
			return err
		}
		zap.L().Info("withdrawal failed, gross refunded",
			zap.Int("withdrawal_id", withdrawalID), zap.Float64("gross", gross))
		return nil
	})
}

func (s *Service) GetBalance(ctx context.Context, userID int) (float64, error) {
	user, err := s.ledger.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return user.Balance, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
