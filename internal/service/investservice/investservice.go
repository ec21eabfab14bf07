package investservice

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/terms"
	"go.uber.org/zap"
)

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	FindByProviderReference(ctx context.Context, reference string) (*domain.Transaction, error)
	MarkSuccess(ctx context.Context, id int, providerTxID string) (bool, error)
	MarkFailed(ctx context.Context, id int) error
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type InvestmentRepo interface {
	CreateIfAbsent(ctx context.Context, inv *domain.Investment) (*domain.Investment, bool, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error)
}

type PlanRepo interface {
	FindByID(ctx context.Context, planID string) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
}

type LedgerRepo interface {
	FindByID(ctx context.Context, userID int) (*domain.User, error)
	Credit(ctx context.Context, userID int, amount float64) (float64, error)
}

type Gateway interface {
	InitiateCharge(ctx context.Context, req flutterwave.ChargeRequest) (string, error)
	VerifyCharge(ctx context.Context, providerTxID string) (*flutterwave.VerifyResult, error)
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPlanNotFound = errors.New("plan not found")
	// ErrTransactionNotFound means the provider reported a reference we
	// have no transaction for. That is a reconciliation gap, not a benign
	// miss.
	ErrTransactionNotFound = errors.New("no transaction matches the provider reference")
	ErrChargeNotSuccessful = errors.New("charge was not successful")
	// ErrTransactionFailed means the transaction is already terminal at
	// failed. Failed has no outgoing edge: a later success signal from the
	// provider must never resurrect it into an investment.
	ErrTransactionFailed = errors.New("transaction is already marked failed")
)

type Service struct {
	txRepo  TransactionRepo
	invRepo InvestmentRepo
	plans   PlanRepo
	ledger  LedgerRepo
	gateway Gateway
	appURL  string
}

func New(txRepo TransactionRepo, invRepo InvestmentRepo, plans PlanRepo, ledger LedgerRepo, gateway Gateway, appURL string) *Service {
	return &Service{
		txRepo:  txRepo,
		invRepo: invRepo,
		plans:   plans,
		ledger:  ledger,
		gateway: gateway,
		appURL:  appURL,
	}
}

// Invest opens a pending transaction for the plan's canonical amount and
// returns the provider's hosted payment link. The transaction's provider
// reference is the correlation key verification will locate it by.
func (s *Service) Invest(ctx context.Context, userID int, planID string) (string, error) {
	user, err := s.ledger.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", ErrPlanNotFound
	}

	reference := "inv-" + uuid.NewString()
	tx, err := s.txRepo.Create(ctx, &domain.Transaction{
		UserID:            user.ID,
		Email:             user.Email,
		PlanID:            plan.ID,
		Amount:            plan.Amount,
		ProviderReference: reference,
		Status:            domain.TransactionPending,
	})
	if err != nil {
		zap.L().Error("can't create transaction", zap.Error(err))
		return "", err
	}

	link, err := s.gateway.InitiateCharge(ctx, flutterwave.ChargeRequest{
		TxRef:       reference,
		Amount:      plan.Amount,
		Currency:    "NGN",
		RedirectURL: s.appURL + "/invest-now/success?tx_ref=" + url.QueryEscape(reference),
		Email:       user.Email,
		Title:       plan.Name,
		Meta:        map[string]any{"transaction_id": tx.ID},
	})
	if err != nil {
		zap.L().Error("can't initiate charge",
			zap.String("provider_reference", reference), zap.Error(err))
		return "", err
	}

	zap.L().Info("charge initiated",
		zap.Int("transaction_id", tx.ID), zap.String("provider_reference", reference))
	return link, nil
}

// Verify reconciles a charge outcome into an investment. It is the single
// entry point for the client redirect callback, the provider webhook and
// manual retries, and is safe to call any number of times: the only
// funds-bearing side effect sits behind the investment's idempotency key.
func (s *Service) Verify(ctx context.Context, providerTxID, clientTxRef string) (*domain.Investment, error) {
	res, err := s.gateway.VerifyCharge(ctx, providerTxID)
	if err != nil {
		// Unknown or provider-declared verify failure. Nothing is marked
		// failed here: the charge may still settle and a later call must
		// be able to pick it up.
		return nil, err
	}

	if clientTxRef != "" && clientTxRef != res.TxRef {
		zap.L().Warn("client tx_ref disagrees with provider",
			zap.String("client_tx_ref", clientTxRef), zap.String("provider_tx_ref", res.TxRef))
	}

	tx, err := s.txRepo.FindByProviderReference(ctx, res.TxRef)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		zap.L().Error("provider reference has no local transaction",
			zap.String("provider_reference", res.TxRef), zap.String("provider_tx_id", providerTxID))
		return nil, ErrTransactionNotFound
	}

	if !res.Successful() {
		if err := s.txRepo.MarkFailed(ctx, tx.ID); err != nil {
			return nil, err
		}
		zap.L().Info("charge not successful",
			zap.Int("transaction_id", tx.ID), zap.String("provider_status", res.Status))
		return nil, ErrChargeNotSuccessful
	}

	if tx.Status == domain.TransactionFailed {
		zap.L().Warn("successful charge for a failed transaction",
			zap.Int("transaction_id", tx.ID), zap.String("provider_tx_id", providerTxID))
		return nil, ErrTransactionFailed
	}

	transitioned, err := s.txRepo.MarkSuccess(ctx, tx.ID, res.ProviderTxID)
	if err != nil {
		return nil, err
	}
	// A no-op update on a transaction we read as pending means a concurrent
	// writer moved it to failed between the read and here.
	if !transitioned && tx.Status != domain.TransactionSuccess {
		return nil, ErrTransactionFailed
	}

	plan, err := s.plans.FindByID(ctx, tx.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		zap.L().Error("transaction references unknown plan",
			zap.Int("transaction_id", tx.ID), zap.String("plan_id", tx.PlanID))
		return nil, ErrPlanNotFound
	}

	snapshot, err := terms.NewSnapshot(plan, res.Amount, time.Now())
	if err != nil {
		zap.L().Error("rejected investment terms",
			zap.Int("transaction_id", tx.ID), zap.Float64("paid_amount", res.Amount), zap.Error(err))
		return nil, err
	}

	investment, created, err := s.invRepo.CreateIfAbsent(ctx, &domain.Investment{
		UserID:              tx.UserID,
		PlanID:              plan.ID,
		Amount:              snapshot.Amount,
		DailyReturn:         snapshot.DailyReturn,
		StartAt:             snapshot.StartAt,
		EndAt:               snapshot.EndAt,
		Status:              domain.InvestmentActive,
		SourceTransactionID: tx.ID,
	})
	if err != nil {
		return nil, err
	}

	if created {
		zap.L().Info("investment created",
			zap.Int("investment_id", investment.ID), zap.Int("transaction_id", tx.ID))
		s.applyReferralBonus(ctx, tx)
	}

	return investment, nil
}

// applyReferralBonus is best-effort: a failure is logged and never fails
// the verification it rides on.
func (s *Service) applyReferralBonus(ctx context.Context, tx *domain.Transaction) {
	user, err := s.ledger.FindByID(ctx, tx.UserID)
	if err != nil || user == nil || user.ReferredBy == nil {
		if err != nil {
			zap.L().Error("referral bonus: can't load investor", zap.Error(err))
		}
		return
	}

	bonus := terms.ReferralBonus(tx.Amount)
	if _, err := s.ledger.Credit(ctx, *user.ReferredBy, bonus); err != nil {
		zap.L().Error("referral bonus: credit failed",
			zap.Int("referrer_id", *user.ReferredBy), zap.Float64("bonus", bonus), zap.Error(err))
		return
	}
	zap.L().Info("referral bonus credited",
		zap.Int("referrer_id", *user.ReferredBy), zap.Float64("bonus", bonus))
}

func (s *Service) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		zap.L().Error("failed to get plans", zap.Error(err))
		return nil, err
	}
	return plans, nil
}

func (s *Service) GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error) {
	investments, err := s.invRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get investments", zap.Error(err))
		return nil, err
	}
	return investments, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	transactions, err := s.txRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}
