package payout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/pg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// payoutInterval is how much time must pass since the previous credit
// before an investment earns its next daily return.
const payoutInterval = 24 * time.Hour

var processingInvestments sync.Map

type InvestmentRepo interface {
	FindDueForPayout(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Investment, error)
	AdvanceLastPaid(ctx context.Context, id int, paidAt, cutoff time.Time) (bool, error)
	Complete(ctx context.Context, id int) error
}

type LedgerRepo interface {
	Credit(ctx context.Context, userID int, amount float64) (float64, error)
}

type Service struct {
	invRepo        InvestmentRepo
	ledger         LedgerRepo
	txManager      pg.TXManager
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(invRepo InvestmentRepo, ledger LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{
		invRepo:        invRepo,
		ledger:         ledger,
		txManager:      txManager,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payout service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payout service")
			return
		case <-ticker.C:
			s.processInvestments(ctx)
		}
	}
}

func (s *Service) processInvestments(ctx context.Context) {
	now := time.Now()
	cutoff := now.Add(-payoutInterval)

	investments, err := s.invRepo.FindDueForPayout(ctx, cutoff, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch investments due for payout", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, inv := range investments {
		inv := inv

		if _, loaded := processingInvestments.LoadOrStore(inv.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingInvestments.Delete(inv.ID)
				return s.handleInvestment(ctx, inv, now, cutoff)
			})
			if err != nil {
				processingInvestments.Delete(inv.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing payouts", zap.Error(err))
	}
}

// handleInvestment credits one daily return, or completes the investment
// once its window has ended. The last_paid_at advance and the credit share
// a transaction, and the advance is guarded, so a concurrent or repeated
// run credits at most once per interval.
func (s *Service) handleInvestment(ctx context.Context, inv domain.Investment, now, cutoff time.Time) error {
	if !now.Before(inv.EndAt) {
		if err := s.invRepo.Complete(ctx, inv.ID); err != nil {
			return err
		}
		zap.L().Info("Investment completed", zap.Int("investment_id", inv.ID))
		return nil
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		advanced, err := s.invRepo.AdvanceLastPaid(ctx, inv.ID, now, cutoff)
		if err != nil {
			return err
		}
		if !advanced {
			return nil
		}
		if _, err := s.ledger.Credit(ctx, inv.UserID, inv.DailyReturn); err != nil {
			return err
		}
		zap.L().Info("Daily return credited",
			zap.Int("investment_id", inv.ID), zap.Float64("amount", inv.DailyReturn))
		return nil
	})
}
