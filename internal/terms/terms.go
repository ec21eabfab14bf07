package terms

import (
	"errors"
	"time"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/shopspring/decimal"
)

// MaturityDays is the fixed investment window length.
const MaturityDays = 30

var (
	ErrAmountMismatch = errors.New("paid amount does not match the plan amount")
	ErrNegativeReturn = errors.New("plan daily return is negative")
	ErrNetNotPositive = errors.New("net amount must be greater than zero")
)

// Snapshot is the economic terms frozen onto an investment at creation time.
// Later plan edits never touch a snapshot.
type Snapshot struct {
	Amount      float64
	DailyReturn float64
	StartAt     time.Time
	EndAt       time.Time
}

// NewSnapshot validates the paid amount against the plan's canonical amount
// and freezes the terms. A mismatch is rejected, never coerced.
func NewSnapshot(plan *domain.Plan, paidAmount float64, now time.Time) (*Snapshot, error) {
	if !decimal.NewFromFloat(paidAmount).Equal(decimal.NewFromFloat(plan.Amount)) {
		return nil, ErrAmountMismatch
	}
	if plan.DailyReturn < 0 {
		return nil, ErrNegativeReturn
	}
	return &Snapshot{
		Amount:      plan.Amount,
		DailyReturn: plan.DailyReturn,
		StartAt:     now,
		EndAt:       now.Add(MaturityDays * 24 * time.Hour),
	}, nil
}

// FeeBreakdown always satisfies Net + Fee == Gross.
type FeeBreakdown struct {
	Gross float64
	Fee   float64
	Net   float64
}

// Fee rounds the fee half-up to whole currency units and derives the net by
// subtraction, so the two can never drift apart.
func Fee(gross, rate float64) (*FeeBreakdown, error) {
	g := decimal.NewFromFloat(gross)
	fee := g.Mul(decimal.NewFromFloat(rate)).Round(0)
	net := g.Sub(fee)
	if !net.IsPositive() {
		return nil, ErrNetNotPositive
	}
	return &FeeBreakdown{
		Gross: gross,
		Fee:   fee.InexactFloat64(),
		Net:   net.InexactFloat64(),
	}, nil
}

// ReferralBonus is the reward credited to a referrer when a referred user's
// first payment for an investment settles.
func ReferralBonus(amount float64) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(0.05)).Round(0).InexactFloat64()
}
