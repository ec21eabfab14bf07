package investservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/terms"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockTransactionRepo, *MockInvestmentRepo, *MockPlanRepo, *MockLedgerRepo, *MockGateway) {
	ctrl := gomock.NewController(t)
	txRepo := NewMockTransactionRepo(ctrl)
	invRepo := NewMockInvestmentRepo(ctrl)
	plans := NewMockPlanRepo(ctrl)
	ledger := NewMockLedgerRepo(ctrl)
	gateway := NewMockGateway(ctrl)

	service := New(txRepo, invRepo, plans, ledger, gateway, "https://havenvest.example")
	defer ctrl.Finish()
	return service, txRepo, invRepo, plans, ledger, gateway
}

var growthPlan = &domain.Plan{ID: "growth", Name: "Growth", Amount: 50000, DailyReturn: 133.33}

func TestInvest(t *testing.T) {
	service, txRepo, _, plans, ledger, gateway := NewMock(t)

	user := &domain.User{ID: 1, Email: "user@example.com"}

	tests := []struct {
		name          string
		planID        string
		prepareMock   func()
		expectedLink  string
		expectedError error
	}{
		{
			name:   "Opens a pending transaction and returns the payment link",
			planID: "growth",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
				txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, 50000.0, tx.Amount)
						assert.Equal(t, domain.TransactionPending, tx.Status)
						assert.True(t, strings.HasPrefix(tx.ProviderReference, "inv-"))
						tx.ID = 42
						return tx, nil
					})
				gateway.EXPECT().InitiateCharge(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, req flutterwave.ChargeRequest) (string, error) {
						assert.Equal(t, 50000.0, req.Amount)
						assert.Equal(t, "user@example.com", req.Email)
						assert.Contains(t, req.RedirectURL, "https://havenvest.example/invest-now/success")
						return "https://checkout.example/pay/abc", nil
					})
			},
			expectedLink: "https://checkout.example/pay/abc",
		},
		{
			name:   "Unknown plan",
			planID: "platinum",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				plans.EXPECT().FindByID(gomock.Any(), "platinum").Return(nil, nil)
			},
			expectedError: ErrPlanNotFound,
		},
		{
			name:   "Unknown user",
			planID: "growth",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:   "Provider rejects the charge",
			planID: "growth",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
				txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						tx.ID = 43
						return tx, nil
					})
				gateway.EXPECT().InitiateCharge(gomock.Any(), gomock.Any()).
					Return("", &flutterwave.ProviderError{Message: "invalid currency"})
			},
			expectedError: &flutterwave.ProviderError{Message: "invalid currency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			link, err := service.Invest(context.Background(), 1, tt.planID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedLink, link)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	service, txRepo, invRepo, plans, ledger, gateway := NewMock(t)

	pendingTx := func() *domain.Transaction {
		return &domain.Transaction{
			ID:                42,
			UserID:            1,
			Email:             "user@example.com",
			PlanID:            "growth",
			Amount:            50000,
			ProviderReference: "inv-abc",
			Status:            domain.TransactionPending,
		}
	}
	successResult := &flutterwave.VerifyResult{
		ProviderTxID: "8539031",
		Status:       "successful",
		TxRef:        "inv-abc",
		Amount:       50000,
	}
	storedInvestment := &domain.Investment{
		ID:                  10,
		UserID:              1,
		PlanID:              "growth",
		Amount:              50000,
		DailyReturn:         133.33,
		Status:              domain.InvestmentActive,
		SourceTransactionID: 42,
	}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
		expectedInvID int
	}{
		{
			name: "Materializes the investment on first verification",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(pendingTx(), nil)
				txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(true, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
				invRepo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, inv *domain.Investment) (*domain.Investment, bool, error) {
						assert.Equal(t, 42, inv.SourceTransactionID)
						assert.Equal(t, 133.33, inv.DailyReturn)
						assert.Equal(t, inv.StartAt.Add(terms.MaturityDays*24*time.Hour), inv.EndAt)
						inv.ID = 10
						return inv, true, nil
					})
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1}, nil)
			},
			expectedInvID: 10,
		},
		{
			name: "Repeated verification returns the same investment",
			prepareMock: func() {
				settled := pendingTx()
				settled.Status = domain.TransactionSuccess
				settled.ProviderTxID = "8539031"
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(settled, nil)
				txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(false, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
				invRepo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).Return(storedInvestment, false, nil)
			},
			expectedInvID: 10,
		},
		{
			name: "Referral bonus is credited once on creation",
			prepareMock: func() {
				referrerID := 7
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(pendingTx(), nil)
				txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(true, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
				invRepo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, inv *domain.Investment) (*domain.Investment, bool, error) {
						inv.ID = 10
						return inv, true, nil
					})
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, ReferredBy: &referrerID}, nil)
				ledger.EXPECT().Credit(gomock.Any(), 7, 2500.0).Return(2500.0, nil)
			},
			expectedInvID: 10,
		},
		{
			name: "Unsuccessful charge marks the transaction failed",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(&flutterwave.VerifyResult{
					ProviderTxID: "8539031",
					Status:       "failed",
					TxRef:        "inv-abc",
					Amount:       50000,
				}, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(pendingTx(), nil)
				txRepo.EXPECT().MarkFailed(gomock.Any(), 42).Return(nil)
			},
			expectedError: ErrChargeNotSuccessful,
		},
		{
			name: "Provider reference without a local transaction",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(nil, nil)
			},
			expectedError: ErrTransactionNotFound,
		},
		{
			name: "Paid amount disagrees with the plan",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(&flutterwave.VerifyResult{
					ProviderTxID: "8539031",
					Status:       "successful",
					TxRef:        "inv-abc",
					Amount:       49000,
				}, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(pendingTx(), nil)
				txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(true, nil)
				plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
			},
			expectedError: terms.ErrAmountMismatch,
		},
		{
			name: "Provider unavailable leaves the transaction pending",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(nil, flutterwave.ErrUnavailable)
			},
			expectedError: flutterwave.ErrUnavailable,
		},
		{
			name: "Failed transaction is never resurrected",
			prepareMock: func() {
				failed := pendingTx()
				failed.Status = domain.TransactionFailed
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(failed, nil)
			},
			expectedError: ErrTransactionFailed,
		},
		{
			name: "Concurrent failure mark wins over verification",
			prepareMock: func() {
				gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(successResult, nil)
				txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(pendingTx(), nil)
				txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(false, nil)
			},
			expectedError: ErrTransactionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			investment, err := service.Verify(context.Background(), "8539031", "inv-abc")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, investment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedInvID, investment.ID)
			}
		})
	}
}

func TestVerify_ReferralBonusFailureDoesNotFailVerification(t *testing.T) {
	service, txRepo, invRepo, plans, ledger, gateway := NewMock(t)

	referrerID := 7
	gateway.EXPECT().VerifyCharge(gomock.Any(), "8539031").Return(&flutterwave.VerifyResult{
		ProviderTxID: "8539031",
		Status:       "successful",
		TxRef:        "inv-abc",
		Amount:       50000,
	}, nil)
	txRepo.EXPECT().FindByProviderReference(gomock.Any(), "inv-abc").Return(&domain.Transaction{
		ID: 42, UserID: 1, PlanID: "growth", Amount: 50000, ProviderReference: "inv-abc", Status: domain.TransactionPending,
	}, nil)
	txRepo.EXPECT().MarkSuccess(gomock.Any(), 42, "8539031").Return(true, nil)
	plans.EXPECT().FindByID(gomock.Any(), "growth").Return(growthPlan, nil)
	invRepo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, inv *domain.Investment) (*domain.Investment, bool, error) {
			inv.ID = 10
			return inv, true, nil
		})
	ledger.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, ReferredBy: &referrerID}, nil)
	ledger.EXPECT().Credit(gomock.Any(), 7, 2500.0).Return(0.0, errors.New("database error"))

	investment, err := service.Verify(context.Background(), "8539031", "inv-abc")
	assert.NoError(t, err)
	assert.Equal(t, 10, investment.ID)
}

func TestGetPlans(t *testing.T) {
	service, _, _, plans, _, _ := NewMock(t)

	expected := []domain.Plan{*growthPlan}
	plans.EXPECT().List(gomock.Any()).Return(expected, nil)

	result, err := service.GetPlans(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestGetInvestments(t *testing.T) {
	service, _, invRepo, _, _, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedLen   int
		expectedError error
	}{
		{
			name: "Returns investments",
			prepareMock: func() {
				invRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return([]domain.Investment{{ID: 10}}, nil)
			},
			expectedLen: 1,
		},
		{
			name: "Database error",
			prepareMock: func() {
				invRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, err := service.GetInvestments(context.Background(), 1)
			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedLen)
			}
		})
	}
}

func TestGetTransactions(t *testing.T) {
	service, txRepo, _, _, _, _ := NewMock(t)

	txRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return([]domain.Transaction{{ID: 42}}, nil)

	result, err := service.GetTransactions(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}
