package withdrawservice

import (
	"context"
	"errors"
	"testing"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/pg"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockWithdrawalRepo, *MockLedgerRepo, *MockGateway, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	withdrawalRepo := NewMockWithdrawalRepo(ctrl)
	ledger := NewMockLedgerRepo(ctrl)
	gateway := NewMockGateway(ctrl)
	txManager := pg.NewMockTXManager(ctrl)

	service := New(withdrawalRepo, ledger, gateway, txManager, 2000, 0.04)
	defer ctrl.Finish()
	return service, withdrawalRepo, ledger, gateway, txManager
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestResolveAccount(t *testing.T) {
	service, _, _, gateway, _ := NewMock(t)

	tests := []struct {
		name          string
		bankCode      string
		accountNumber string
		prepareMock   func()
		expectedName  string
		expectedError error
	}{
		{
			name:          "Resolves account name",
			bankCode:      "044",
			accountNumber: "0690000040",
			prepareMock: func() {
				gateway.EXPECT().ResolveAccount(gomock.Any(), "044", "0690000040").Return("Ada Lovelace", nil)
			},
			expectedName: "Ada Lovelace",
		},
		{
			name:          "Rejects short account number before the provider",
			bankCode:      "044",
			accountNumber: "069",
			expectedError: ErrInvalidAccount,
		},
		{
			name:          "Rejects missing bank code",
			bankCode:      "",
			accountNumber: "0690000040",
			expectedError: ErrInvalidAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			name, err := service.ResolveAccount(context.Background(), tt.bankCode, tt.accountNumber)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedName, name)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	service, withdrawalRepo, ledger, gateway, txManager := NewMock(t)

	validReq := Request{
		Amount:        5000,
		BankCode:      "044",
		AccountNumber: "0690000040",
		AccountName:   "Ada Lovelace",
	}
	user := &domain.User{ID: 1, Email: "user@example.com", Balance: 10000}

	tests := []struct {
		name           string
		req            Request
		prepareMock    func()
		expectedError  error
		expectedStatus string
	}{
		{
			name: "Debits gross, transfers net, marks processing",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				ledger.EXPECT().Debit(gomock.Any(), 1, 5000.0).Return(5000.0, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, wd *domain.Withdrawal) (*domain.Withdrawal, error) {
						assert.Equal(t, 5000.0, wd.Amount)
						assert.Equal(t, 200.0, wd.Fee)
						assert.Equal(t, 4800.0, wd.NetAmount)
						assert.Equal(t, domain.WithdrawalInitiated, wd.Status)
						wd.ID = 5
						return wd, nil
					})
				gateway.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, req flutterwave.TransferRequest) (*flutterwave.TransferAck, error) {
						assert.Equal(t, 4800.0, req.Amount)
						assert.Equal(t, 5, req.Meta["withdrawal_id"])
						return &flutterwave.TransferAck{ID: 777, Reference: req.Reference}, nil
					})
				withdrawalRepo.EXPECT().MarkProcessing(gomock.Any(), 5, gomock.Any()).Return(nil)
			},
			expectedStatus: domain.WithdrawalProcessing,
		},
		{
			name: "Synchronous rejection refunds the gross exactly once",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				ledger.EXPECT().Debit(gomock.Any(), 1, 5000.0).Return(5000.0, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, wd *domain.Withdrawal) (*domain.Withdrawal, error) {
						wd.ID = 6
						return wd, nil
					})
				gateway.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any()).
					Return(nil, &flutterwave.ProviderError{Message: "insufficient provider float"})
				passThroughTx(txManager)
				withdrawalRepo.EXPECT().MarkFailed(gomock.Any(), 6, "insufficient provider float").Return(true, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, 5000.0).Return(10000.0, nil)
			},
			expectedError: &flutterwave.ProviderError{Message: "insufficient provider float"},
		},
		{
			name: "Unknown transfer outcome leaves the debit in place",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				ledger.EXPECT().Debit(gomock.Any(), 1, 5000.0).Return(5000.0, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, wd *domain.Withdrawal) (*domain.Withdrawal, error) {
						wd.ID = 7
						return wd, nil
					})
				gateway.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any()).
					Return(nil, flutterwave.ErrUnavailable)
			},
			expectedError: flutterwave.ErrUnavailable,
		},
		{
			name:          "Amount below minimum",
			req:           Request{Amount: 1500, BankCode: "044", AccountNumber: "0690000040", AccountName: "Ada Lovelace"},
			expectedError: ErrBelowMinimum,
		},
		{
			name:          "Missing bank details",
			req:           Request{Amount: 5000, BankCode: "044", AccountNumber: "0690000040"},
			expectedError: ErrMissingBankDetails,
		},
		{
			name:          "Malformed account number",
			req:           Request{Amount: 5000, BankCode: "044", AccountNumber: "069-000-0040", AccountName: "Ada Lovelace"},
			expectedError: ErrInvalidAccount,
		},
		{
			name: "Balance below gross amount",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 1000}, nil)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name: "Concurrent spend loses the conditional debit",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				ledger.EXPECT().Debit(gomock.Any(), 1, 5000.0).Return(0.0, domain.ErrInsufficientFunds)
			},
			expectedError: domain.ErrInsufficientFunds,
		},
		{
			name: "Withdrawal insert failure refunds the debit",
			req:  validReq,
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(user, nil)
				ledger.EXPECT().Debit(gomock.Any(), 1, 5000.0).Return(5000.0, nil)
				withdrawalRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
				ledger.EXPECT().Credit(gomock.Any(), 1, 5000.0).Return(10000.0, nil)
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			withdrawal, err := service.Withdraw(context.Background(), 1, tt.req)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, withdrawal)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, withdrawal.Status)
				assert.Equal(t, 4800.0, withdrawal.NetAmount)
			}
		})
	}
}

func TestSettleTransfer(t *testing.T) {
	service, withdrawalRepo, ledger, _, txManager := NewMock(t)

	withdrawal := &domain.Withdrawal{
		ID:     5,
		UserID: 1,
		Amount: 5000,
		Status: domain.WithdrawalProcessing,
	}

	tests := []struct {
		name          string
		status        string
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Successful transfer settles the withdrawal",
			status: "SUCCESSFUL",
			prepareMock: func() {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), 5).Return(withdrawal, nil)
				withdrawalRepo.EXPECT().MarkSuccess(gomock.Any(), 5).Return(true, nil)
			},
		},
		{
			name:   "Failed transfer refunds the gross",
			status: "FAILED",
			prepareMock: func() {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), 5).Return(withdrawal, nil)
				passThroughTx(txManager)
				withdrawalRepo.EXPECT().MarkFailed(gomock.Any(), 5, "transfer failed").Return(true, nil)
				ledger.EXPECT().Credit(gomock.Any(), 1, 5000.0).Return(10000.0, nil)
			},
		},
		{
			name:   "Redelivered failure does not refund twice",
			status: "FAILED",
			prepareMock: func() {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), 5).Return(withdrawal, nil)
				passThroughTx(txManager)
				withdrawalRepo.EXPECT().MarkFailed(gomock.Any(), 5, "transfer failed").Return(false, nil)
			},
		},
		{
			name:   "Intermediate status is ignored",
			status: "PENDING",
			prepareMock: func() {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), 5).Return(withdrawal, nil)
			},
		},
		{
			name:   "Unknown withdrawal",
			status: "SUCCESSFUL",
			prepareMock: func() {
				withdrawalRepo.EXPECT().FindByID(gomock.Any(), 5).Return(nil, nil)
			},
			expectedError: ErrWithdrawalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			err := service.SettleTransfer(context.Background(), 5, tt.status)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetBalance(t *testing.T) {
	service, _, ledger, _, _ := NewMock(t)

	tests := []struct {
		name            string
		prepareMock     func()
		expectedBalance float64
		expectedError   error
	}{
		{
			name: "Returns current balance",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Balance: 12345.0}, nil)
			},
			expectedBalance: 12345.0,
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				ledger.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			balance, err := service.GetBalance(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBalance, balance)
			}
		})
	}
}

func TestGetWithdrawals(t *testing.T) {
	service, withdrawalRepo, _, _, _ := NewMock(t)

	expected := []domain.Withdrawal{{ID: 5, Amount: 5000, Status: domain.WithdrawalSuccess}}
	withdrawalRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return(expected, nil)

	withdrawals, err := service.GetWithdrawals(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, withdrawals)
}
