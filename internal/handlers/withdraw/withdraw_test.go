package withdraw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/dto"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/service/withdrawservice"
	"github.com/havenvest/havenvest/pkg/auth"
	"github.com/havenvest/havenvest/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*WithdrawHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authorizedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	return req.WithContext(ctx)
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Returns the balance", func(t *testing.T) {
		service.EXPECT().GetBalance(gomock.Any(), 1).Return(10000.0, nil)

		req := authorizedRequest("GET", "/api/user/balance", "")
		rr := httptest.NewRecorder()

		handler.GetBalance(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.BalanceResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 10000.0, resp.Balance)
	})

	t.Run("Internal server error", func(t *testing.T) {
		service.EXPECT().GetBalance(gomock.Any(), 1).Return(0.0, errors.New("database error"))

		req := authorizedRequest("GET", "/api/user/balance", "")
		rr := httptest.NewRecorder()

		handler.GetBalance(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetBanksHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Returns banks", func(t *testing.T) {
		service.EXPECT().Banks(gomock.Any()).Return([]flutterwave.Bank{
			{ID: 1, Code: "044", Name: "Access Bank"},
		}, nil)

		req := authorizedRequest("GET", "/api/withdraw/banks", "")
		rr := httptest.NewRecorder()

		handler.GetBanks(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []dto.BankResponseDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, "044", resp[0].Code)
	})

	t.Run("Provider unavailable", func(t *testing.T) {
		service.EXPECT().Banks(gomock.Any()).Return(nil, flutterwave.ErrUnavailable)

		req := authorizedRequest("GET", "/api/withdraw/banks", "")
		rr := httptest.NewRecorder()

		handler.GetBanks(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestResolveAccountHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Resolves the account name",
			body: `{"bank_code":"044","account_number":"0690000040"}`,
			prepareMock: func() {
				service.EXPECT().ResolveAccount(gomock.Any(), "044", "0690000040").
					Return("Ada Lovelace", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Malformed account number",
			body: `{"bank_code":"044","account_number":"12ab"}`,
			prepareMock: func() {
				service.EXPECT().ResolveAccount(gomock.Any(), "044", "12ab").
					Return("", withdrawservice.ErrInvalidAccount)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "account number is invalid",
		},
		{
			name: "Provider rejection",
			body: `{"bank_code":"044","account_number":"0690000040"}`,
			prepareMock: func() {
				service.EXPECT().ResolveAccount(gomock.Any(), "044", "0690000040").
					Return("", &flutterwave.ProviderError{Message: "invalid account number"})
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "invalid account number",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorizedRequest("POST", "/api/withdraw/resolve", tt.body)
			rr := httptest.NewRecorder()

			handler.ResolveAccount(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.ResolveAccountResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, "Ada Lovelace", resp.AccountName)
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	validBody := `{"amount":5000,"bank_code":"044","account_number":"0690000040","account_name":"Ada Lovelace"}`

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Initiates the withdrawal",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 1, withdrawservice.Request{
					Amount:        5000,
					BankCode:      "044",
					AccountNumber: "0690000040",
					AccountName:   "Ada Lovelace",
				}).Return(&domain.Withdrawal{
					ID:        5,
					Amount:    5000,
					Fee:       200,
					NetAmount: 4800,
					Status:    domain.WithdrawalProcessing,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Insufficient balance",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 1, gomock.Any()).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient funds",
		},
		{
			name: "Below the minimum",
			body: `{"amount":500,"bank_code":"044","account_number":"0690000040","account_name":"Ada Lovelace"}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 1, gomock.Any()).
					Return(nil, withdrawservice.ErrBelowMinimum)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Provider rejected the transfer",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 1, gomock.Any()).
					Return(nil, &flutterwave.ProviderError{Message: "insufficient provider float"})
			},
			expectedCode:  http.StatusBadGateway,
			expectedError: "insufficient provider float",
		},
		{
			name: "Provider unavailable",
			body: validBody,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), 1, gomock.Any()).
					Return(nil, flutterwave.ErrUnavailable)
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "Provider unavailable, try again later",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorizedRequest("POST", "/api/withdraw", tt.body)
			rr := httptest.NewRecorder()

			handler.Withdraw(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			} else if tt.expectedCode == http.StatusOK {
				var resp dto.WithdrawResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, 5, resp.WithdrawalID)
				assert.Equal(t, 200.0, resp.Fee)
				assert.Equal(t, 4800.0, resp.NetAmount)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Returns withdrawals",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.Withdrawal{
					{ID: 5, Amount: 5000, Fee: 200, NetAmount: 4800, Status: domain.WithdrawalSuccess},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No withdrawals",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorizedRequest("GET", "/api/user/withdrawals", "")
			rr := httptest.NewRecorder()

			handler.GetWithdrawals(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
