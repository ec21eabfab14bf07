package withdraw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/dto"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/service/withdrawservice"
	"github.com/havenvest/havenvest/internal/terms"
	"github.com/havenvest/havenvest/pkg/auth"
	"github.com/havenvest/havenvest/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (float64, error)
	Banks(ctx context.Context) ([]flutterwave.Bank, error)
	ResolveAccount(ctx context.Context, bankCode, accountNumber string) (string, error)
	Withdraw(ctx context.Context, userID int, req withdrawservice.Request) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type WithdrawHandler struct {
	withdrawService Service
}

func New(withdrawService Service) *WithdrawHandler {
	return &WithdrawHandler{
		withdrawService: withdrawService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Tags			Withdraw
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance [get]
func (h *WithdrawHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	balance, err := h.withdrawService.GetBalance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{Balance: balance})
}

// GetBanks godoc
//
//	@Summary		List transfer-enabled banks
//	@Tags			Withdraw
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.BankResponseDTO
//	@Failure		502	{object}	utils.Response	"Provider error"
//	@Failure		503	{object}	utils.Response	"Provider unavailable"
//	@Router			/api/withdraw/banks [get]
func (h *WithdrawHandler) GetBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.withdrawService.Banks(r.Context())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := make([]dto.BankResponseDTO, len(banks))
	for i, bank := range banks {
		response[i] = dto.BankResponseDTO{ID: bank.ID, Code: bank.Code, Name: bank.Name}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ResolveAccount godoc
//
//	@Summary		Resolve a bank account name
//	@Description	Look up the account holder's name before a withdrawal; read-only and safe to repeat
//	@Tags			Withdraw
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ResolveAccountRequestDTO	true	"Resolve request payload"
//	@Success		200		{object}	dto.ResolveAccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		422		{object}	utils.Response	"Account number is invalid"
//	@Failure		502		{object}	utils.Response	"Provider error"
//	@Router			/api/withdraw/resolve [post]
func (h *WithdrawHandler) ResolveAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveAccountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accountName, err := h.withdrawService.ResolveAccount(r.Context(), req.BankCode, req.AccountNumber)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ResolveAccountResponseDTO{AccountName: accountName})
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Deduct the gross amount from the balance and initiate a provider transfer of the net amount
//	@Tags			Withdraw
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		422		{object}	utils.Response	"Validation failed"
//	@Failure		502		{object}	utils.Response	"Provider rejected the transfer"
//	@Failure		503		{object}	utils.Response	"Provider unavailable"
//	@Router			/api/withdraw [post]
func (h *WithdrawHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	withdrawal, err := h.withdrawService.Withdraw(r.Context(), userID, withdrawservice.Request{
		Amount:        req.Amount,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		WithdrawalID: withdrawal.ID,
		GrossAmount:  withdrawal.Amount,
		Fee:          withdrawal.Fee,
		NetAmount:    withdrawal.NetAmount,
		Status:       withdrawal.Status,
	})
}

// GetWithdrawals godoc
//
//	@Summary		Get withdrawals history
//	@Tags			Withdraw
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GetWithdrawalsResponseDTO
//	@Success		204	{object}	utils.Response	"Withdrawals not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	withdrawals, err := h.withdrawService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}

	response := make([]dto.GetWithdrawalsResponseDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.GetWithdrawalsResponseDTO{
			ID:        wd.ID,
			Amount:    wd.Amount,
			Fee:       wd.Fee,
			NetAmount: wd.NetAmount,
			Status:    wd.Status,
			Error:     wd.Error,
			CreatedAt: wd.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	var providerErr *flutterwave.ProviderError
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, withdrawservice.ErrBelowMinimum),
		errors.Is(err, withdrawservice.ErrMissingBankDetails),
		errors.Is(err, withdrawservice.ErrInvalidAccount),
		errors.Is(err, terms.ErrNetNotPositive):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, flutterwave.ErrUnavailable):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Provider unavailable, try again later")
	case errors.As(err, &providerErr):
		utils.RespondWithError(w, http.StatusBadGateway, providerErr.Message)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
