package invest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/dto"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/service/investservice"
	"github.com/havenvest/havenvest/internal/terms"
	"github.com/havenvest/havenvest/pkg/auth"
	"github.com/havenvest/havenvest/pkg/utils"
)

type Service interface {
	Invest(ctx context.Context, userID int, planID string) (string, error)
	Verify(ctx context.Context, providerTxID, clientTxRef string) (*domain.Investment, error)
	GetPlans(ctx context.Context) ([]domain.Plan, error)
	GetInvestments(ctx context.Context, userID int) ([]domain.Investment, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type InvestHandler struct {
	investService Service
}

func New(investService Service) *InvestHandler {
	return &InvestHandler{
		investService: investService,
	}
}

// GetPlans godoc
//
//	@Summary		List investment plans
//	@Description	Return the available investment plans with their canonical amounts and daily returns
//	@Tags			Invest
//	@Produce		json
//	@Success		200	{array}		dto.PlanResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/plans [get]
func (h *InvestHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.investService.GetPlans(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PlanResponseDTO, len(plans))
	for i, plan := range plans {
		response[i] = dto.PlanResponseDTO{
			ID:          plan.ID,
			Name:        plan.Name,
			Amount:      plan.Amount,
			DailyReturn: plan.DailyReturn,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Invest godoc
//
//	@Summary		Open an investment charge
//	@Description	Create a pending transaction for the selected plan and return the hosted payment link
//	@Tags			Invest
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.InvestRequestDTO	true	"Invest request payload"
//	@Success		200		{object}	dto.InvestResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Plan not found"
//	@Failure		502		{object}	utils.Response	"Provider rejected the charge"
//	@Failure		503		{object}	utils.Response	"Provider unavailable"
//	@Router			/api/invest [post]
func (h *InvestHandler) Invest(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.InvestRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlanID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "plan_id is required")
		return
	}

	link, err := h.investService.Invest(r.Context(), userID, req.PlanID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.InvestResponseDTO{Link: link})
}

// Verify godoc
//
//	@Summary		Verify a charge
//	@Description	Reconcile a charge outcome with the provider and materialize the investment; safe to call repeatedly
//	@Tags			Invest
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyRequestDTO	true	"Verify request payload"
//	@Success		200		{object}	dto.InvestmentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		402		{object}	utils.Response	"Charge was not successful"
//	@Failure		409		{object}	utils.Response	"No transaction matches the provider reference"
//	@Failure		422		{object}	utils.Response	"Paid amount does not match the plan"
//	@Failure		503		{object}	utils.Response	"Provider unavailable, retry later"
//	@Router			/api/invest/verify [post]
func (h *InvestHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TransactionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "transaction_id is required")
		return
	}

	investment, err := h.investService.Verify(r.Context(), req.TransactionID, req.TxRef)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toInvestmentDTO(*investment))
}

// GetInvestments godoc
//
//	@Summary		List the user's investments
//	@Tags			Invest
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.InvestmentResponseDTO
//	@Success		204	{object}	utils.Response	"No investments"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/investments [get]
func (h *InvestHandler) GetInvestments(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	investments, err := h.investService.GetInvestments(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch investments")
		return
	}
	if len(investments) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Investments not found")
		return
	}

	response := make([]dto.InvestmentResponseDTO, len(investments))
	for i, inv := range investments {
		response[i] = toInvestmentDTO(inv)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetTransactions godoc
//
//	@Summary		List the user's payment transactions
//	@Tags			Invest
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{object}	utils.Response	"No transactions"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/transactions [get]
func (h *InvestHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	transactions, err := h.investService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if len(transactions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Transactions not found")
		return
	}

	response := make([]dto.TransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.TransactionResponseDTO{
			ID:                tx.ID,
			PlanID:            tx.PlanID,
			Amount:            tx.Amount,
			ProviderReference: tx.ProviderReference,
			Status:            tx.Status,
			CreatedAt:         tx.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toInvestmentDTO(inv domain.Investment) dto.InvestmentResponseDTO {
	return dto.InvestmentResponseDTO{
		ID:          inv.ID,
		PlanID:      inv.PlanID,
		Amount:      inv.Amount,
		DailyReturn: inv.DailyReturn,
		StartAt:     inv.StartAt,
		EndAt:       inv.EndAt,
		Status:      inv.Status,
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	var providerErr *flutterwave.ProviderError
	switch {
	case errors.Is(err, investservice.ErrPlanNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, investservice.ErrUserNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, investservice.ErrChargeNotSuccessful):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, investservice.ErrTransactionNotFound),
		errors.Is(err, investservice.ErrTransactionFailed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, terms.ErrAmountMismatch):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, flutterwave.ErrUnavailable):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Provider unavailable, try again later")
	case errors.As(err, &providerErr):
		utils.RespondWithError(w, http.StatusBadGateway, providerErr.Message)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
