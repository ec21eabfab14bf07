package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/havenvest/havenvest/internal/domain"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/service/investservice"
	"github.com/havenvest/havenvest/pkg/utils"
	"go.uber.org/zap"
)

type InvestService interface {
	Verify(ctx context.Context, providerTxID, clientTxRef string) (*domain.Investment, error)
}

type WithdrawService interface {
	SettleTransfer(ctx context.Context, withdrawalID int, providerStatus string) error
}

type WebhookHandler struct {
	secretHash      string
	investService   InvestService
	withdrawService WithdrawService
}

func New(secretHash string, investService InvestService, withdrawService WithdrawService) *WebhookHandler {
	return &WebhookHandler{
		secretHash:      secretHash,
		investService:   investService,
		withdrawService: withdrawService,
	}
}

type event struct {
	Event string `json:"event"`
	Data  struct {
		ID     json.Number `json:"id"`
		Status string      `json:"status"`
		TxRef  string      `json:"tx_ref"`
		Meta   struct {
			WithdrawalID json.Number `json:"withdrawal_id"`
		} `json:"meta"`
	} `json:"data"`
}

// Handle godoc
//
//	@Summary		Provider webhook
//	@Description	Receive charge and transfer outcome notifications; the verif-hash header must carry the HMAC-SHA256 of the raw body
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"Invalid signature"
//	@Failure		500	{object}	utils.Response	"Processing failed, redeliver"
//	@Router			/api/webhook/flutterwave [post]
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rawBody, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Signature mismatch rejects with no side effects and no hint about
	// what the body referenced.
	if !h.validSignature(r.Header.Get("verif-hash"), rawBody) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	var ev event
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	switch ev.Event {
	case "charge.completed":
		h.handleCharge(w, r, ev)
	case "transfer.completed":
		h.handleTransfer(w, r, ev)
	default:
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Ignored"})
	}
}

func (h *WebhookHandler) validSignature(signature string, rawBody []byte) bool {
	if h.secretHash == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secretHash))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// handleCharge feeds the notification into the same idempotent
// reconciliation the client-driven verify uses; racing with it is safe.
func (h *WebhookHandler) handleCharge(w http.ResponseWriter, r *http.Request, ev event) {
	if ev.Data.ID.String() == "" {
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Missing transaction ID"})
		return
	}

	_, err := h.investService.Verify(r.Context(), ev.Data.ID.String(), ev.Data.TxRef)
	switch {
	case err == nil,
		errors.Is(err, investservice.ErrChargeNotSuccessful),
		errors.Is(err, investservice.ErrTransactionFailed):
		// The outcome, good or bad, is recorded. A success signal for a
		// transaction already terminal at failed is acknowledged too, since
		// redelivery can never change it.
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Webhook processed"})
	case errors.Is(err, flutterwave.ErrUnavailable):
		// Unknown outcome: answer non-2xx so the provider redelivers.
		utils.RespondWithError(w, http.StatusInternalServerError, "Processing failed")
	default:
		zap.L().Error("charge webhook processing failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Processing failed")
	}
}

func (h *WebhookHandler) handleTransfer(w http.ResponseWriter, r *http.Request, ev event) {
	withdrawalID, err := ev.Data.Meta.WithdrawalID.Int64()
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Missing withdrawal ID"})
		return
	}

	if err := h.withdrawService.SettleTransfer(r.Context(), int(withdrawalID), ev.Data.Status); err != nil {
		zap.L().Error("transfer webhook processing failed",
			zap.Int64("withdrawal_id", withdrawalID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Processing failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Webhook processed"})
}
