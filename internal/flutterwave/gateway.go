package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/havenvest/havenvest/internal/config"
	"github.com/havenvest/havenvest/pkg/clients"
	"go.uber.org/zap"
)

// ErrUnavailable covers network failures, timeouts and non-2xx responses.
// The provider side effect may still have happened, so callers must treat
// it as unknown and re-verify later; the gateway never retries on its own.
var ErrUnavailable = errors.New("payment provider unavailable")

// ProviderError is a failure the provider itself reported in its response
// body. The outcome is known and the message is safe to surface.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "provider error: " + e.Message
}

type ChargeRequest struct {
	TxRef       string
	Amount      float64
	Currency    string
	RedirectURL string
	Email       string
	Title       string
	Meta        map[string]any
}

type VerifyResult struct {
	ProviderTxID string
	Status       string
	TxRef        string
	Amount       float64
	FlwRef       string
}

// Successful reports whether the provider marked the charge as settled.
// A 200 envelope alone proves nothing.
func (v *VerifyResult) Successful() bool {
	return v.Status == "successful"
}

type TransferRequest struct {
	BankCode      string
	AccountNumber string
	Amount        float64
	Currency      string
	Narration     string
	Reference     string
	Meta          map[string]any
}

type TransferAck struct {
	ID        int64
	Reference string
}

type Bank struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Gateway struct {
	address   string
	secretKey string
	client    clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Gateway {
	return &Gateway{
		address:   cfg.ProviderAddress,
		secretKey: cfg.ProviderSecretKey,
		client:    client,
	}
}

func (g *Gateway) do(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.address+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		zap.L().Error("provider request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Error("provider returned non-2xx",
			zap.String("path", path), zap.Int("status_code", resp.StatusCode))
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" && resp.StatusCode < 500 {
			return nil, &ProviderError{Message: env.Message}
		}
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &env, nil
}

// InitiateCharge opens a hosted payment session and returns the redirect
// link the user completes the charge on.
func (g *Gateway) InitiateCharge(ctx context.Context, req ChargeRequest) (string, error) {
	payload := map[string]any{
		"tx_ref":       req.TxRef,
		"amount":       req.Amount,
		"currency":     req.Currency,
		"redirect_url": req.RedirectURL,
		"customer":     map[string]any{"email": req.Email},
		"meta":         req.Meta,
		"customizations": map[string]any{
			"title":       req.Title,
			"description": "Investment payment",
		},
	}

	env, err := g.do(ctx, http.MethodPost, "/payments", payload)
	if err != nil {
		return "", err
	}
	if env.Status != "success" {
		return "", &ProviderError{Message: providerMessage(env, "failed to create payment link")}
	}

	var data struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Link == "" {
		return "", &ProviderError{Message: "payment link missing from provider response"}
	}
	return data.Link, nil
}

// VerifyCharge fetches the provider's view of a charge. The caller decides
// what the reported status means; an unsuccessful charge is not an error
// at this level.
func (g *Gateway) VerifyCharge(ctx context.Context, providerTxID string) (*VerifyResult, error) {
	env, err := g.do(ctx, http.MethodGet, "/transactions/"+providerTxID+"/verify", nil)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, &ProviderError{Message: providerMessage(env, "charge verification failed")}
	}

	var data struct {
		ID     json.Number `json:"id"`
		Status string      `json:"status"`
		TxRef  string      `json:"tx_ref"`
		Amount float64     `json:"amount"`
		FlwRef string      `json:"flw_ref"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &VerifyResult{
		ProviderTxID: data.ID.String(),
		Status:       data.Status,
		TxRef:        data.TxRef,
		Amount:       data.Amount,
		FlwRef:       data.FlwRef,
	}, nil
}

// ResolveAccount looks up the account holder's name. Read-only and safe to
// repeat.
func (g *Gateway) ResolveAccount(ctx context.Context, bankCode, accountNumber string) (string, error) {
	payload := map[string]any{
		"account_number": accountNumber,
		"account_bank":   bankCode,
	}

	env, err := g.do(ctx, http.MethodPost, "/accounts/resolve", payload)
	if err != nil {
		return "", err
	}
	if env.Status != "success" {
		return "", &ProviderError{Message: providerMessage(env, "account resolve failed")}
	}

	var data struct {
		AccountName string `json:"account_name"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccountName == "" {
		return "", &ProviderError{Message: "account name missing from provider response"}
	}
	return data.AccountName, nil
}

// InitiateTransfer asks the provider to pay out to a bank account. Called
// at most once per withdrawal; the final outcome arrives via webhook.
func (g *Gateway) InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferAck, error) {
	payload := map[string]any{
		"account_bank":   req.BankCode,
		"account_number": req.AccountNumber,
		"amount":         req.Amount,
		"currency":       req.Currency,
		"narration":      req.Narration,
		"reference":      req.Reference,
		"meta":           req.Meta,
	}

	env, err := g.do(ctx, http.MethodPost, "/transfers", payload)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, &ProviderError{Message: providerMessage(env, "transfer failed")}
	}

	var data struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	ack := &TransferAck{ID: data.ID, Reference: data.Reference}
	if ack.Reference == "" {
		ack.Reference = fmt.Sprintf("%d", data.ID)
	}
	return ack, nil
}

// ListBanks returns the transfer-enabled banks for NG.
func (g *Gateway) ListBanks(ctx context.Context) ([]Bank, error) {
	env, err := g.do(ctx, http.MethodGet, "/banks/NG?type=transfer", nil)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, &ProviderError{Message: providerMessage(env, "failed to fetch banks")}
	}

	var banks []Bank
	if err := json.Unmarshal(env.Data, &banks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return banks, nil
}

func providerMessage(env *envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	return fallback
}
