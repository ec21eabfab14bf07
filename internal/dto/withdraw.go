package dto

import "time"

type BalanceResponseDTO struct {
	Balance float64 `json:"balance" example:"10000"`
}

type ResolveAccountRequestDTO struct {
	BankCode      string `json:"bank_code" validate:"required" example:"044"`
	AccountNumber string `json:"account_number" validate:"required,min=10" example:"0690000040"`
}

type ResolveAccountResponseDTO struct {
	AccountName string `json:"account_name" example:"Ada Lovelace"`
}

type BankResponseDTO struct {
	ID   int    `json:"id" example:"132"`
	Code string `json:"code" example:"044"`
	Name string `json:"name" example:"Access Bank"`
}

type WithdrawRequestDTO struct {
	Amount        float64 `json:"amount" validate:"required" example:"5000"`
	BankCode      string  `json:"bank_code" validate:"required" example:"044"`
	AccountNumber string  `json:"account_number" validate:"required,min=10" example:"0690000040"`
	AccountName   string  `json:"account_name" validate:"required" example:"Ada Lovelace"`
}

type WithdrawResponseDTO struct {
	WithdrawalID int     `json:"withdrawal_id" example:"1"`
	GrossAmount  float64 `json:"gross_amount" example:"5000"`
	Fee          float64 `json:"fee" example:"200"`
	NetAmount    float64 `json:"net_amount" example:"4800"`
	Status       string  `json:"status" example:"processing"`
}

type GetWithdrawalsResponseDTO struct {
	ID        int       `json:"id" example:"1"`
	Amount    float64   `json:"amount" example:"5000"`
	Fee       float64   `json:"fee" example:"200"`
	NetAmount float64   `json:"net_amount" example:"4800"`
	Status    string    `json:"status" example:"processing"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
