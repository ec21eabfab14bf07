package dto

import "time"

type PlanResponseDTO struct {
	ID          string  `json:"id" example:"starter"`
	Name        string  `json:"name" example:"Starter Plan"`
	Amount      float64 `json:"amount" example:"10000"`
	DailyReturn float64 `json:"daily_return" example:"16.67"`
}

type InvestRequestDTO struct {
	PlanID string `json:"plan_id" validate:"required" example:"starter"`
}

type InvestResponseDTO struct {
	Link string `json:"link" example:"https://checkout.flutterwave.com/v3/hosted/pay/abc123"`
}

type VerifyRequestDTO struct {
	TransactionID string `json:"transaction_id" validate:"required" example:"8104325"`
	TxRef         string `json:"tx_ref" example:"inv-2f5c6f1e"`
}

type InvestmentResponseDTO struct {
	ID          int       `json:"id" example:"1"`
	PlanID      string    `json:"plan_id" example:"starter"`
	Amount      float64   `json:"amount" example:"10000"`
	DailyReturn float64   `json:"daily_return" example:"16.67"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status" example:"active"`
}

type TransactionResponseDTO struct {
	ID                int       `json:"id" example:"1"`
	PlanID            string    `json:"plan_id" example:"starter"`
	Amount            float64   `json:"amount" example:"10000"`
	ProviderReference string    `json:"provider_reference" example:"inv-2f5c6f1e"`
	Status            string    `json:"status" example:"pending"`
	CreatedAt         time.Time `json:"created_at"`
}
