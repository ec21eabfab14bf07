package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Balance      float64   `db:"balance"`
	ReferralCode string    `db:"referral_code"`
	ReferredBy   *int      `db:"referred_by"`
	CreatedAt    time.Time `db:"created_at"`
}

type Plan struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Amount      float64 `db:"amount"`
	DailyReturn float64 `db:"daily_return"`
}

// Transaction is an inbound payment intent. Amount and plan are frozen at
// creation; status moves pending -> success|failed exactly once.
type Transaction struct {
	ID                int       `db:"id"`
	UserID            int       `db:"user_id"`
	Email             string    `db:"email"`
	PlanID            string    `db:"plan_id"`
	Amount            float64   `db:"amount"`
	ProviderReference string    `db:"provider_reference"`
	ProviderTxID      string    `db:"provider_tx_id"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
}

// Investment carries a snapshot of the plan terms at creation time.
// SourceTransactionID is unique: at most one investment per settled transaction.
type Investment struct {
	ID                  int        `db:"id"`
	UserID              int        `db:"user_id"`
	PlanID              string     `db:"plan_id"`
	Amount              float64    `db:"amount"`
	DailyReturn         float64    `db:"daily_return"`
	StartAt             time.Time  `db:"start_at"`
	EndAt               time.Time  `db:"end_at"`
	Status              string     `db:"status"`
	SourceTransactionID int        `db:"source_transaction_id"`
	LastPaidAt          *time.Time `db:"last_paid_at"`
	CreatedAt           time.Time  `db:"created_at"`
}

// Withdrawal records a gross debit. NetAmount + Fee always equals Amount.
type Withdrawal struct {
	ID                int       `db:"id"`
	UserID            int       `db:"user_id"`
	Email             string    `db:"email"`
	Amount            float64   `db:"amount"`
	Fee               float64   `db:"fee"`
	NetAmount         float64   `db:"net_amount"`
	BankCode          string    `db:"bank_code"`
	AccountNumber     string    `db:"account_number"`
	AccountName       string    `db:"account_name"`
	ProviderReference string    `db:"provider_reference"`
	Status            string    `db:"status"`
	Error             string    `db:"error"`
	CreatedAt         time.Time `db:"created_at"`
}

const (
	TransactionPending = "pending"
	TransactionSuccess = "success"
	TransactionFailed  = "failed"

	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentCancelled = "cancelled"

	WithdrawalInitiated  = "initiated"
	WithdrawalProcessing = "processing"
	WithdrawalSuccess    = "success"
	WithdrawalFailed     = "failed"
)
