package repo

import (
	"github.com/havenvest/havenvest/internal/pg"
	investmentrepo "github.com/havenvest/havenvest/internal/repo/investment-repo"
	planrepo "github.com/havenvest/havenvest/internal/repo/plan-repo"
	transactionrepo "github.com/havenvest/havenvest/internal/repo/transaction-repo"
	userrepo "github.com/havenvest/havenvest/internal/repo/user-repo"
	withdrawalrepo "github.com/havenvest/havenvest/internal/repo/withdrawal-repo"
	"github.com/havenvest/havenvest/internal/service/authservice"
	"github.com/havenvest/havenvest/internal/service/investservice"
	"github.com/havenvest/havenvest/internal/service/withdrawservice"
)

type Repositories struct {
	UserRepo        authservice.Repo
	PlanRepo        investservice.PlanRepo
	TransactionRepo investservice.TransactionRepo
	WithdrawalRepo  withdrawservice.WithdrawalRepo

	// Ledger and InvestmentRepo stay concrete: the user ledger backs the
	// invest, withdraw and payout services and each consumes a different
	// slice of it.
	Ledger         *userrepo.Repository
	InvestmentRepo *investmentrepo.Repository
}

func New(conn pg.Database) *Repositories {
	ledger := userrepo.New(conn)

	return &Repositories{
		UserRepo:        ledger,
		PlanRepo:        planrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		WithdrawalRepo:  withdrawalrepo.New(conn),
		Ledger:          ledger,
		InvestmentRepo:  investmentrepo.New(conn),
	}
}
