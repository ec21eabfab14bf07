package service

import (
	"github.com/havenvest/havenvest/internal/config"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/pg"
	"github.com/havenvest/havenvest/internal/repo"
	authservice "github.com/havenvest/havenvest/internal/service/authservice"
	investservice "github.com/havenvest/havenvest/internal/service/investservice"
	withdrawservice "github.com/havenvest/havenvest/internal/service/withdrawservice"
	pkgauth "github.com/havenvest/havenvest/pkg/auth"
)

type Services struct {
	AuthService     *authservice.Service
	InvestService   *investservice.Service
	WithdrawService *withdrawservice.Service
}

func New(repo *repo.Repositories, gateway *flutterwave.Gateway, txManager pg.TXManager, cfg *config.Config) *Services {
	investService := investservice.New(
		repo.TransactionRepo, repo.InvestmentRepo, repo.PlanRepo, repo.Ledger, gateway, cfg.AppURL)
	withdrawService := withdrawservice.New(
		repo.WithdrawalRepo, repo.Ledger, gateway, txManager, cfg.MinWithdrawal, cfg.FeeRate)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:     authService,
		InvestService:   investService,
		WithdrawService: withdrawService,
	}
}
