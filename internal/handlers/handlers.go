package handlers

import (
	"net/http"

	_ "github.com/havenvest/havenvest/docs"
	"github.com/havenvest/havenvest/internal/config"
	authhandlers "github.com/havenvest/havenvest/internal/handlers/auth"
	investhandlers "github.com/havenvest/havenvest/internal/handlers/invest"
	webhookhandlers "github.com/havenvest/havenvest/internal/handlers/webhook"
	withdrawhandlers "github.com/havenvest/havenvest/internal/handlers/withdraw"
	"github.com/havenvest/havenvest/internal/service"
	"github.com/havenvest/havenvest/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type InvestHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	Invest(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	GetInvestments(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type WithdrawHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetBanks(w http.ResponseWriter, r *http.Request)
	ResolveAccount(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	InvestHandler   InvestHandler
	WithdrawHandler WithdrawHandler
	WebhookHandler  WebhookHandler
}

func New(s *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		InvestHandler:   investhandlers.New(s.InvestService),
		WithdrawHandler: withdrawhandlers.New(s.WithdrawService),
		WebhookHandler:  webhookhandlers.New(cfg.WebhookSecretHash, s.InvestService, s.WithdrawService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Get("/api/plans", h.InvestHandler.GetPlans)
	r.Post("/api/webhook/flutterwave", h.WebhookHandler.Handle)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/investments", h.InvestHandler.GetInvestments)
			r.Get("/transactions", h.InvestHandler.GetTransactions)
			r.Get("/balance", h.WithdrawHandler.GetBalance)
			r.Get("/withdrawals", h.WithdrawHandler.GetWithdrawals)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Route("/api/invest", func(r chi.Router) {
			r.Post("/", h.InvestHandler.Invest)
			r.Post("/verify", h.InvestHandler.Verify)
		})
		r.Route("/api/withdraw", func(r chi.Router) {
			r.Post("/", h.WithdrawHandler.Withdraw)
			r.Get("/banks", h.WithdrawHandler.GetBanks)
			r.Post("/resolve", h.WithdrawHandler.ResolveAccount)
		})
	})

	return r
}
