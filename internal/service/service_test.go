package service

import (
	"testing"

	"github.com/havenvest/havenvest/internal/config"
	"github.com/havenvest/havenvest/internal/flutterwave"
	"github.com/havenvest/havenvest/internal/pg"
	"github.com/havenvest/havenvest/internal/repo"
	"github.com/havenvest/havenvest/pkg/clients"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	cfg := &config.Config{
		ProviderAddress:   "https://api.flutterwave.com/v3",
		ProviderSecretKey: "FLWSECK_TEST-secret",
		AppURL:            "http://localhost:3000",
		MinWithdrawal:     2000,
		FeeRate:           0.04,
	}
	gateway := flutterwave.New(cfg, clients.NewMockHTTPClientI(ctrl))
	repos := repo.New(mockDB)

	services := New(repos, gateway, pg.NewMockTXManager(ctrl), cfg)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.InvestService)
	assert.NotNil(t, services.WithdrawService)
}
