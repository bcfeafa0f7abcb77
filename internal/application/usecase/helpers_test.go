package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
	"github.com/jhoicas/isp-billing/internal/infrastructure/memory"
)

var defaultVAT = decimal.NewFromInt(19)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

type fixture struct {
	store    *memory.Store
	concepts *usecase.ConceptUseCase
	plans    *usecase.PlanUseCase
	clients  *usecase.ClientUseCase
	sites    *usecase.SiteUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:    store,
		concepts: usecase.NewConceptUseCase(store.Concepts(), defaultVAT),
		plans:    usecase.NewPlanUseCase(store.Plans(), defaultVAT),
		clients:  usecase.NewClientUseCase(store.Clients()),
		sites:    usecase.NewSiteUseCase(store.Sites(), store.Clients(), store.Plans(), store.Concepts()),
	}
}

func (f *fixture) plan(t *testing.T, typ, price string) *dto.PlanResponse {
	t.Helper()
	in := dto.CreatePlanRequest{Name: "Plan " + typ + " " + price, Type: typ}
	if price != "" {
		in.Price = dec(price)
	}
	p, err := f.plans.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func (f *fixture) client(t *testing.T, identification string, stratum int) *dto.ClientResponse {
	t.Helper()
	c, err := f.clients.Create(context.Background(), dto.CreateClientRequest{
		Identification: identification, Name: "Cliente " + identification, Stratum: stratum,
	})
	require.NoError(t, err)
	return c
}
