package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// IDs mal formados: se resuelven como "no existe" sin consultar la base.
// El querier es nil, así que cualquier acceso a la base haría panic.
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_IDMalFormadoNoExiste(t *testing.T) {
	ctx := context.Background()

	concept, err := postgres.NewConceptRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, concept)

	plan, err := postgres.NewServicePlanRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, plan)

	client, err := postgres.NewClientRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, client)

	site, err := postgres.NewSiteRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, site)

	inv, err := postgres.NewInvoiceRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestListados_IDMalFormadoVacio(t *testing.T) {
	ctx := context.Background()

	sites, err := postgres.NewSiteRepository(nil).ListByClient(ctx, "cliente-1")
	require.NoError(t, err)
	assert.Empty(t, sites)

	invoices, err := postgres.NewInvoiceRepository(nil).ListBySite(ctx, "sede-1")
	require.NoError(t, err)
	assert.Empty(t, invoices)

	exists, err := postgres.NewInvoiceRepository(nil).ExistsForSitePeriod(ctx, "sede-1", "2026-03")
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := postgres.NewServicePlanRepository(nil).CountActiveSites(ctx, "plan-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}
