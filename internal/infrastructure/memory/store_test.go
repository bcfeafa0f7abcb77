package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
	"github.com/jhoicas/isp-billing/internal/infrastructure/memory"
)

func TestConceptRepo_InsercionesConcurrentesMismoCodigo(t *testing.T) {
	store := memory.NewStore()
	repo := store.Concepts()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, dup := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := "int01"
			if i%2 == 0 {
				code = "INT01"
			}
			err := repo.Insert(ctx, &entity.Concept{ID: fmt.Sprintf("c%d", i), Code: code, Type: entity.ConceptInternet})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateCode):
				dup++
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestConceptRepo_CopiasIndependientes(t *testing.T) {
	repo := memory.NewStore().Concepts()
	ctx := context.Background()
	c := &entity.Concept{ID: "c1", Code: "REC", Name: "Reconexión", BaseValue: decimal.NewFromInt(20000)}
	require.NoError(t, repo.Insert(ctx, c))

	c.Name = "mutado"
	got, err := repo.FindByCode(ctx, "rec")
	require.NoError(t, err)
	assert.Equal(t, "Reconexión", got.Name)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestConceptRepo_ListFiltra(t *testing.T) {
	repo := memory.NewStore().Concepts()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, &entity.Concept{ID: "1", Code: "B", Type: entity.ConceptVarios, Active: true}))
	require.NoError(t, repo.Insert(ctx, &entity.Concept{ID: "2", Code: "A", Type: entity.ConceptVarios}))
	require.NoError(t, repo.Insert(ctx, &entity.Concept{ID: "3", Code: "C", Type: entity.ConceptInteres, Active: true}))

	list, err := repo.List(ctx, repository.ConceptFilter{Type: entity.ConceptVarios})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Code)

	list, err = repo.List(ctx, repository.ConceptFilter{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRunInvoicing_UnaFacturaPorSedeYPeriodo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.RunInvoicing(ctx, func(repo repository.InvoiceRepository) error {
				exists, err := repo.ExistsForSitePeriod(ctx, "s1", "2026-01")
				if err != nil {
					return err
				}
				if exists {
					return domain.ErrConflict
				}
				return repo.Create(ctx, &entity.Invoice{ID: fmt.Sprintf("inv%d", i), SiteID: "s1", Period: "2026-01"})
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, created)

	list, err := store.Invoices().ListBySite(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPlanRepo_CountActiveSites(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	sites := store.Sites()
	require.NoError(t, sites.Create(ctx, &entity.Site{ID: "s1", Active: true, InternetPlan: &entity.PlanRef{PlanID: "p1"}}))
	require.NoError(t, sites.Create(ctx, &entity.Site{ID: "s2", Active: false, InternetPlan: &entity.PlanRef{PlanID: "p1"}}))
	require.NoError(t, sites.Create(ctx, &entity.Site{ID: "s3", Active: true, TelevisionPlan: &entity.PlanRef{PlanID: "p1"}}))

	n, err := store.Plans().CountActiveSites(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
