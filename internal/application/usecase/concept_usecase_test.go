package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

func internetConcept(code string) dto.UpsertConceptRequest {
	return dto.UpsertConceptRequest{
		Code:       code,
		Name:       "  Internet 10MB ",
		BaseValue:  dec("80000"),
		AppliesVAT: boolPtr(true),
		VATPercent: dec("19"),
		Type:       "internet",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestConceptUpsert_IdaYVuelta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.concepts.Upsert(ctx, "", internetConcept(" int01 "))
	require.NoError(t, err)
	assert.Equal(t, "INT01", created.Code)
	assert.Equal(t, "Internet 10MB", created.Name)
	assert.True(t, created.Active)
	assert.Equal(t, "15200", created.VATAmount.String())
	assert.Equal(t, "95200", created.ValueWithVAT.String())

	byCode, err := f.concepts.GetByCode(ctx, "Int01")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)
	assert.True(t, created.BaseValue.Equal(byCode.BaseValue))

	byID, err := f.concepts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, byID.Code)
}

func TestConceptUpsert_CodigoDuplicadoSinDistinguirMayusculas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.concepts.Upsert(ctx, "", internetConcept("INT01"))
	require.NoError(t, err)

	_, err = f.concepts.Upsert(ctx, "", internetConcept("int01"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	// otro registro no puede tomar el código
	other, err := f.concepts.Upsert(ctx, "", internetConcept("INT02"))
	require.NoError(t, err)
	_, err = f.concepts.Upsert(ctx, other.ID, internetConcept("Int01"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	// el mismo registro conserva su código
	in := internetConcept("int01")
	in.BaseValue = dec("90000")
	updated, err := f.concepts.Upsert(ctx, first.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "90000", updated.BaseValue.String())
	assert.Equal(t, "17100", updated.VATAmount.String())
}

func TestConceptUpsert_ActualizarInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.concepts.Upsert(context.Background(), "no-existe", internetConcept("INT01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConceptUpsert_Validacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := internetConcept("  ")
	_, err := f.concepts.Upsert(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = internetConcept("NEG")
	in.BaseValue = dec("-10")
	_, err = f.concepts.Upsert(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	in = internetConcept("PCT")
	in.VATPercent = dec("101")
	_, err = f.concepts.Upsert(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = internetConcept("TIPO")
	in.Type = "otro"
	_, err = f.concepts.Upsert(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConceptUpsert_IVAPorDefecto(t *testing.T) {
	f := newFixture()
	in := internetConcept("REC")
	in.Type = "reconexion"
	in.BaseValue = dec("20000")
	in.VATPercent = nil
	out, err := f.concepts.Upsert(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, "19", out.VATPercent.String())
	assert.Equal(t, "3800", out.VATAmount.String())
}

// Un concepto exento (IVA 0 explícito) conserva su tasa al renombrarse.
func TestConceptUpsert_ActualizarConservaIVACero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := dto.UpsertConceptRequest{
		Code: "EXE", Name: "Exento", BaseValue: dec("1000"),
		AppliesVAT: boolPtr(true), VATPercent: dec("0"), Type: "varios",
	}
	created, err := f.concepts.Upsert(ctx, "", in)
	require.NoError(t, err)
	require.True(t, created.VATPercent.IsZero())

	in.Name = "Exento renombrado"
	in.AppliesVAT = nil
	in.VATPercent = nil
	updated, err := f.concepts.Upsert(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Exento renombrado", updated.Name)
	assert.True(t, updated.AppliesVAT)
	assert.True(t, updated.VATPercent.IsZero())
	assert.Equal(t, "1000", updated.ValueWithVAT.String())
}

// Activar el IVA en una actualización sin porcentaje toma el valor por defecto.
func TestConceptUpsert_ActivarIVAEnActualizacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := dto.UpsertConceptRequest{
		Code: "PUB", Name: "Publicidad", BaseValue: dec("1000"),
		AppliesVAT: boolPtr(false), Type: "publicidad",
	}
	created, err := f.concepts.Upsert(ctx, "", in)
	require.NoError(t, err)

	in.AppliesVAT = boolPtr(true)
	updated, err := f.concepts.Upsert(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "19", updated.VATPercent.String())
	assert.Equal(t, "1190", updated.ValueWithVAT.String())
}

func TestConceptUpsert_SinIVAIgnoraPorcentaje(t *testing.T) {
	f := newFixture()
	in := internetConcept("INT")
	in.AppliesVAT = boolPtr(false)
	out, err := f.concepts.Upsert(context.Background(), "", in)
	require.NoError(t, err)
	assert.True(t, out.VATAmount.IsZero())
	assert.Equal(t, "80000", out.ValueWithVAT.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y desactivación
// ──────────────────────────────────────────────────────────────────────────────

func TestConceptList_PorTipoYActivos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.concepts.Upsert(ctx, "", internetConcept("INT01"))
	require.NoError(t, err)
	rec := internetConcept("REC01")
	rec.Type = "reconexion"
	recOut, err := f.concepts.Upsert(ctx, "", rec)
	require.NoError(t, err)
	require.NoError(t, f.concepts.Deactivate(ctx, recOut.ID))

	all, err := f.concepts.List(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := f.concepts.List(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "INT01", active[0].Code)

	recs, err := f.concepts.List(ctx, "reconexion", false)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Active)

	_, err = f.concepts.List(ctx, "otro", false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConceptDeactivate_EnUso(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.concepts.Upsert(ctx, "", internetConcept("INT01"))
	require.NoError(t, err)

	// una factura histórica referencia el código
	require.NoError(t, f.store.Invoices().Create(ctx, &entity.Invoice{
		ID: "inv-1", SiteID: "site-1", Period: "2026-01",
		Lines: []entity.InvoiceLine{{ID: "l1", Source: entity.LineSourceConcept, Ref: "int01"}},
	}))

	err = f.concepts.Deactivate(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	still, err := f.concepts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, still.Active)
}

func TestConceptDeactivate_Inexistente(t *testing.T) {
	f := newFixture()
	assert.ErrorIs(t, f.concepts.Deactivate(context.Background(), "nope"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga masiva
// ──────────────────────────────────────────────────────────────────────────────

func TestConceptBulkCreate_FalloParcial(t *testing.T) {
	f := newFixture()
	bad := internetConcept("BAD")
	bad.BaseValue = nil // requerido
	items := []dto.UpsertConceptRequest{
		internetConcept("A1"),
		bad,
		internetConcept("a1"), // duplicado del primero
		internetConcept("A2"),
	}
	res, err := f.concepts.BulkCreate(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Results, 4)

	assert.True(t, res.Results[0].Success)
	assert.NotNil(t, res.Results[0].Data)
	assert.False(t, res.Results[1].Success)
	assert.Contains(t, res.Results[1].Error, "base_value")
	assert.False(t, res.Results[2].Success)
	assert.Equal(t, "A1", res.Results[2].Code)
	assert.True(t, res.Results[3].Success)
	for i, r := range res.Results {
		assert.Equal(t, i, r.Index)
	}
}

func TestConceptBulkCreate_Limite(t *testing.T) {
	f := newFixture()
	items := make([]dto.UpsertConceptRequest, usecase.MaxBulkConcepts+1)
	for i := range items {
		items[i] = internetConcept(fmt.Sprintf("C%03d", i))
	}
	_, err := f.concepts.BulkCreate(context.Background(), items)
	assert.ErrorIs(t, err, domain.ErrValidation)

	res, err := f.concepts.BulkCreate(context.Background(), items[:usecase.MaxBulkConcepts])
	require.NoError(t, err)
	assert.Equal(t, usecase.MaxBulkConcepts, res.Created)

	_, err = f.concepts.BulkCreate(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
