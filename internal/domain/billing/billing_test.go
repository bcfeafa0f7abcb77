package billing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Regla de IVA por estrato
// ──────────────────────────────────────────────────────────────────────────────

// Tabla completa tipo × estrato × bandera: internet depende solo del estrato,
// el resto depende solo de la bandera.
func TestVATApplies_TablaCompleta(t *testing.T) {
	kinds := []billing.LineKind{
		billing.KindInternet, billing.KindTelevision, billing.KindReconexion, billing.KindInteres,
		billing.KindDescuento, billing.KindVarios, billing.KindPublicidad,
	}
	for _, kind := range kinds {
		for stratum := 1; stratum <= 6; stratum++ {
			for _, flag := range []bool{true, false} {
				want := flag
				if kind == billing.KindInternet {
					want = stratum >= 4
				}
				got := billing.VATApplies(kind, flag, stratum)
				assert.Equal(t, want, got, "kind=%s estrato=%d flag=%v", kind, stratum, flag)
			}
		}
	}
}

func TestVATApplies_EstratoNoAfectaTelevision(t *testing.T) {
	for stratum := 1; stratum <= 6; stratum++ {
		assert.True(t, billing.VATApplies(billing.KindTelevision, true, stratum))
		assert.False(t, billing.VATApplies(billing.KindTelevision, false, stratum))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Conceptos
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeDerived_SinIVAIgnoraPorcentaje(t *testing.T) {
	for _, pct := range []string{"0", "5", "19", "100"} {
		c := &entity.Concept{BaseValue: dec("15000"), AppliesVAT: false, VATPercent: dec(pct)}
		d := billing.ComputeDerived(c)
		assert.True(t, d.VATAmount.IsZero(), "pct=%s", pct)
		assert.True(t, d.ValueWithVAT.Equal(dec("15000")), "pct=%s", pct)
	}
}

func TestComputeDerived_ConIVARedondeaHalfUp(t *testing.T) {
	// 10.05 × 19% = 1.9095 → 1.91
	c := &entity.Concept{BaseValue: dec("10.05"), AppliesVAT: true, VATPercent: dec("19")}
	d := billing.ComputeDerived(c)
	assert.Equal(t, "1.91", d.VATAmount.StringFixed(2))
	assert.Equal(t, "11.96", d.ValueWithVAT.StringFixed(2))

	// 0.5 centavo exacto sube: 2.50 × 1% = 0.025 → 0.03
	c = &entity.Concept{BaseValue: dec("2.50"), AppliesVAT: true, VATPercent: dec("1")}
	assert.Equal(t, "0.03", billing.ComputeDerived(c).VATAmount.StringFixed(2))
}

func TestNormalizeConcept(t *testing.T) {
	c := &entity.Concept{Code: "  int01 ", Name: "  Internet 10M  ", Description: " x "}
	billing.NormalizeConcept(c)
	assert.Equal(t, "INT01", c.Code)
	assert.Equal(t, "Internet 10M", c.Name)
	assert.Equal(t, "x", c.Description)
}

func TestValidateConcept(t *testing.T) {
	base := func() *entity.Concept {
		return &entity.Concept{Code: "REC", Name: "Reconexión", Type: entity.ConceptReconexion,
			BaseValue: dec("20000"), AppliesVAT: true, VATPercent: dec("19")}
	}
	require.NoError(t, billing.ValidateConcept(base()))

	c := base()
	c.Type = "otro"
	assert.ErrorIs(t, billing.ValidateConcept(c), domain.ErrValidation)

	c = base()
	c.VATPercent = dec("120")
	assert.ErrorIs(t, billing.ValidateConcept(c), domain.ErrValidation)

	// porcentaje fuera de rango sin IVA se ignora
	c.AppliesVAT = false
	assert.NoError(t, billing.ValidateConcept(c))

	c = base()
	c.BaseValue = dec("-1")
	assert.ErrorIs(t, billing.ValidateConcept(c), domain.ErrInvalidPrice)

	// más de 2 decimales se rechaza en lugar de redondearse al guardar
	c = base()
	c.BaseValue = dec("100.005")
	assert.ErrorIs(t, billing.ValidateConcept(c), domain.ErrInvalidPrice)
	c = base()
	c.BaseValue = dec("100.50")
	assert.NoError(t, billing.ValidateConcept(c))
	c = base()
	c.VATPercent = dec("19.125")
	assert.ErrorIs(t, billing.ValidateConcept(c), domain.ErrValidation)
}

func TestHasCurrencyPrecision(t *testing.T) {
	assert.True(t, billing.HasCurrencyPrecision(dec("80000")))
	assert.True(t, billing.HasCurrencyPrecision(dec("10.03")))
	assert.True(t, billing.HasCurrencyPrecision(dec("10.300")))
	assert.False(t, billing.HasCurrencyPrecision(dec("10.031")))
	assert.False(t, billing.HasCurrencyPrecision(dec("-0.001")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Calculador de factura
// ──────────────────────────────────────────────────────────────────────────────

// Fixture de regresión: tres líneas de 10.03 al 19%.
// Por línea: IVA 1.9057 → 1.91, total 11.94; suma = 35.82.
// Redondeando solo la suma: 30.09 + 5.7171 = 35.8071 → 35.81 (no debe usarse).
func TestInvoiceTotal_RedondeoPorLinea(t *testing.T) {
	line := billing.Line{Ref: "VAR", Kind: billing.KindVarios, Price: ptr(dec("10.03")), AppliesVAT: true, VATPercent: dec("19")}
	lines := []billing.Line{line, line, line}

	total, err := billing.InvoiceTotal(lines, 2)
	require.NoError(t, err)
	assert.Equal(t, "35.82", total.StringFixed(2))

	globalRounding := dec("30.09").Add(dec("30.09").Mul(dec("0.19"))).Round(2)
	assert.Equal(t, "35.81", globalRounding.StringFixed(2))
	assert.False(t, total.Equal(globalRounding))
}

func TestComputeInvoice_Invariantes(t *testing.T) {
	lines := []billing.Line{
		{Ref: "P1", Kind: billing.KindInternet, Price: ptr(dec("80000")), AppliesVAT: true, VATPercent: dec("19")},
		{Ref: "P2", Kind: billing.KindTelevision, Price: ptr(dec("50000")), AppliesVAT: true, VATPercent: dec("19")},
		{Ref: "PUB", Kind: billing.KindPublicidad, Price: ptr(dec("1234.56")), AppliesVAT: false, VATPercent: dec("19")},
		{Ref: "DTO", Kind: billing.KindDescuento, Price: ptr(dec("10000")), AppliesVAT: true, VATPercent: dec("19"), Credit: true},
	}
	b, err := billing.ComputeInvoice(lines, 3)
	require.NoError(t, err)
	require.Len(t, b.Lines, 4)

	sumPrice, sumVAT := decimal.Zero, decimal.Zero
	for _, l := range b.Lines {
		sumPrice = sumPrice.Add(l.UnitPrice)
		sumVAT = sumVAT.Add(l.VATAmount)
		assert.True(t, l.Total.Equal(l.UnitPrice.Add(l.VATAmount)))
	}
	assert.True(t, b.Subtotal.Equal(sumPrice))
	assert.True(t, b.VATTotal.Equal(sumVAT))
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.VATTotal)))

	// estrato 3: internet sin IVA, TV con IVA, publicidad sin IVA, descuento resta con IVA
	assert.True(t, b.Lines[0].VATAmount.IsZero())
	assert.Equal(t, "9500", b.Lines[1].VATAmount.String())
	assert.True(t, b.Lines[2].VATAmount.IsZero())
	assert.Equal(t, "-11900", b.Lines[3].Total.String())
	assert.Equal(t, "128834.56", b.Total.StringFixed(2))
}

func TestComputeLine_PrecioInvalido(t *testing.T) {
	_, err := billing.ComputeLine(billing.Line{Ref: "X", Kind: billing.KindVarios}, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice, "precio ausente no se asume cero")

	_, err = billing.ComputeLine(billing.Line{Ref: "X", Kind: billing.KindVarios, Price: ptr(dec("-5"))}, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = billing.InvoiceTotal([]billing.Line{
		{Ref: "OK", Kind: billing.KindVarios, Price: ptr(dec("5"))},
		{Ref: "NIL", Kind: billing.KindVarios},
	}, 4)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sedes
// ──────────────────────────────────────────────────────────────────────────────

func plans() map[string]*entity.ServicePlan {
	return map[string]*entity.ServicePlan{
		"int-80": {ID: "int-80", Name: "Internet 80M", Type: entity.ServiceInternet, Price: ptr(dec("80000")), AppliesVAT: true, VATPercent: dec("19")},
		"tv-50":  {ID: "tv-50", Name: "TV Básica", Type: entity.ServiceTelevision, Price: ptr(dec("50000")), AppliesVAT: true, VATPercent: dec("19")},
		"int-np": {ID: "int-np", Name: "Internet sin precio", Type: entity.ServiceInternet, AppliesVAT: true, VATPercent: dec("19")},
	}
}

func TestValidateSiteDraft_SinPlanes(t *testing.T) {
	err := billing.ValidateSiteDraft(&entity.Site{Address: "X", Contract: entity.Contract{Type: entity.ContractNone}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateSiteDraft_SinDireccion(t *testing.T) {
	err := billing.ValidateSiteDraft(&entity.Site{
		Address:      "   ",
		InternetPlan: &entity.PlanRef{PlanID: "int-80"},
		Contract:     entity.Contract{Type: entity.ContractNone},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateSiteDraft_TerminoFijoSinMeses(t *testing.T) {
	err := billing.ValidateSiteDraft(&entity.Site{
		Address:        "Calle 1",
		TelevisionPlan: &entity.PlanRef{PlanID: "tv-50"},
		Contract:       entity.Contract{Type: entity.ContractFixedTerm},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Escenario: estrato 5, internet 80000 + TV 50000, ambos al 19% → 95200 + 59500 = 154700.
func TestComputeSiteTotal_EscenarioCompleto(t *testing.T) {
	site := &entity.Site{
		Address:        "Cra 10 # 20-30",
		InternetPlan:   &entity.PlanRef{PlanID: "int-80"},
		TelevisionPlan: &entity.PlanRef{PlanID: "tv-50"},
	}
	b, err := billing.ComputeSiteTotal(site, plans(), 5)
	require.NoError(t, err)
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "95200", b.Lines[0].Total.String())
	assert.Equal(t, "59500", b.Lines[1].Total.String())
	assert.Equal(t, "154700", b.Total.String())
}

func TestComputeSiteTotal_Simetria(t *testing.T) {
	internetOnly := &entity.Site{Address: "A", InternetPlan: &entity.PlanRef{PlanID: "int-80"}}
	tvOnly := &entity.Site{Address: "B", TelevisionPlan: &entity.PlanRef{PlanID: "tv-50"}}

	bi, err := billing.ComputeSiteTotal(internetOnly, plans(), 5)
	require.NoError(t, err)
	assert.Equal(t, "95200", bi.Total.String())

	bt, err := billing.ComputeSiteTotal(tvOnly, plans(), 5)
	require.NoError(t, err)
	assert.Equal(t, "59500", bt.Total.String())
}

func TestComputeSiteTotal_PrecioPersonalizado(t *testing.T) {
	site := &entity.Site{Address: "A", InternetPlan: &entity.PlanRef{PlanID: "int-np", CustomPrice: ptr(dec("60000"))}}
	b, err := billing.ComputeSiteTotal(site, plans(), 2)
	require.NoError(t, err)
	assert.Equal(t, "60000", b.Total.String(), "estrato 2: internet sin IVA")

	site.InternetPlan.CustomPrice = nil
	_, err = billing.ComputeSiteTotal(site, plans(), 2)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestComputeSiteTotal_PlanDeOtroTipo(t *testing.T) {
	site := &entity.Site{Address: "A", InternetPlan: &entity.PlanRef{PlanID: "tv-50"}}
	_, err := billing.ComputeSiteTotal(site, plans(), 5)
	assert.ErrorIs(t, err, domain.ErrValidation)

	site = &entity.Site{Address: "A", InternetPlan: &entity.PlanRef{PlanID: "nope"}}
	_, err = billing.ComputeSiteTotal(site, plans(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contrato
// ──────────────────────────────────────────────────────────────────────────────

func TestTerminationPenalty(t *testing.T) {
	assert.Equal(t, "300000", billing.TerminationPenalty(dec("100000"), 6).String())
	assert.True(t, billing.TerminationPenalty(dec("100000"), 0).IsZero())
	assert.Equal(t, "77350", billing.TerminationPenalty(dec("154700"), 1).String())
}

func TestRenewalTerm_UnMesTrasVencimiento(t *testing.T) {
	assert.Equal(t, 1, billing.RenewalTerm(entity.Contract{Type: entity.ContractFixedTerm, Months: 12}))
	assert.Equal(t, 1, billing.RenewalTerm(entity.Contract{Type: entity.ContractFixedTerm, Months: 3}))
	assert.Equal(t, 0, billing.RenewalTerm(entity.Contract{Type: entity.ContractNone}))
}

func TestMonthsRemaining(t *testing.T) {
	activation := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	c := entity.Contract{Type: entity.ContractFixedTerm, Months: 12}

	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2027, 1, 14, 0, 0, 0, 0, time.UTC), 1},
		// vencido: renovación mensual
		{time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.now.Format("2006-01-02")), func(t *testing.T) {
			assert.Equal(t, tc.want, billing.MonthsRemaining(c, activation, tc.now))
		})
	}

	end, ok := billing.CurrentTermEnd(c, activation, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC), end)

	assert.Equal(t, 0, billing.MonthsRemaining(entity.Contract{Type: entity.ContractNone}, activation, activation))
}

func TestValidateSiteDraft_PrecioPersonalizadoConTresDecimales(t *testing.T) {
	err := billing.ValidateSiteDraft(&entity.Site{
		Address:      "Cra 1",
		InternetPlan: &entity.PlanRef{PlanID: "p1", CustomPrice: ptr(dec("50000.001"))},
		Contract:     entity.Contract{Type: entity.ContractNone},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}
