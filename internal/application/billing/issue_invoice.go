package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
	"github.com/jhoicas/isp-billing/internal/domain"
	corebilling "github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

// periodLayout formato del periodo facturado.
const periodLayout = "2006-01"

// IssueInvoiceUseCase emite la factura mensual de una sede: una sede, un contrato, una factura.
// Todos los servicios de la sede van en la misma factura junto con los conceptos pedidos.
type IssueInvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	sites       *usecase.SiteUseCase
	concepts    repository.ConceptRepository
	invoiceRepo repository.InvoiceRepository
	dueDays     int
	now         func() time.Time
}

// NewIssueInvoiceUseCase construye el caso de uso. dueDays es el plazo de pago por defecto.
func NewIssueInvoiceUseCase(
	txRunner InvoiceTxRunner,
	sites *usecase.SiteUseCase,
	concepts repository.ConceptRepository,
	invoiceRepo repository.InvoiceRepository,
	dueDays int,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:    txRunner,
		sites:       sites,
		concepts:    concepts,
		invoiceRepo: invoiceRepo,
		dueDays:     dueDays,
		now:         time.Now,
	}
}

// Issue calcula y guarda la factura del periodo. Si la sede ya tiene factura en ese
// periodo devuelve domain.ErrConflict.
func (uc *IssueInvoiceUseCase) Issue(ctx context.Context, siteID string, in dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if _, err := time.Parse(periodLayout, in.Period); err != nil {
		return nil, fmt.Errorf("%w: periodo %q, formato AAAA-MM", domain.ErrValidation, in.Period)
	}
	site, err := uc.sites.Site(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if !site.Active {
		return nil, fmt.Errorf("%w: la sede está inactiva", domain.ErrConflict)
	}

	// ── 1. Servicios de la sede ───────────────────────────────────────────────
	lines, stratum, err := uc.sites.MonthlyLines(ctx, site)
	if err != nil {
		return nil, err
	}

	// ── 2. Conceptos adicionales ──────────────────────────────────────────────
	concepts, err := usecase.ResolveConcepts(ctx, uc.concepts, in.ConceptCodes)
	if err != nil {
		return nil, err
	}
	for _, c := range concepts {
		lines = append(lines, corebilling.ConceptLine(c))
	}
	breakdown, err := corebilling.ComputeInvoice(lines, stratum)
	if err != nil {
		return nil, err
	}

	// ── 3. Cabecera ───────────────────────────────────────────────────────────
	emission := uc.now()
	if in.EmissionDate != nil {
		emission = *in.EmissionDate
	}
	dueDays := in.DueDays
	if dueDays == 0 {
		dueDays = uc.dueDays
	}
	invoiceID := uuid.New().String()
	inv := &entity.Invoice{
		ID:           invoiceID,
		ClientID:     site.ClientID,
		SiteID:       site.ID,
		Period:       in.Period,
		EmissionDate: emission,
		DueDate:      emission.AddDate(0, 0, dueDays),
		Lines:        breakdown.ToInvoiceLines(),
		Subtotal:     breakdown.Subtotal,
		VATTotal:     breakdown.VATTotal,
		Total:        breakdown.Total,
		Status:       entity.InvoiceStatusPendiente,
		CreatedAt:    emission,
		UpdatedAt:    emission,
	}
	for i := range inv.Lines {
		inv.Lines[i].ID = uuid.New().String()
		inv.Lines[i].InvoiceID = invoiceID
	}

	// ── 4. Persistencia atómica ───────────────────────────────────────────────
	err = uc.txRunner.RunInvoicing(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		exists, err := invoiceRepo.ExistsForSitePeriod(ctx, site.ID, in.Period)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: la sede ya tiene factura para %s", domain.ErrConflict, in.Period)
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// GetInvoice obtiene una factura con sus líneas.
func (uc *IssueInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return toInvoiceResponse(inv), nil
}

// ListBySite facturas emitidas para una sede.
func (uc *IssueInvoiceUseCase) ListBySite(ctx context.Context, siteID string) ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:           inv.ID,
		ClientID:     inv.ClientID,
		SiteID:       inv.SiteID,
		Period:       inv.Period,
		EmissionDate: inv.EmissionDate.Format("2006-01-02"),
		DueDate:      inv.DueDate.Format("2006-01-02"),
		Lines:        usecase.ToLineResponses(inv.Lines),
		Subtotal:     inv.Subtotal,
		VATTotal:     inv.VATTotal,
		Total:        inv.Total,
		Status:       inv.Status,
	}
}
