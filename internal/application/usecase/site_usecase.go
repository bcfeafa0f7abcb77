package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

// SiteUseCase sedes de un cliente y cálculo de su cobro mensual.
//
// El precio de un plan sin precio personalizado se lee en cada cálculo (no se congela
// al crear la sede).
type SiteUseCase struct {
	sites    repository.SiteRepository
	clients  repository.ClientRepository
	plans    repository.ServicePlanRepository
	concepts repository.ConceptRepository
	now      func() time.Time
}

// NewSiteUseCase construye el caso de uso.
func NewSiteUseCase(
	sites repository.SiteRepository,
	clients repository.ClientRepository,
	plans repository.ServicePlanRepository,
	concepts repository.ConceptRepository,
) *SiteUseCase {
	return &SiteUseCase{sites: sites, clients: clients, plans: plans, concepts: concepts, now: time.Now}
}

// AddSite crea una sede para el cliente. Requiere dirección y al menos un plan; los
// planes deben existir, ser del tipo correcto y tener precio efectivo.
func (uc *SiteUseCase) AddSite(ctx context.Context, clientID string, in dto.CreateSiteRequest) (*dto.SiteResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	if client.Status == entity.ClientStatusCancelado {
		return nil, fmt.Errorf("%w: el cliente está cancelado", domain.ErrConflict)
	}

	now := uc.now()
	site := &entity.Site{
		ID:             uuid.New().String(),
		ClientID:       client.ID,
		Address:        strings.TrimSpace(in.Address),
		InternetPlan:   toPlanRef(in.InternetPlan),
		TelevisionPlan: toPlanRef(in.TelevisionPlan),
		Contract:       entity.Contract{Type: in.ContractType, Months: in.ContractMonths},
		ActivationDate: now,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if site.Contract.Type == "" {
		site.Contract.Type = entity.ContractNone
	}
	if site.Contract.Type == entity.ContractNone {
		site.Contract.Months = 0
	}
	if in.ActivationDate != nil {
		site.ActivationDate = *in.ActivationDate
	}
	if err := billing.ValidateSiteDraft(site); err != nil {
		return nil, err
	}
	plans, err := ResolvePlans(ctx, uc.plans, site)
	if err != nil {
		return nil, err
	}
	if _, err := billing.ComputeSiteTotal(site, plans, client.Stratum); err != nil {
		return nil, err
	}
	if err := uc.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return toSiteResponse(site), nil
}

// GetByID obtiene una sede.
func (uc *SiteUseCase) GetByID(ctx context.Context, id string) (*dto.SiteResponse, error) {
	s, err := uc.Site(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSiteResponse(s), nil
}

// Site devuelve la entidad o ErrNotFound.
func (uc *SiteUseCase) Site(ctx context.Context, id string) (*entity.Site, error) {
	s, err := uc.sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: sede %s", domain.ErrNotFound, id)
	}
	return s, nil
}

// ListByClient lista las sedes de un cliente.
func (uc *SiteUseCase) ListByClient(ctx context.Context, clientID string) ([]*dto.SiteResponse, error) {
	list, err := uc.sites.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SiteResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSiteResponse(s))
	}
	return out, nil
}

// MonthlyLines líneas de plan de una sede persistida y el estrato de su cliente.
func (uc *SiteUseCase) MonthlyLines(ctx context.Context, site *entity.Site) ([]billing.Line, int, error) {
	client, err := uc.clients.GetByID(ctx, site.ClientID)
	if err != nil {
		return nil, 0, err
	}
	if client == nil {
		return nil, 0, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, site.ClientID)
	}
	plans, err := ResolvePlans(ctx, uc.plans, site)
	if err != nil {
		return nil, 0, err
	}
	lines, err := billing.SiteLines(site, plans)
	if err != nil {
		return nil, 0, err
	}
	return lines, client.Stratum, nil
}

// MonthlyBreakdown cobro mensual de los servicios de una sede persistida.
func (uc *SiteUseCase) MonthlyBreakdown(ctx context.Context, site *entity.Site) (*billing.Breakdown, int, error) {
	lines, stratum, err := uc.MonthlyLines(ctx, site)
	if err != nil {
		return nil, 0, err
	}
	b, err := billing.ComputeInvoice(lines, stratum)
	if err != nil {
		return nil, 0, err
	}
	return b, stratum, nil
}

// SiteTotal desglose mensual de una sede por ID.
func (uc *SiteUseCase) SiteTotal(ctx context.Context, siteID string) (*dto.BreakdownResponse, error) {
	site, err := uc.Site(ctx, siteID)
	if err != nil {
		return nil, err
	}
	b, stratum, err := uc.MonthlyBreakdown(ctx, site)
	if err != nil {
		return nil, err
	}
	return ToBreakdownResponse(b, stratum), nil
}

// Preview calcula el cobro de una sede en borrador más conceptos adicionales, sin persistir.
func (uc *SiteUseCase) Preview(ctx context.Context, in dto.PreviewRequest) (*dto.BreakdownResponse, error) {
	stratum := in.Stratum
	if in.ClientID != "" {
		client, err := uc.clients.GetByID(ctx, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
		}
		stratum = client.Stratum
	}
	if !validStratum(stratum) {
		return nil, fmt.Errorf("%w: se requiere client_id o un estrato entre 1 y 6", domain.ErrValidation)
	}
	draft := &entity.Site{
		InternetPlan:   toPlanRef(in.InternetPlan),
		TelevisionPlan: toPlanRef(in.TelevisionPlan),
	}
	if draft.InternetPlan == nil && draft.TelevisionPlan == nil {
		return nil, fmt.Errorf("%w: la sede debe tener al menos un plan de internet o televisión", domain.ErrValidation)
	}
	plans, err := ResolvePlans(ctx, uc.plans, draft)
	if err != nil {
		return nil, err
	}
	lines, err := billing.SiteLines(draft, plans)
	if err != nil {
		return nil, err
	}
	concepts, err := ResolveConcepts(ctx, uc.concepts, in.ConceptCodes)
	if err != nil {
		return nil, err
	}
	for _, c := range concepts {
		lines = append(lines, billing.ConceptLine(c))
	}
	b, err := billing.ComputeInvoice(lines, stratum)
	if err != nil {
		return nil, err
	}
	return ToBreakdownResponse(b, stratum), nil
}

// ResolvePlans carga los planes referenciados por la sede, indexados por ID.
func ResolvePlans(ctx context.Context, repo repository.ServicePlanRepository, s *entity.Site) (map[string]*entity.ServicePlan, error) {
	out := make(map[string]*entity.ServicePlan, 2)
	for _, ref := range []*entity.PlanRef{s.InternetPlan, s.TelevisionPlan} {
		if ref == nil {
			continue
		}
		p, err := repo.GetByID(ctx, ref.PlanID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: plan %s", domain.ErrNotFound, ref.PlanID)
		}
		out[p.ID] = p
	}
	return out, nil
}

// ResolveConcepts carga conceptos activos por código, en el orden recibido.
func ResolveConcepts(ctx context.Context, repo repository.ConceptRepository, codes []string) ([]*entity.Concept, error) {
	out := make([]*entity.Concept, 0, len(codes))
	for _, raw := range codes {
		code := billing.NormalizeCode(raw)
		c, err := repo.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: concepto %s", domain.ErrNotFound, code)
		}
		if !c.Active {
			return nil, fmt.Errorf("%w: el concepto %s está inactivo", domain.ErrValidation, code)
		}
		out = append(out, c)
	}
	return out, nil
}

// ToBreakdownResponse mapea el desglose calculado.
func ToBreakdownResponse(b *billing.Breakdown, stratum int) *dto.BreakdownResponse {
	return &dto.BreakdownResponse{
		Stratum:  stratum,
		Lines:    ToLineResponses(b.ToInvoiceLines()),
		Subtotal: b.Subtotal,
		VATTotal: b.VATTotal,
		Total:    b.Total,
	}
}

// ToLineResponses mapea líneas de factura.
func ToLineResponses(lines []entity.InvoiceLine) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineResponse{
			Source:      l.Source,
			Ref:         l.Ref,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			VATAmount:   l.VATAmount,
			Total:       l.Total,
		})
	}
	return out
}

func toPlanRef(in *dto.PlanRefRequest) *entity.PlanRef {
	if in == nil {
		return nil
	}
	return &entity.PlanRef{PlanID: strings.TrimSpace(in.PlanID), CustomPrice: in.CustomPrice}
}

func fromPlanRef(ref *entity.PlanRef) *dto.PlanRefRequest {
	if ref == nil {
		return nil
	}
	return &dto.PlanRefRequest{PlanID: ref.PlanID, CustomPrice: ref.CustomPrice}
}

func toSiteResponse(s *entity.Site) *dto.SiteResponse {
	return &dto.SiteResponse{
		ID:             s.ID,
		ClientID:       s.ClientID,
		Address:        s.Address,
		InternetPlan:   fromPlanRef(s.InternetPlan),
		TelevisionPlan: fromPlanRef(s.TelevisionPlan),
		ContractType:   s.Contract.Type,
		ContractMonths: s.Contract.Months,
		ActivationDate: s.ActivationDate,
		Active:         s.Active,
	}
}
