package billing

import (
	"context"
	"time"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
	corebilling "github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/pkg/money"
)

// PenaltyFormula texto de la cláusula de permanencia tal como aparece en el contrato.
const PenaltyFormula = "(valor mensual × meses restantes) / 2"

// ContractTermsUseCase resuelve los términos de permanencia de una sede para el
// generador de contratos.
type ContractTermsUseCase struct {
	sites *usecase.SiteUseCase
	now   func() time.Time
}

// NewContractTermsUseCase construye el caso de uso.
func NewContractTermsUseCase(sites *usecase.SiteUseCase) *ContractTermsUseCase {
	return &ContractTermsUseCase{sites: sites, now: time.Now}
}

// Terms calcula total mensual, meses restantes del periodo vigente, penalidad por
// terminación anticipada y término de renovación.
func (uc *ContractTermsUseCase) Terms(ctx context.Context, siteID string) (*dto.ContractTermsResponse, error) {
	site, err := uc.sites.Site(ctx, siteID)
	if err != nil {
		return nil, err
	}
	b, _, err := uc.sites.MonthlyBreakdown(ctx, site)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	remaining := corebilling.MonthsRemaining(site.Contract, site.ActivationDate, now)
	penalty := corebilling.TerminationPenalty(b.Total, remaining)

	out := &dto.ContractTermsResponse{
		SiteID:              site.ID,
		ContractType:        site.Contract.Type,
		InitialMonths:       site.Contract.Months,
		RenewalMonths:       corebilling.RenewalTerm(site.Contract),
		MonthsRemaining:     remaining,
		MonthlyTotal:        b.Total,
		TerminationPenalty:  penalty,
		MonthlyTotalDisplay: money.FormatCOP(b.Total),
		PenaltyDisplay:      money.FormatCOP(penalty),
		PenaltyFormula:      PenaltyFormula,
	}
	if end, ok := corebilling.CurrentTermEnd(site.Contract, site.ActivationDate, now); ok {
		out.TermEnd = &end
	}
	return out, nil
}
