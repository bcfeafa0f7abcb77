package billing

import (
	"fmt"
	"strings"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// ValidateSiteDraft verifica una sede antes de crearla.
func ValidateSiteDraft(s *entity.Site) error {
	if s.InternetPlan == nil && s.TelevisionPlan == nil {
		return fmt.Errorf("%w: la sede debe tener al menos un plan de internet o televisión", domain.ErrValidation)
	}
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("%w: la dirección de la sede es requerida", domain.ErrValidation)
	}
	for _, ref := range []*entity.PlanRef{s.InternetPlan, s.TelevisionPlan} {
		if ref == nil {
			continue
		}
		if strings.TrimSpace(ref.PlanID) == "" {
			return fmt.Errorf("%w: referencia de plan sin id", domain.ErrValidation)
		}
		if ref.CustomPrice != nil && ref.CustomPrice.IsNegative() {
			return fmt.Errorf("%w: precio personalizado negativo", domain.ErrInvalidPrice)
		}
		if ref.CustomPrice != nil && !HasCurrencyPrecision(*ref.CustomPrice) {
			return fmt.Errorf("%w: el precio personalizado admite máximo 2 decimales", domain.ErrInvalidPrice)
		}
	}
	switch s.Contract.Type {
	case entity.ContractNone:
	case entity.ContractFixedTerm:
		if s.Contract.Months <= 0 {
			return fmt.Errorf("%w: un contrato a término fijo requiere meses > 0", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: tipo de contrato %q desconocido", domain.ErrValidation, s.Contract.Type)
	}
	return nil
}

// SiteLines arma las líneas de plan de una sede (internet primero, luego televisión).
// plans debe contener los planes referenciados, indexados por ID.
func SiteLines(s *entity.Site, plans map[string]*entity.ServicePlan) ([]Line, error) {
	slots := []struct {
		ref  *entity.PlanRef
		want entity.ServiceType
	}{
		{s.InternetPlan, entity.ServiceInternet},
		{s.TelevisionPlan, entity.ServiceTelevision},
	}
	lines := make([]Line, 0, len(slots))
	for _, slot := range slots {
		if slot.ref == nil {
			continue
		}
		plan, ok := plans[slot.ref.PlanID]
		if !ok || plan == nil {
			return nil, fmt.Errorf("%w: plan %s", domain.ErrNotFound, slot.ref.PlanID)
		}
		if plan.Type != slot.want {
			return nil, fmt.Errorf("%w: el plan %s es de tipo %s, se esperaba %s",
				domain.ErrValidation, plan.ID, plan.Type, slot.want)
		}
		lines = append(lines, PlanLine(plan, slot.ref))
	}
	return lines, nil
}

// ComputeSiteTotal calcula el total mensual de los servicios de una sede.
func ComputeSiteTotal(s *entity.Site, plans map[string]*entity.ServicePlan, stratum int) (*Breakdown, error) {
	lines, err := SiteLines(s, plans)
	if err != nil {
		return nil, err
	}
	return ComputeInvoice(lines, stratum)
}
