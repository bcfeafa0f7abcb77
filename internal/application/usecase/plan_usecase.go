package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

// PlanUseCase catálogo de planes de internet y televisión.
type PlanUseCase struct {
	repo       repository.ServicePlanRepository
	defaultVAT decimal.Decimal
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.ServicePlanRepository, defaultVAT decimal.Decimal) *PlanUseCase {
	return &PlanUseCase{repo: repo, defaultVAT: defaultVAT}
}

// Create registra un plan. Los planes causan IVA por defecto al porcentaje configurado.
func (uc *PlanUseCase) Create(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	t := entity.ServiceType(in.Type)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de plan %q desconocido", domain.ErrValidation, in.Type)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del plan es requerido", domain.ErrValidation)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio del plan no puede ser negativo", domain.ErrInvalidPrice)
	}
	if in.Price != nil && !billing.HasCurrencyPrecision(*in.Price) {
		return nil, fmt.Errorf("%w: el precio del plan admite máximo 2 decimales", domain.ErrInvalidPrice)
	}
	now := time.Now()
	p := &entity.ServicePlan{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       t,
		Price:      in.Price,
		AppliesVAT: true,
		VATPercent: uc.defaultVAT,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.AppliesVAT != nil {
		p.AppliesVAT = *in.AppliesVAT
	}
	if in.VATPercent != nil {
		if in.VATPercent.IsNegative() || in.VATPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: el porcentaje de IVA debe estar entre 0 y 100", domain.ErrValidation)
		}
		if !billing.HasCurrencyPrecision(*in.VATPercent) {
			return nil, fmt.Errorf("%w: el porcentaje de IVA admite máximo 2 decimales", domain.ErrValidation)
		}
		p.VATPercent = *in.VATPercent
	}
	switch t {
	case entity.ServiceInternet:
		p.SpeedDown, p.SpeedUp = in.SpeedDown, in.SpeedUp
	case entity.ServiceTelevision:
		p.ChannelCount = in.ChannelCount
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPlanResponse(p), nil
}

// GetByID obtiene un plan.
func (uc *PlanUseCase) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: plan %s", domain.ErrNotFound, id)
	}
	return toPlanResponse(p), nil
}

// List lista planes por tipo (vacío = todos).
func (uc *PlanUseCase) List(ctx context.Context, planType string) ([]*dto.PlanResponse, error) {
	t := entity.ServiceType(planType)
	if t != "" && !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de plan %q desconocido", domain.ErrValidation, planType)
	}
	list, err := uc.repo.List(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

// Deactivate retira un plan del catálogo si ninguna sede activa lo usa.
func (uc *PlanUseCase) Deactivate(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: plan %s", domain.ErrNotFound, id)
	}
	n, err := uc.repo.CountActiveSites(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el plan lo usan %d sedes activas", domain.ErrInUse, n)
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, p)
}

func toPlanResponse(p *entity.ServicePlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Type:         string(p.Type),
		Price:        p.Price,
		AppliesVAT:   p.AppliesVAT,
		VATPercent:   p.VATPercent,
		SpeedDown:    p.SpeedDown,
		SpeedUp:      p.SpeedUp,
		ChannelCount: p.ChannelCount,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
