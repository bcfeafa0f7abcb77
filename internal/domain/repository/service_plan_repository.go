package repository

import (
	"context"

	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// ServicePlanRepository puerto de persistencia de planes de internet y televisión.
type ServicePlanRepository interface {
	Create(ctx context.Context, p *entity.ServicePlan) error
	Update(ctx context.Context, p *entity.ServicePlan) error
	GetByID(ctx context.Context, id string) (*entity.ServicePlan, error)
	// List con t vacío devuelve todos los tipos.
	List(ctx context.Context, t entity.ServiceType) ([]*entity.ServicePlan, error)
	// CountActiveSites cuenta sedes activas que referencian el plan.
	CountActiveSites(ctx context.Context, planID string) (int, error)
}
