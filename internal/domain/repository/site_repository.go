package repository

import (
	"context"

	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// SiteRepository puerto de persistencia de sedes.
type SiteRepository interface {
	Create(ctx context.Context, s *entity.Site) error
	Update(ctx context.Context, s *entity.Site) error
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Site, error)
}
