package repository

import (
	"context"

	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas y sus líneas.
type InvoiceRepository interface {
	// Create guarda cabecera y líneas. Una segunda factura para la misma sede y periodo
	// devuelve domain.ErrConflict.
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	ExistsForSitePeriod(ctx context.Context, siteID, period string) (bool, error)
	ListBySite(ctx context.Context, siteID string) ([]*entity.Invoice, error)
}
