package billing

import (
	"context"

	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con el repositorio de facturas atado a ella.
type InvoiceTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}
