package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, client_id, site_id, period, emission_date, due_date,
	subtotal, vat_total, total, status, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Create debe ejecutarse dentro de una tx para que cabecera y líneas queden juntas.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y sus líneas en orden.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClientID, inv.SiteID, inv.Period, inv.EmissionDate, inv.DueDate,
		inv.Subtotal, inv.VATTotal, inv.Total, inv.Status, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "invoices_site_period_key" {
			return fmt.Errorf("%w: la sede %s ya tiene factura para %s", domain.ErrConflict, inv.SiteID, inv.Period)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	for i := range inv.Lines {
		l := &inv.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.InvoiceID = inv.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, position, source, ref, description, unit_price, vat_amount, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, l.InvoiceID, i, l.Source, l.Ref, l.Description, l.UnitPrice, l.VATAmount, l.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice line: %w", err)
		}
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.ClientID, &inv.SiteID, &inv.Period, &inv.EmissionDate, &inv.DueDate,
		&inv.Subtotal, &inv.VATTotal, &inv.Total, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID obtiene una factura completa (cabecera y líneas).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	lines, err := r.linesByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return inv, nil
}

func (r *InvoiceRepo) linesByInvoice(ctx context.Context, invoiceID string) ([]entity.InvoiceLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, source, ref, description, unit_price, vat_amount, total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Source, &l.Ref, &l.Description,
			&l.UnitPrice, &l.VATAmount, &l.Total); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ExistsForSitePeriod indica si la sede ya tiene factura en el periodo.
func (r *InvoiceRepo) ExistsForSitePeriod(ctx context.Context, siteID, period string) (bool, error) {
	if !isUUID(siteID) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE site_id = $1 AND period = $2)`,
		siteID, period,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check invoice period: %w", err)
	}
	return exists, nil
}

// ListBySite lista las cabeceras de una sede, la más reciente primero. No carga líneas.
func (r *InvoiceRepo) ListBySite(ctx context.Context, siteID string) ([]*entity.Invoice, error) {
	if !isUUID(siteID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE site_id = $1 ORDER BY period DESC`,
		siteID,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
