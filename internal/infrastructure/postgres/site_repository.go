package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

const siteColumns = `id, client_id, address, internet_plan_id, internet_custom_price,
	television_plan_id, television_custom_price, contract_type, contract_months,
	activation_date, active, created_at, updated_at`

// SiteRepo implementación de SiteRepository (usable con pool o tx).
// Cada referencia a plan se guarda en dos columnas: plan_id y custom_price, ambas opcionales.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

func planRefColumns(ref *entity.PlanRef) (any, *decimal.Decimal) {
	if ref == nil {
		return nil, nil
	}
	return nullIfEmpty(ref.PlanID), ref.CustomPrice
}

func planRefFrom(planID *string, custom *decimal.Decimal) *entity.PlanRef {
	if planID == nil {
		return nil
	}
	return &entity.PlanRef{PlanID: *planID, CustomPrice: custom}
}

func scanSite(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	var netID, tvID *string
	var netPrice, tvPrice *decimal.Decimal
	if err := row.Scan(&s.ID, &s.ClientID, &s.Address, &netID, &netPrice, &tvID, &tvPrice,
		&s.Contract.Type, &s.Contract.Months, &s.ActivationDate, &s.Active,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.InternetPlan = planRefFrom(netID, netPrice)
	s.TelevisionPlan = planRefFrom(tvID, tvPrice)
	return &s, nil
}

// Create persiste una sede.
func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	netID, netPrice := planRefColumns(s.InternetPlan)
	tvID, tvPrice := planRefColumns(s.TelevisionPlan)
	query := `INSERT INTO sites (` + siteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ClientID, s.Address, netID, netPrice, tvID, tvPrice,
		s.Contract.Type, s.Contract.Months, s.ActivationDate, s.Active,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// Update actualiza planes, contrato y estado de la sede.
func (r *SiteRepo) Update(ctx context.Context, s *entity.Site) error {
	netID, netPrice := planRefColumns(s.InternetPlan)
	tvID, tvPrice := planRefColumns(s.TelevisionPlan)
	query := `
		UPDATE sites SET address = $2, internet_plan_id = $3, internet_custom_price = $4,
			television_plan_id = $5, television_custom_price = $6, contract_type = $7,
			contract_months = $8, activation_date = $9, active = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Address, netID, netPrice, tvID, tvPrice,
		s.Contract.Type, s.Contract.Months, s.ActivationDate, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: sede %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

// GetByID obtiene una sede por ID.
func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSite(r.q.QueryRow(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return s, nil
}

// ListByClient lista las sedes de un cliente por fecha de activación.
func (r *SiteRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Site, error) {
	if !isUUID(clientID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+siteColumns+` FROM sites WHERE client_id = $1 ORDER BY activation_date, id`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()
	var list []*entity.Site
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
