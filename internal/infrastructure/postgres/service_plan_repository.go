package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

var _ repository.ServicePlanRepository = (*ServicePlanRepo)(nil)

const planColumns = `id, name, type, price, applies_vat, vat_percent, speed_down, speed_up, channel_count, active, created_at, updated_at`

// ServicePlanRepo implementación de ServicePlanRepository (usable con pool o tx).
type ServicePlanRepo struct {
	q Querier
}

// NewServicePlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServicePlanRepository(q Querier) *ServicePlanRepo {
	return &ServicePlanRepo{q: q}
}

func scanPlan(row pgx.Row) (*entity.ServicePlan, error) {
	var p entity.ServicePlan
	var typ string
	// price es NULL en planes sin precio: se escanea a *decimal.Decimal.
	if err := row.Scan(&p.ID, &p.Name, &typ, &p.Price, &p.AppliesVAT, &p.VATPercent,
		&p.SpeedDown, &p.SpeedUp, &p.ChannelCount, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Type = entity.ServiceType(typ)
	return &p, nil
}

// Create persiste un plan.
func (r *ServicePlanRepo) Create(ctx context.Context, p *entity.ServicePlan) error {
	query := `INSERT INTO service_plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, string(p.Type), p.Price, p.AppliesVAT, p.VATPercent,
		p.SpeedDown, p.SpeedUp, p.ChannelCount, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service plan: %w", err)
	}
	return nil
}

// Update actualiza un plan.
func (r *ServicePlanRepo) Update(ctx context.Context, p *entity.ServicePlan) error {
	query := `
		UPDATE service_plans SET name = $2, price = $3, applies_vat = $4, vat_percent = $5,
			speed_down = $6, speed_up = $7, channel_count = $8, active = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.AppliesVAT, p.VATPercent,
		p.SpeedDown, p.SpeedUp, p.ChannelCount, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: plan %s", domain.ErrNotFound, p.ID)
	}
	return nil
}

// GetByID obtiene un plan con su precio vigente.
func (r *ServicePlanRepo) GetByID(ctx context.Context, id string) (*entity.ServicePlan, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT `+planColumns+` FROM service_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service plan: %w", err)
	}
	return p, nil
}

// List lista planes por tipo (” = todos).
func (r *ServicePlanRepo) List(ctx context.Context, t entity.ServiceType) ([]*entity.ServicePlan, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+planColumns+` FROM service_plans WHERE ($1 = '' OR type = $1) ORDER BY name`,
		string(t),
	)
	if err != nil {
		return nil, fmt.Errorf("list service plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServicePlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountActiveSites cuenta sedes activas que referencian el plan.
func (r *ServicePlanRepo) CountActiveSites(ctx context.Context, planID string) (int, error) {
	if !isUUID(planID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM sites WHERE active AND (internet_plan_id = $1 OR television_plan_id = $1)`,
		planID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count plan sites: %w", err)
	}
	return n, nil
}
