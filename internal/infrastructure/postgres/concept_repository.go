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

var _ repository.ConceptRepository = (*ConceptRepo)(nil)

const conceptColumns = `id, code, name, description, base_value, applies_vat, vat_percent, type, active, created_at, updated_at`

// ConceptRepo implementación de ConceptRepository sobre PostgreSQL (usable con pool o tx).
// La unicidad del código la garantiza el índice único sobre upper(code).
type ConceptRepo struct {
	q Querier
}

// NewConceptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConceptRepository(q Querier) *ConceptRepo {
	return &ConceptRepo{q: q}
}

func scanConcept(row pgx.Row) (*entity.Concept, error) {
	var c entity.Concept
	var typ string
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.BaseValue, &c.AppliesVAT,
		&c.VATPercent, &typ, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Type = entity.ConceptType(typ)
	return &c, nil
}

// Insert persiste un nuevo concepto.
func (r *ConceptRepo) Insert(ctx context.Context, c *entity.Concept) error {
	query := `INSERT INTO concepts (` + conceptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Description, c.BaseValue, c.AppliesVAT,
		c.VATPercent, string(c.Type), c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, c.Code)
		}
		return fmt.Errorf("insert concept: %w", err)
	}
	return nil
}

// Update actualiza un concepto existente.
func (r *ConceptRepo) Update(ctx context.Context, c *entity.Concept) error {
	query := `
		UPDATE concepts SET code = $2, name = $3, description = $4, base_value = $5, applies_vat = $6,
			vat_percent = $7, type = $8, active = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Description, c.BaseValue, c.AppliesVAT,
		c.VATPercent, string(c.Type), c.Active, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, c.Code)
		}
		return fmt.Errorf("update concept: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: concepto %s", domain.ErrNotFound, c.ID)
	}
	return nil
}

// GetByID obtiene un concepto por ID.
func (r *ConceptRepo) GetByID(ctx context.Context, id string) (*entity.Concept, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanConcept(r.q.QueryRow(ctx, `SELECT `+conceptColumns+` FROM concepts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get concept: %w", err)
	}
	return c, nil
}

// FindByCode obtiene un concepto por código sin distinguir mayúsculas.
func (r *ConceptRepo) FindByCode(ctx context.Context, code string) (*entity.Concept, error) {
	c, err := scanConcept(r.q.QueryRow(ctx, `SELECT `+conceptColumns+` FROM concepts WHERE upper(code) = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get concept by code: %w", err)
	}
	return c, nil
}

// List lista conceptos por tipo y estado.
func (r *ConceptRepo) List(ctx context.Context, f repository.ConceptFilter) ([]*entity.Concept, error) {
	query := `SELECT ` + conceptColumns + ` FROM concepts
		WHERE ($1 = '' OR type = $1) AND (NOT $2 OR active)
		ORDER BY code`
	rows, err := r.q.Query(ctx, query, string(f.Type), f.OnlyActive)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Concept
	for rows.Next() {
		c, err := scanConcept(rows)
		if err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountUsage cuenta las líneas de factura que referencian el código.
func (r *ConceptRepo) CountUsage(ctx context.Context, code string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM invoice_lines WHERE source = $1 AND upper(ref) = upper($2)`,
		entity.LineSourceConcept, code,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count concept usage: %w", err)
	}
	return n, nil
}
