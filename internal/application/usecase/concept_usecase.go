package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
	"github.com/jhoicas/isp-billing/pkg/validation"
)

// MaxBulkConcepts límite de conceptos por petición de carga masiva.
const MaxBulkConcepts = 100

// ConceptUseCase administración del catálogo de conceptos de facturación.
type ConceptUseCase struct {
	repo       repository.ConceptRepository
	defaultVAT decimal.Decimal
	now        func() time.Time
}

// NewConceptUseCase construye el caso de uso. defaultVAT se usa cuando un concepto
// con IVA llega sin porcentaje.
func NewConceptUseCase(repo repository.ConceptRepository, defaultVAT decimal.Decimal) *ConceptUseCase {
	return &ConceptUseCase{repo: repo, defaultVAT: defaultVAT, now: time.Now}
}

// Upsert crea (id vacío) o actualiza un concepto. El código se normaliza a mayúsculas
// y no puede repetirse en otro registro.
func (uc *ConceptUseCase) Upsert(ctx context.Context, id string, in dto.UpsertConceptRequest) (*dto.ConceptResponse, error) {
	now := uc.now()
	var c *entity.Concept
	if id == "" {
		c = &entity.Concept{ID: uuid.New().String(), Active: true, CreatedAt: now}
	} else {
		existing, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: concepto %s", domain.ErrNotFound, id)
		}
		c = existing
	}
	uc.apply(c, in, id == "")
	billing.NormalizeConcept(c)
	if err := billing.ValidateConcept(c); err != nil {
		return nil, err
	}

	dup, err := uc.repo.FindByCode(ctx, c.Code)
	if err != nil {
		return nil, err
	}
	if dup != nil && dup.ID != c.ID {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCode, c.Code)
	}

	c.UpdatedAt = now
	if id == "" {
		err = uc.repo.Insert(ctx, c)
	} else {
		err = uc.repo.Update(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return ToConceptResponse(c), nil
}

// apply copia la entrada sobre c. El IVA por defecto solo se asigna al crear o cuando
// applies_vat pasa de false a true; un 0 explícito ya guardado se conserva.
func (uc *ConceptUseCase) apply(c *entity.Concept, in dto.UpsertConceptRequest, isNew bool) {
	hadVAT := c.AppliesVAT
	c.Code = in.Code
	c.Name = in.Name
	c.Description = in.Description
	c.Type = entity.ConceptType(in.Type)
	if in.BaseValue != nil {
		c.BaseValue = *in.BaseValue
	}
	if in.AppliesVAT != nil {
		c.AppliesVAT = *in.AppliesVAT
	}
	switch {
	case in.VATPercent != nil:
		c.VATPercent = *in.VATPercent
	case c.AppliesVAT && (isNew || !hadVAT) && c.VATPercent.IsZero():
		c.VATPercent = uc.defaultVAT
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
}

// GetByID obtiene un concepto.
func (uc *ConceptUseCase) GetByID(ctx context.Context, id string) (*dto.ConceptResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: concepto %s", domain.ErrNotFound, id)
	}
	return ToConceptResponse(c), nil
}

// GetByCode obtiene un concepto por código sin distinguir mayúsculas.
func (uc *ConceptUseCase) GetByCode(ctx context.Context, code string) (*dto.ConceptResponse, error) {
	c, err := uc.repo.FindByCode(ctx, billing.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: concepto %s", domain.ErrNotFound, code)
	}
	return ToConceptResponse(c), nil
}

// List lista conceptos, opcionalmente por tipo y solo activos.
func (uc *ConceptUseCase) List(ctx context.Context, conceptType string, onlyActive bool) ([]*dto.ConceptResponse, error) {
	t := entity.ConceptType(conceptType)
	if t != "" && !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de concepto %q desconocido", domain.ErrValidation, conceptType)
	}
	list, err := uc.repo.List(ctx, repository.ConceptFilter{Type: t, OnlyActive: onlyActive})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ConceptResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToConceptResponse(c))
	}
	return out, nil
}

// Deactivate desactiva un concepto (borrado lógico). Falla con ErrInUse si alguna
// línea de factura histórica lo referencia.
func (uc *ConceptUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: concepto %s", domain.ErrNotFound, id)
	}
	n, err := uc.repo.CountUsage(ctx, c.Code)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el concepto %s aparece en %d líneas de factura", domain.ErrInUse, c.Code, n)
	}
	c.Active = false
	c.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, c)
}

// BulkCreate crea varios conceptos de forma independiente: el fallo de un ítem no
// detiene el lote.
func (uc *ConceptUseCase) BulkCreate(ctx context.Context, items []dto.UpsertConceptRequest) (*dto.BulkCreateResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la carga no tiene ítems", domain.ErrValidation)
	}
	if len(items) > MaxBulkConcepts {
		return nil, fmt.Errorf("%w: máximo %d conceptos por petición", domain.ErrValidation, MaxBulkConcepts)
	}
	res := &dto.BulkCreateResult{Total: len(items), Results: make([]dto.BulkItemResult, 0, len(items))}
	for i, item := range items {
		r := dto.BulkItemResult{Index: i, Code: billing.NormalizeCode(item.Code)}
		out, err := uc.createItem(ctx, item)
		if err != nil {
			r.Error = err.Error()
			res.Failed++
		} else {
			r.Success = true
			r.Data = out
			res.Created++
		}
		res.Results = append(res.Results, r)
	}
	return res, nil
}

func (uc *ConceptUseCase) createItem(ctx context.Context, item dto.UpsertConceptRequest) (*dto.ConceptResponse, error) {
	if err := validation.Struct(item); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %s", domain.ErrValidation, verrs.Error())
		}
		return nil, err
	}
	return uc.Upsert(ctx, "", item)
}

// ToConceptResponse mapea la entidad e incluye IVA y valor con IVA.
func ToConceptResponse(c *entity.Concept) *dto.ConceptResponse {
	d := billing.ComputeDerived(c)
	return &dto.ConceptResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Description:  c.Description,
		BaseValue:    c.BaseValue,
		AppliesVAT:   c.AppliesVAT,
		VATPercent:   c.VATPercent,
		Type:         string(c.Type),
		Active:       c.Active,
		VATAmount:    d.VATAmount,
		ValueWithVAT: d.ValueWithVAT,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
