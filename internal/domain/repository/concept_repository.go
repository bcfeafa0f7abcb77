package repository

import (
	"context"

	"github.com/jhoicas/isp-billing/internal/domain/entity"
)

// ConceptFilter filtros para listar conceptos. Type vacío = todos.
type ConceptFilter struct {
	Type       entity.ConceptType
	OnlyActive bool
}

// ConceptRepository puerto de persistencia del catálogo de conceptos.
// Los Get/Find devuelven (nil, nil) cuando no existe el registro.
type ConceptRepository interface {
	Insert(ctx context.Context, c *entity.Concept) error
	Update(ctx context.Context, c *entity.Concept) error
	GetByID(ctx context.Context, id string) (*entity.Concept, error)
	// FindByCode busca sin distinguir mayúsculas.
	FindByCode(ctx context.Context, code string) (*entity.Concept, error)
	List(ctx context.Context, f ConceptFilter) ([]*entity.Concept, error)
	// CountUsage cuenta las líneas de factura históricas que referencian el código.
	CountUsage(ctx context.Context, code string) (int, error)
}
