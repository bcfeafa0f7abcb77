package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
	"github.com/jhoicas/isp-billing/pkg/taxid"
)

// ClientUseCase casos de uso para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente. La identificación (cédula o NIT con DV) se normaliza y es única.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	ident := strings.TrimSpace(in.Identification)
	name := strings.TrimSpace(in.Name)
	if ident == "" || name == "" {
		return nil, fmt.Errorf("%w: identificación y nombre son requeridos", domain.ErrValidation)
	}
	if !validStratum(in.Stratum) {
		return nil, fmt.Errorf("%w: el estrato debe estar entre 1 y 6", domain.ErrValidation)
	}
	ident, err := taxid.Normalize(ident)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	existing, err := uc.repo.GetByIdentification(ctx, ident)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: identificación %s", domain.ErrDuplicate, ident)
	}
	now := time.Now()
	c := &entity.Client{
		ID:             uuid.New().String(),
		Identification: ident,
		Name:           name,
		Stratum:        in.Stratum,
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		Status:         entity.ClientStatusActivo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

func (uc *ClientUseCase) get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// Update modifica datos de contacto, estrato o estado.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del cliente es requerido", domain.ErrValidation)
		}
		c.Name = name
	}
	if in.Stratum != nil {
		if !validStratum(*in.Stratum) {
			return nil, fmt.Errorf("%w: el estrato debe estar entre 1 y 6", domain.ErrValidation)
		}
		c.Stratum = *in.Stratum
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.ClientStatusActivo, entity.ClientStatusSuspendido, entity.ClientStatusCancelado:
			c.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, *in.Status)
		}
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func validStratum(s int) bool { return s >= 1 && s <= 6 }

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		Identification: c.Identification,
		Name:           c.Name,
		Stratum:        c.Stratum,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
	}
}
