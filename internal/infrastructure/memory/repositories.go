package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/isp-billing/internal/domain"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

var (
	_ repository.ConceptRepository     = (*ConceptRepo)(nil)
	_ repository.ServicePlanRepository = (*PlanRepo)(nil)
	_ repository.ClientRepository      = (*ClientRepo)(nil)
	_ repository.SiteRepository        = (*SiteRepo)(nil)
	_ repository.InvoiceRepository     = (*InvoiceRepo)(nil)
)

// ── Conceptos ─────────────────────────────────────────────────────────────────

// ConceptRepo conceptos en memoria.
type ConceptRepo struct{ s *Store }

func (r *ConceptRepo) codeTaken(code, exceptID string) bool {
	for _, c := range r.s.concepts {
		if c.ID != exceptID && strings.EqualFold(c.Code, code) {
			return true
		}
	}
	return false
}

// Insert guarda un concepto nuevo; el código es único sin distinguir mayúsculas.
func (r *ConceptRepo) Insert(_ context.Context, c *entity.Concept) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.codeTaken(c.Code, c.ID) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, c.Code)
	}
	cp := *c
	r.s.concepts[c.ID] = &cp
	return nil
}

// Update reemplaza un concepto existente.
func (r *ConceptRepo) Update(_ context.Context, c *entity.Concept) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.concepts[c.ID]; !ok {
		return fmt.Errorf("%w: concepto %s", domain.ErrNotFound, c.ID)
	}
	if r.codeTaken(c.Code, c.ID) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, c.Code)
	}
	cp := *c
	r.s.concepts[c.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ConceptRepo) GetByID(_ context.Context, id string) (*entity.Concept, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.concepts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// FindByCode busca sin distinguir mayúsculas.
func (r *ConceptRepo) FindByCode(_ context.Context, code string) (*entity.Concept, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.concepts {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// List ordenado por código.
func (r *ConceptRepo) List(_ context.Context, f repository.ConceptFilter) ([]*entity.Concept, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Concept
	for _, c := range r.s.concepts {
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		if f.OnlyActive && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// CountUsage cuenta líneas de factura de origen concepto con ese código.
func (r *ConceptRepo) CountUsage(_ context.Context, code string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, inv := range r.s.invoices {
		for _, l := range inv.Lines {
			if l.Source == entity.LineSourceConcept && strings.EqualFold(l.Ref, code) {
				n++
			}
		}
	}
	return n, nil
}

// ── Planes ────────────────────────────────────────────────────────────────────

// PlanRepo planes en memoria.
type PlanRepo struct{ s *Store }

// Create guarda un plan.
func (r *PlanRepo) Create(_ context.Context, p *entity.ServicePlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.plans[p.ID] = &cp
	return nil
}

// Update reemplaza un plan.
func (r *PlanRepo) Update(_ context.Context, p *entity.ServicePlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[p.ID]; !ok {
		return fmt.Errorf("%w: plan %s", domain.ErrNotFound, p.ID)
	}
	cp := *p
	r.s.plans[p.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *PlanRepo) GetByID(_ context.Context, id string) (*entity.ServicePlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// List ordenado por nombre.
func (r *PlanRepo) List(_ context.Context, t entity.ServiceType) ([]*entity.ServicePlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ServicePlan
	for _, p := range r.s.plans {
		if t != "" && p.Type != t {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CountActiveSites cuenta sedes activas que usan el plan.
func (r *PlanRepo) CountActiveSites(_ context.Context, planID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, site := range r.s.sites {
		if !site.Active {
			continue
		}
		if (site.InternetPlan != nil && site.InternetPlan.PlanID == planID) ||
			(site.TelevisionPlan != nil && site.TelevisionPlan.PlanID == planID) {
			n++
		}
	}
	return n, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// ClientRepo clientes en memoria.
type ClientRepo struct{ s *Store }

// Create guarda un cliente; la identificación es única.
func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.clients {
		if other.Identification == c.Identification {
			return fmt.Errorf("%w: identificación %s", domain.ErrDuplicate, c.Identification)
		}
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

// Update reemplaza un cliente.
func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, c.ID)
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetByIdentification devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByIdentification(_ context.Context, identification string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if c.Identification == identification {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// List ordenado por nombre con paginación.
func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// ── Sedes ─────────────────────────────────────────────────────────────────────

// SiteRepo sedes en memoria.
type SiteRepo struct{ s *Store }

func copySite(s *entity.Site) *entity.Site {
	cp := *s
	if s.InternetPlan != nil {
		ref := *s.InternetPlan
		cp.InternetPlan = &ref
	}
	if s.TelevisionPlan != nil {
		ref := *s.TelevisionPlan
		cp.TelevisionPlan = &ref
	}
	return &cp
}

// Create guarda una sede.
func (r *SiteRepo) Create(_ context.Context, s *entity.Site) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sites[s.ID] = copySite(s)
	return nil
}

// Update reemplaza una sede.
func (r *SiteRepo) Update(_ context.Context, s *entity.Site) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sites[s.ID]; !ok {
		return fmt.Errorf("%w: sede %s", domain.ErrNotFound, s.ID)
	}
	r.s.sites[s.ID] = copySite(s)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.sites[id]
	if !ok {
		return nil, nil
	}
	return copySite(s), nil
}

// ListByClient ordenado por fecha de activación.
func (r *SiteRepo) ListByClient(_ context.Context, clientID string) ([]*entity.Site, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Site
	for _, s := range r.s.sites {
		if s.ClientID == clientID {
			out = append(out, copySite(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivationDate.Before(out[j].ActivationDate) })
	return out, nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct{ s *Store }

func copyInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	cp.Lines = append([]entity.InvoiceLine(nil), inv.Lines...)
	return &cp
}

// Create guarda cabecera y líneas; una factura por sede y periodo.
func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.invoices {
		if other.SiteID == inv.SiteID && other.Period == inv.Period {
			return fmt.Errorf("%w: la sede ya tiene factura para %s", domain.ErrConflict, inv.Period)
		}
	}
	r.s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

// ExistsForSitePeriod indica si ya se emitió la factura del periodo.
func (r *InvoiceRepo) ExistsForSitePeriod(_ context.Context, siteID, period string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.invoices {
		if inv.SiteID == siteID && inv.Period == period {
			return true, nil
		}
	}
	return false, nil
}

// ListBySite ordenado del periodo más reciente al más antiguo.
func (r *InvoiceRepo) ListBySite(_ context.Context, siteID string) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.SiteID == siteID {
			out = append(out, copyInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out, nil
}
