// Package memory implementa los repositorios en memoria. Se usa con DB_DRIVER=memory
// para desarrollo local y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/isp-billing/internal/application/billing"
	"github.com/jhoicas/isp-billing/internal/domain/entity"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
)

var _ billing.InvoiceTxRunner = (*Store)(nil)

// Store guarda todas las entidades tras un único mutex.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	concepts map[string]*entity.Concept
	plans    map[string]*entity.ServicePlan
	clients  map[string]*entity.Client
	sites    map[string]*entity.Site
	invoices map[string]*entity.Invoice
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		concepts: make(map[string]*entity.Concept),
		plans:    make(map[string]*entity.ServicePlan),
		clients:  make(map[string]*entity.Client),
		sites:    make(map[string]*entity.Site),
		invoices: make(map[string]*entity.Invoice),
	}
}

// Concepts repositorio de conceptos.
func (s *Store) Concepts() *ConceptRepo { return &ConceptRepo{s: s} }

// Plans repositorio de planes.
func (s *Store) Plans() *PlanRepo { return &PlanRepo{s: s} }

// Clients repositorio de clientes.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s} }

// Sites repositorio de sedes.
func (s *Store) Sites() *SiteRepo { return &SiteRepo{s: s} }

// Invoices repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// RunInvoicing serializa las emisiones; la única escritura es el Create final.
func (s *Store) RunInvoicing(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Invoices())
}
