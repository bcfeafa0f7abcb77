package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/billing"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ConceptUC     *usecase.ConceptUseCase
	PlanUC        *usecase.PlanUseCase
	ClientUC      *usecase.ClientUseCase
	SiteUC        *usecase.SiteUseCase
	ContractTerms *billing.ContractTermsUseCase
	IssueInvoice  *billing.IssueInvoiceUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de conceptos
	concepts := api.Group("/concepts")
	conceptHandler := NewConceptHandler(deps.ConceptUC)
	concepts.Post("/", conceptHandler.Create)
	concepts.Post("/bulk", conceptHandler.BulkCreate)
	concepts.Get("/", conceptHandler.List)
	concepts.Get("/code/:code", conceptHandler.GetByCode)
	concepts.Get("/:id", conceptHandler.GetByID)
	concepts.Put("/:id", conceptHandler.Update)
	concepts.Delete("/:id", conceptHandler.Deactivate)

	// Planes de servicio
	plans := api.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Post("/", planHandler.Create)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)
	plans.Delete("/:id", planHandler.Deactivate)

	// Clientes y sus sedes
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.SiteUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id", clientHandler.Update)
	clients.Post("/:id/sites", clientHandler.AddSite)
	clients.Get("/:id/sites", clientHandler.ListSites)

	// Sedes: cobro, contrato y facturación
	sites := api.Group("/sites")
	siteHandler := NewSiteHandler(deps.SiteUC, deps.ContractTerms, deps.IssueInvoice)
	sites.Post("/preview", siteHandler.Preview)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Get("/:id/total", siteHandler.Total)
	sites.Get("/:id/terms", siteHandler.Terms)
	sites.Post("/:id/invoices", siteHandler.IssueInvoice)
	sites.Get("/:id/invoices", siteHandler.ListInvoices)

	api.Get("/invoices/:id", siteHandler.GetInvoice)
}
