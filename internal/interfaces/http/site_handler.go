package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/billing"
	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
)

// SiteHandler cobro mensual, términos de contrato y facturas de una sede.
type SiteHandler struct {
	sites    *usecase.SiteUseCase
	terms    *billing.ContractTermsUseCase
	invoices *billing.IssueInvoiceUseCase
}

// NewSiteHandler construye el handler.
func NewSiteHandler(sites *usecase.SiteUseCase, terms *billing.ContractTermsUseCase, invoices *billing.IssueInvoiceUseCase) *SiteHandler {
	return &SiteHandler{sites: sites, terms: terms, invoices: invoices}
}

// GetByID godoc
// @Summary      Obtener sede
// @Tags         sites
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.Envelope{data=dto.SiteResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/sites/{id} [get]
func (h *SiteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sites.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Total godoc
// @Summary      Cobro mensual de la sede
// @Description  Desglose por servicio con IVA según el estrato del cliente.
// @Tags         sites
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.Envelope{data=dto.BreakdownResponse}
// @Failure      400  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/sites/{id}/total [get]
func (h *SiteHandler) Total(c *fiber.Ctx) error {
	out, err := h.sites.SiteTotal(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Preview godoc
// @Summary      Vista previa del cobro de una sede en borrador
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewRequest  true  "Planes, estrato y conceptos"
// @Success      200   {object}  dto.Envelope{data=dto.BreakdownResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/sites/preview [post]
func (h *SiteHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.sites.Preview(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Terms godoc
// @Summary      Términos del contrato
// @Description  Meses restantes, penalidad por terminación anticipada y renovación.
// @Tags         sites
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.Envelope{data=dto.ContractTermsResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/sites/{id}/terms [get]
func (h *SiteHandler) Terms(c *fiber.Ctx) error {
	out, err := h.terms.Terms(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// IssueInvoice godoc
// @Summary      Emitir factura mensual
// @Description  Una factura por sede y periodo; 409 si ya existe.
// @Tags         sites
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sede"
// @Param        body  body  dto.IssueInvoiceRequest  true  "Periodo y conceptos"
// @Success      201   {object}  dto.Envelope{data=dto.InvoiceResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      404   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/sites/{id}/invoices [post]
func (h *SiteHandler) IssueInvoice(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.invoices.Issue(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "factura emitida", out)
}

// ListInvoices godoc
// @Summary      Facturas de la sede
// @Tags         sites
// @Produce      json
// @Param        id   path  string  true  "ID de la sede"
// @Success      200  {object}  dto.Envelope{data=[]dto.InvoiceResponse}
// @Router       /api/sites/{id}/invoices [get]
func (h *SiteHandler) ListInvoices(c *fiber.Ctx) error {
	out, err := h.invoices.ListBySite(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// GetInvoice godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.Envelope{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/invoices/{id} [get]
func (h *SiteHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.invoices.GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}
