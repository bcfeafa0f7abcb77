package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
)

// ClientHandler suscriptores y sus sedes.
type ClientHandler struct {
	clients *usecase.ClientUseCase
	sites   *usecase.SiteUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(clients *usecase.ClientUseCase, sites *usecase.SiteUseCase) *ClientHandler {
	return &ClientHandler{clients: clients, sites: sites}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.clients.Create(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "cliente creado", out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.clients.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Update godoc
// @Summary      Actualizar cliente (contacto, estrato, estado)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.ClientResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      404   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/clients/{id} [patch]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.clients.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "cliente actualizado", out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clients
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope{data=dto.ClientListResponse}
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	if page.Limit > 100 {
		page.Limit = 100
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	out, err := h.clients.List(c.UserContext(), page)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// AddSite godoc
// @Summary      Agregar sede al cliente
// @Description  Requiere dirección y al menos un plan (internet o televisión).
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.CreateSiteRequest  true  "Datos de la sede"
// @Success      201   {object}  dto.Envelope{data=dto.SiteResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      404   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/clients/{id}/sites [post]
func (h *ClientHandler) AddSite(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.sites.AddSite(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "sede creada", out)
}

// ListSites godoc
// @Summary      Sedes del cliente
// @Tags         clients
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.Envelope{data=[]dto.SiteResponse}
// @Router       /api/clients/{id}/sites [get]
func (h *ClientHandler) ListSites(c *fiber.Ctx) error {
	out, err := h.sites.ListByClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}
