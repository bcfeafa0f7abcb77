package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
)

// ConceptHandler catálogo de conceptos facturables.
type ConceptHandler struct {
	uc *usecase.ConceptUseCase
}

// NewConceptHandler construye el handler.
func NewConceptHandler(uc *usecase.ConceptUseCase) *ConceptHandler {
	return &ConceptHandler{uc: uc}
}

// Create godoc
// @Summary      Crear concepto
// @Tags         concepts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertConceptRequest  true  "Datos del concepto"
// @Success      201   {object}  dto.Envelope{data=dto.ConceptResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts [post]
func (h *ConceptHandler) Create(c *fiber.Ctx) error {
	var in dto.UpsertConceptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Upsert(c.UserContext(), "", in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "concepto creado", out)
}

// Update godoc
// @Summary      Actualizar concepto
// @Tags         concepts
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del concepto"
// @Param        body  body  dto.UpsertConceptRequest  true  "Datos del concepto"
// @Success      200   {object}  dto.Envelope{data=dto.ConceptResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      404   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts/{id} [put]
func (h *ConceptHandler) Update(c *fiber.Ctx) error {
	var in dto.UpsertConceptRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Upsert(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "concepto actualizado", out)
}

// GetByID godoc
// @Summary      Obtener concepto por ID
// @Tags         concepts
// @Produce      json
// @Param        id   path  string  true  "ID del concepto"
// @Success      200  {object}  dto.Envelope{data=dto.ConceptResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts/{id} [get]
func (h *ConceptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// GetByCode godoc
// @Summary      Obtener concepto por código (sin distinguir mayúsculas)
// @Tags         concepts
// @Produce      json
// @Param        code  path  string  true  "Código"
// @Success      200   {object}  dto.Envelope{data=dto.ConceptResponse}
// @Failure      404   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts/code/{code} [get]
func (h *ConceptHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// List godoc
// @Summary      Listar conceptos
// @Tags         concepts
// @Produce      json
// @Param        type    query  string  false  "Tipo de concepto"
// @Param        active  query  bool    false  "Solo activos"
// @Success      200     {object}  dto.Envelope{data=[]dto.ConceptResponse}
// @Router       /api/concepts [get]
func (h *ConceptHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("type"), c.QueryBool("active", false))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Deactivate godoc
// @Summary      Desactivar concepto
// @Description  Borrado lógico. 409 si el concepto aparece en facturas emitidas.
// @Tags         concepts
// @Produce      json
// @Param        id   path  string  true  "ID del concepto"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Failure      409  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts/{id} [delete]
func (h *ConceptHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "concepto desactivado", nil)
}

// BulkCreate godoc
// @Summary      Carga masiva de conceptos
// @Description  Máximo 100 ítems. Cada ítem se procesa de forma independiente.
// @Tags         concepts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCreateConceptsRequest  true  "Ítems"
// @Success      200   {object}  dto.Envelope{data=dto.BulkCreateResult}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/concepts/bulk [post]
func (h *ConceptHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkCreateConceptsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.BulkCreate(c.UserContext(), in.Items)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, fmt.Sprintf("%d creados, %d fallidos", out.Created, out.Failed), out)
}
