package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/isp-billing/internal/application/dto"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
)

// PlanHandler catálogo de planes de internet y televisión.
type PlanHandler struct {
	uc *usecase.PlanUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *usecase.PlanUseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plan de servicio
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Datos del plan"
// @Success      201   {object}  dto.Envelope{data=dto.PlanResponse}
// @Failure      400   {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "plan creado", out)
}

// GetByID godoc
// @Summary      Obtener plan
// @Tags         plans
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.Envelope{data=dto.PlanResponse}
// @Failure      404  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// List godoc
// @Summary      Listar planes
// @Tags         plans
// @Produce      json
// @Param        type  query  string  false  "internet | television"
// @Success      200   {object}  dto.Envelope{data=[]dto.PlanResponse}
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("type"))
	if err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "", out)
}

// Deactivate godoc
// @Summary      Desactivar plan
// @Description  409 si alguna sede activa usa el plan.
// @Tags         plans
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope{error=dto.ErrorResponse}
// @Router       /api/plans/{id} [delete]
func (h *PlanHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return respond(c, fiber.StatusOK, "plan desactivado", nil)
}
