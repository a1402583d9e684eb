package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
)

// InspectionHandler inspecciones de alojamientos con fotos.
type InspectionHandler struct {
	uc *usecase.InspectionUseCase
}

// NewInspectionHandler construye el handler.
func NewInspectionHandler(uc *usecase.InspectionUseCase) *InspectionHandler {
	return &InspectionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar inspección
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInspectionRequest  true  "Resultado, notas y fotos"
// @Success      201   {object}  dto.InspectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inspections [post]
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInspectionRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUnitID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener inspección
// @Tags         inspections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la inspección"
// @Success      200  {object}  dto.InspectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inspections/{id} [get]
func (h *InspectionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Inspecciones de un alojamiento
// @Tags         inspections
// @Security     Bearer
// @Produce      json
// @Param        accommodation_id  query  string  true   "ID del alojamiento"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.InspectionResponse
// @Router       /api/inspections [get]
func (h *InspectionHandler) List(c *fiber.Ctx) error {
	accID := c.Query("accommodation_id")
	if accID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "accommodation_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByAccommodation(c.UserContext(), GetUnitID(c), accID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddPhoto godoc
// @Summary      Agregar foto a una inspección
// @Tags         inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.PhotoRequest  true  "URL y leyenda"
// @Success      201   {object}  dto.PhotoResponse
// @Router       /api/inspections/{id}/photos [post]
func (h *InspectionHandler) AddPhoto(c *fiber.Ctx) error {
	var in dto.PhotoRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddPhoto(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
