package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/report"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
)

// AccommodationHandler alojamientos, habitaciones y ocupación (protegido).
type AccommodationHandler struct {
	uc          *usecase.AccommodationUseCase
	assignments *accommodation.AssignmentUseCase
	reports     *report.UseCase
}

// NewAccommodationHandler construye el handler.
func NewAccommodationHandler(uc *usecase.AccommodationUseCase, assignments *accommodation.AssignmentUseCase, reports *report.UseCase) *AccommodationHandler {
	return &AccommodationHandler{uc: uc, assignments: assignments, reports: reports}
}

// Create godoc
// @Summary      Crear alojamiento
// @Tags         accommodations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccommodationRequest  true  "Datos del alojamiento"
// @Success      201   {object}  dto.AccommodationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accommodations [post]
func (h *AccommodationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccommodationRequest
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
// @Summary      Obtener alojamiento
// @Tags         accommodations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {object}  dto.AccommodationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id} [get]
func (h *AccommodationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar alojamientos de la unidad
// @Tags         accommodations
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200     {object}  dto.AccommodationListResponse
// @Router       /api/accommodations [get]
func (h *AccommodationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetUnitID(c), c.QueryBool("active", false), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar alojamiento
// @Description  Permite reducir la capacidad por debajo de la ocupación; la respuesta marca over_capacity.
// @Tags         accommodations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del alojamiento"
// @Param        body  body  dto.UpdateAccommodationRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AccommodationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id} [put]
func (h *AccommodationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccommodationRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar alojamiento
// @Tags         accommodations
// @Security     Bearer
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id} [delete]
func (h *AccommodationHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Occupancy godoc
// @Summary      Ocupación del alojamiento
// @Tags         accommodations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {object}  dto.OccupancyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id}/occupancy [get]
func (h *AccommodationHandler) Occupancy(c *fiber.Ctx) error {
	out, err := h.assignments.Occupancy(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe PDF de ocupación
// @Tags         accommodations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id}/report [get]
func (h *AccommodationHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.reports.OccupancyPDF(c.UserContext(), GetUnitID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "ocupacion-"+id+".pdf", pdf)
}

// CreateRoom godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del alojamiento"
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accommodations/{id}/rooms [post]
func (h *AccommodationHandler) CreateRoom(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateRoom(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRooms godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alojamiento"
// @Success      200  {array}  dto.RoomResponse
// @Router       /api/accommodations/{id}/rooms [get]
func (h *AccommodationHandler) ListRooms(c *fiber.Ctx) error {
	out, err := h.uc.ListRooms(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateRoom godoc
// @Summary      Actualizar habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la habitación"
// @Param        body  body  dto.UpdateRoomRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RoomResponse
// @Router       /api/rooms/{id} [put]
func (h *AccommodationHandler) UpdateRoom(c *fiber.Ctx) error {
	var in dto.UpdateRoomRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateRoom(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeactivateRoom godoc
// @Summary      Desactivar habitación
// @Tags         rooms
// @Security     Bearer
// @Param        id   path  string  true  "ID de la habitación"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [delete]
func (h *AccommodationHandler) DeactivateRoom(c *fiber.Ctx) error {
	if err := h.uc.DeactivateRoom(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func sendPDF(c *fiber.Ctx, filename string, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
