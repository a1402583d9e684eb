package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/report"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// EmployeeHandler ciclo de vida del empleado: alta, asignación, transferencia, horas y retiros.
type EmployeeHandler struct {
	uc          *usecase.EmployeeUseCase
	assignments *accommodation.AssignmentUseCase
	transfers   *transfer.UseCase
	workHours   *usecase.WorkHourUseCase
	ledger      *stock.LedgerUseCase
	reports     *report.UseCase
}

// EmployeeHandlerDeps dependencias del handler de empleados.
type EmployeeHandlerDeps struct {
	Employees   *usecase.EmployeeUseCase
	Assignments *accommodation.AssignmentUseCase
	Transfers   *transfer.UseCase
	WorkHours   *usecase.WorkHourUseCase
	Ledger      *stock.LedgerUseCase
	Reports     *report.UseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(d EmployeeHandlerDeps) *EmployeeHandler {
	return &EmployeeHandler{
		uc:          d.Employees,
		assignments: d.Assignments,
		transfers:   d.Transfers,
		workHours:   d.WorkHours,
		ledger:      d.Ledger,
		reports:     d.Reports,
	}
}

// Create godoc
// @Summary      Registrar empleado (inicio de integración)
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
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
// @Summary      Obtener empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empleados de la unidad
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        status            query  string  false  "PENDIENTE_INTEGRACION | INTEGRADO | DESVINCULADO"
// @Param        accommodation_id  query  string  false  "Filtrar por alojamiento"
// @Param        active            query  bool    false  "Solo activos"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.EmployeeListResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), repository.EmployeeFilter{
		UnitID:          GetUnitID(c),
		Status:          c.Query("status"),
		AccommodationID: c.Query("accommodation_id"),
		OnlyActive:      c.QueryBool("active", false),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.EmployeeResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Integrate godoc
// @Summary      Concluir integración
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.IntegrateRequest  true  "Fecha de llegada"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/integrate [post]
func (h *EmployeeHandler) Integrate(c *fiber.Ctx) error {
	var in dto.IntegrateRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Integrate(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dismiss godoc
// @Summary      Desvincular empleado (libera su plaza)
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.DismissRequest  true  "Fecha de salida"
// @Success      200   {object}  dto.EmployeeResponse
// @Router       /api/employees/{id}/dismiss [post]
func (h *EmployeeHandler) Dismiss(c *fiber.Ctx) error {
	var in dto.DismissRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Dismiss(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar alojamiento/habitación
// @Description  Verifica la capacidad bajo bloqueo de fila. 409 CAPACITY_EXCEEDED si no hay plaza.
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.AssignRequest  true  "accommodation_id y/o room_id"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/assignment [put]
func (h *EmployeeHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.assignments.Assign(c.UserContext(), accommodation.AssignInput{
		UnitID:          GetUnitID(c),
		ActorID:         GetUserID(c),
		EmployeeID:      c.Params("id"),
		AccommodationID: in.AccommodationID,
		RoomID:          in.RoomID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Unassign godoc
// @Summary      Liberar la plaza del empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Router       /api/employees/{id}/assignment [delete]
func (h *EmployeeHandler) Unassign(c *fiber.Ctx) error {
	out, err := h.assignments.Unassign(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir empleado a otra unidad
// @Description  Registro de historial y cambio de unidad en una sola transacción.
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.TransferRequest  true  "Unidad destino y fechas"
// @Success      201   {object}  dto.TransferResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/transfers [post]
func (h *EmployeeHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.transfers.Transfer(c.UserContext(), transfer.Input{
		FromUnitID:  GetUnitID(c),
		ActorID:     GetUserID(c),
		EmployeeID:  c.Params("id"),
		ToUnitID:    in.ToUnitID,
		DepartureAt: in.DepartureAt,
		ArrivalAt:   in.ArrivalAt,
		Observation: in.Observation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TransferHistory godoc
// @Summary      Historial de transferencias
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/employees/{id}/transfers [get]
func (h *EmployeeHandler) TransferHistory(c *fiber.Ctx) error {
	out, err := h.transfers.History(c.UserContext(), GetUnitID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LogWorkHours godoc
// @Summary      Registrar horas trabajadas
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.LogWorkHoursRequest  true  "Fecha y horas"
// @Success      201   {object}  dto.WorkHourResponse
// @Router       /api/employees/{id}/work-hours [post]
func (h *EmployeeHandler) LogWorkHours(c *fiber.Ctx) error {
	var in dto.LogWorkHoursRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.workHours.Log(c.UserContext(), GetUnitID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWorkHours godoc
// @Summary      Horas trabajadas del empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del empleado"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {object}  dto.WorkHourSummaryResponse
// @Router       /api/employees/{id}/work-hours [get]
func (h *EmployeeHandler) ListWorkHours(c *fiber.Ctx) error {
	from, ok := queryDate(c, "from")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe tener formato YYYY-MM-DD"})
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe tener formato YYYY-MM-DD"})
	}
	out, err := h.workHours.ListByEmployee(c.UserContext(), GetUnitID(c), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Retiros del empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del empleado"
// @Param        outstanding  query  bool    false  "Solo pendientes de devolución"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/employees/{id}/movements [get]
func (h *EmployeeHandler) Movements(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.ledger.ListByEmployee(c.UserContext(), GetUnitID(c), c.Params("id"), c.QueryBool("outstanding", false), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de retiros del empleado
// @Tags         employees
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {file}  binary
// @Router       /api/employees/{id}/receipt [get]
func (h *EmployeeHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.reports.WithdrawalReceiptPDF(c.UserContext(), GetUnitID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "retiros-"+id+".pdf", pdf)
}

// queryDate lee un parámetro YYYY-MM-DD opcional; ok=false si el formato es inválido.
func queryDate(c *fiber.Ctx, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
