package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
)

// MovementHandler retiros y devoluciones del libro de stock.
type MovementHandler struct {
	ledger *stock.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *stock.LedgerUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// Withdraw godoc
// @Summary      Retirar producto para un empleado
// @Description  Acepta Idempotency-Key: la repetición devuelve la misma respuesta sin volver a descontar.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.WithdrawRequest  true  "Empleado, producto y cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.ledger.Withdraw(c.UserContext(), stock.WithdrawInput{
		UnitID:       GetUnitID(c),
		ActorID:      GetUserID(c),
		EmployeeID:   in.EmployeeID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		MovementDate: in.MovementDate,
		Observation:  in.Observation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  true   "ID del producto"
// @Param        outstanding  query  bool    false  "Solo pendientes de devolución"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.ledger.ListByProduct(c.UserContext(), productID, c.QueryBool("outstanding", false), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar movimiento pendiente
// @Description  Recalcula el stock (devuelve la cantidad anterior, descuenta la nueva). 409 si ya fue devuelto.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Cantidad, fecha u observación"
// @Success      200   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.ledger.UpdateMovement(c.UserContext(), stock.UpdateMovementInput{
		UnitID:       GetUnitID(c),
		ActorID:      GetUserID(c),
		MovementID:   c.Params("id"),
		Quantity:     in.Quantity,
		MovementDate: in.MovementDate,
		Observation:  in.Observation,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver movimiento
// @Description  Reintegra la cantidad al stock. Una segunda devolución responde 409 ALREADY_RETURNED.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.ReturnRequest  false  "Fecha de devolución"
// @Success      200   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/return [post]
func (h *MovementHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if len(c.Body()) > 0 {
		if ok, err := parseAndValidate(c, &in); !ok {
			return err
		}
	}
	out, err := h.ledger.ReturnMovement(c.UserContext(), stock.ReturnInput{
		UnitID:     GetUnitID(c),
		ActorID:    GetUserID(c),
		MovementID: c.Params("id"),
		ReturnDate: in.ReturnDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
