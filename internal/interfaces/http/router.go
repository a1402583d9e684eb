package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/auth"
	"github.com/jhoicas/Alojamientos-api/internal/application/report"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UnitUC          *usecase.UnitUseCase
	AccommodationUC *usecase.AccommodationUseCase
	EmployeeUC      *usecase.EmployeeUseCase
	ProductUC       *usecase.ProductUseCase
	InspectionUC    *usecase.InspectionUseCase
	WorkHourUC      *usecase.WorkHourUseCase
	Assignments     *accommodation.AssignmentUseCase
	Ledger          *stock.LedgerUseCase
	ImportEntry     *stock.ImportEntryUseCase
	Transfers       *transfer.UseCase
	Reports         *report.UseCase
	// Idempotency es opcional; nil desactiva la deduplicación de retiros.
	Idempotency IdempotencyStore
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	housing := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAlmacenista)

	// Units
	units := protected.Group("/units", adminOnly)
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)

	// Accommodations y rooms
	accHandler := NewAccommodationHandler(deps.AccommodationUC, deps.Assignments, deps.Reports)
	accs := protected.Group("/accommodations")
	accs.Get("/:id/occupancy", anyRole, accHandler.Occupancy)
	accs.Get("/:id/report", anyRole, accHandler.Report)
	accs.Post("/", housing, accHandler.Create)
	accs.Get("/", housing, accHandler.List)
	accs.Get("/:id", housing, accHandler.GetByID)
	accs.Put("/:id", housing, accHandler.Update)
	accs.Delete("/:id", housing, accHandler.Deactivate)
	accs.Post("/:id/rooms", housing, accHandler.CreateRoom)
	accs.Get("/:id/rooms", housing, accHandler.ListRooms)

	rooms := protected.Group("/rooms", housing)
	rooms.Put("/:id", accHandler.UpdateRoom)
	rooms.Delete("/:id", accHandler.DeactivateRoom)

	// Employees
	empHandler := NewEmployeeHandler(EmployeeHandlerDeps{
		Employees:   deps.EmployeeUC,
		Assignments: deps.Assignments,
		Transfers:   deps.Transfers,
		WorkHours:   deps.WorkHourUC,
		Ledger:      deps.Ledger,
		Reports:     deps.Reports,
	})
	emps := protected.Group("/employees")
	emps.Get("/:id/movements", anyRole, empHandler.Movements)
	emps.Get("/:id/receipt", anyRole, empHandler.Receipt)
	emps.Post("/", housing, empHandler.Create)
	emps.Get("/", housing, empHandler.List)
	emps.Get("/:id", housing, empHandler.GetByID)
	emps.Put("/:id", housing, empHandler.Update)
	emps.Post("/:id/integrate", housing, empHandler.Integrate)
	emps.Post("/:id/dismiss", housing, empHandler.Dismiss)
	emps.Put("/:id/assignment", housing, empHandler.Assign)
	emps.Delete("/:id/assignment", housing, empHandler.Unassign)
	emps.Post("/:id/transfers", housing, empHandler.Transfer)
	emps.Get("/:id/transfers", housing, empHandler.TransferHistory)
	emps.Post("/:id/work-hours", housing, empHandler.LogWorkHours)
	emps.Get("/:id/work-hours", housing, empHandler.ListWorkHours)

	// Products y entradas de mercadería
	products := protected.Group("/products", warehouse)
	productHandler := NewProductHandler(deps.ProductUC, deps.ImportEntry)
	products.Post("/entries", productHandler.ImportEntry)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Movements (libro de stock)
	movements := protected.Group("/movements", warehouse)
	movHandler := NewMovementHandler(deps.Ledger)
	movements.Post("/", Idempotency(deps.Idempotency), movHandler.Withdraw)
	movements.Get("/", movHandler.List)
	movements.Put("/:id", movHandler.Update)
	movements.Post("/:id/return", Idempotency(deps.Idempotency), movHandler.Return)

	// Inspections
	inspections := protected.Group("/inspections", housing)
	inspHandler := NewInspectionHandler(deps.InspectionUC)
	inspections.Post("/", inspHandler.Create)
	inspections.Get("/", inspHandler.List)
	inspections.Get("/:id", inspHandler.GetByID)
	inspections.Post("/:id/photos", inspHandler.AddPhoto)
}
