// Package memstore implementa en memoria los repositorios y los TxRunner de la aplicación.
// Se usa en tests: cada Run* serializa las transacciones, copia el estado al inicio y lo
// restaura si fn devuelve error, emulando Commit/Rollback de PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var (
	_ accommodation.TxRunner = (*Store)(nil)
	_ stock.TxRunner         = (*Store)(nil)
	_ transfer.TxRunner      = (*Store)(nil)

	_ repository.UnitRepository            = (*UnitRepo)(nil)
	_ repository.UserRepository            = (*UserRepo)(nil)
	_ repository.AccommodationRepository   = (*AccommodationRepo)(nil)
	_ repository.RoomRepository            = (*RoomRepo)(nil)
	_ repository.EmployeeRepository        = (*EmployeeRepo)(nil)
	_ repository.ProductRepository         = (*ProductRepo)(nil)
	_ repository.ProductMovementRepository = (*MovementRepo)(nil)
	_ repository.ProductEntryRepository    = (*EntryRepo)(nil)
	_ repository.TransferRepository        = (*TransferRepo)(nil)
	_ repository.InspectionRepository      = (*InspectionRepo)(nil)
	_ repository.WorkHourRepository        = (*WorkHourRepo)(nil)
	_ repository.AuditRepository           = (*Store)(nil)
)

type state struct {
	units          map[string]entity.Unit
	users          map[string]entity.User
	accommodations map[string]entity.Accommodation
	rooms          map[string]entity.Room
	employees      map[string]entity.Employee
	products       map[string]entity.Product
	movements      map[string]entity.ProductMovement
	entries        map[string]entity.ProductEntry
	transfers      map[string]entity.TransferRecord
	inspections    map[string]entity.Inspection
	workHours      map[string]entity.WorkHourEntry
}

func newState() state {
	return state{
		units:          make(map[string]entity.Unit),
		users:          make(map[string]entity.User),
		accommodations: make(map[string]entity.Accommodation),
		rooms:          make(map[string]entity.Room),
		employees:      make(map[string]entity.Employee),
		products:       make(map[string]entity.Product),
		movements:      make(map[string]entity.ProductMovement),
		entries:        make(map[string]entity.ProductEntry),
		transfers:      make(map[string]entity.TransferRecord),
		inspections:    make(map[string]entity.Inspection),
		workHours:      make(map[string]entity.WorkHourEntry),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.units {
		c.units[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.accommodations {
		c.accommodations[k] = v
	}
	for k, v := range s.rooms {
		c.rooms[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.inspections {
		c.inspections[k] = v
	}
	for k, v := range s.workHours {
		c.workHours[k] = v
	}
	return c
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex // una transacción a la vez (equivale al bloqueo de fila)
	mu   sync.RWMutex
	data state

	failMu sync.Mutex
	fail   map[string]error

	// La auditoría no participa del rollback: llega de forma asíncrona.
	auditMu sync.Mutex
	audit   []entity.AuditEntry
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState(), fail: make(map[string]error)}
}

// FailOn hace que la operación op (ej. "transfers.Create") devuelva err.
// err nil elimina el fallo.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

func (s *Store) injected(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.fail[op]
}

func (s *Store) inTx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.RLock()
	saved := s.data.clone()
	s.mu.RUnlock()
	if err := fn(); err != nil {
		s.mu.Lock()
		s.data = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// RunAssignment implementa accommodation.TxRunner.
func (s *Store) RunAssignment(ctx context.Context, fn func(
	accRepo repository.AccommodationRepository,
	roomRepo repository.RoomRepository,
	empRepo repository.EmployeeRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(s.Accommodations(), s.Rooms(), s.Employees())
	})
}

// RunLedger implementa stock.TxRunner.
func (s *Store) RunLedger(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	entryRepo repository.ProductEntryRepository,
	empRepo repository.EmployeeRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(s.Products(), s.Movements(), s.Entries(), s.Employees())
	})
}

// RunTransfer implementa transfer.TxRunner.
func (s *Store) RunTransfer(ctx context.Context, fn func(
	empRepo repository.EmployeeRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(s.Employees(), s.Transfers())
	})
}

// AuditEntries devuelve una copia de los registros de auditoría recibidos.
func (s *Store) AuditEntries() []entity.AuditEntry {
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	return append([]entity.AuditEntry(nil), s.audit...)
}

// Record implementa repository.AuditRepository.
func (s *Store) Record(_ context.Context, e entity.AuditEntry) error {
	if err := s.injected("audit.Record"); err != nil {
		return err
	}
	s.auditMu.Lock()
	defer s.auditMu.Unlock()
	s.audit = append(s.audit, e)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Units ──────────────────────────────────────────────────────────────────────

// UnitRepo repositorio de unidades.
type UnitRepo struct{ s *Store }

// Units devuelve el repositorio de unidades.
func (s *Store) Units() *UnitRepo { return &UnitRepo{s} }

func (r *UnitRepo) Create(_ context.Context, u *entity.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.units {
		if other.Code == u.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.data.units[u.ID] = *u
	return nil
}

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.units[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UnitRepo) List(_ context.Context, limit, offset int) ([]*entity.Unit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Unit, 0, len(r.s.data.units))
	for _, u := range r.s.data.units {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

// ── Users ──────────────────────────────────────────────────────────────────────

// UserRepo repositorio de usuarios.
type UserRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.users {
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ── Accommodations / Rooms ─────────────────────────────────────────────────────

// AccommodationRepo repositorio de alojamientos.
type AccommodationRepo struct{ s *Store }

// Accommodations devuelve el repositorio de alojamientos.
func (s *Store) Accommodations() *AccommodationRepo { return &AccommodationRepo{s} }

func (r *AccommodationRepo) Create(_ context.Context, a *entity.Accommodation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.accommodations[a.ID] = *a
	return nil
}

func (r *AccommodationRepo) GetByID(_ context.Context, id string) (*entity.Accommodation, error) {
	if err := r.s.injected("accommodations.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.data.accommodations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *AccommodationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Accommodation, error) {
	return r.GetByID(ctx, id)
}

func (r *AccommodationRepo) Update(_ context.Context, a *entity.Accommodation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.accommodations[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.accommodations[a.ID] = *a
	return nil
}

func (r *AccommodationRepo) ListByUnit(_ context.Context, unitID string, onlyActive bool, limit, offset int) ([]*entity.Accommodation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Accommodation
	for _, a := range r.s.data.accommodations {
		if a.UnitID != unitID || (onlyActive && !a.Active) {
			continue
		}
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *AccommodationRepo) CountOccupants(_ context.Context, accommodationID, excludeEmployeeID string) (int, error) {
	if err := r.s.injected("accommodations.CountOccupants"); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, e := range r.s.data.employees {
		if e.Active && e.AccommodationID != nil && *e.AccommodationID == accommodationID && e.ID != excludeEmployeeID {
			n++
		}
	}
	return n, nil
}

// RoomRepo repositorio de habitaciones.
type RoomRepo struct{ s *Store }

// Rooms devuelve el repositorio de habitaciones.
func (s *Store) Rooms() *RoomRepo { return &RoomRepo{s} }

func (r *RoomRepo) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepo) GetByID(_ context.Context, id string) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.data.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &room, nil
}

func (r *RoomRepo) GetForUpdate(ctx context.Context, id string) (*entity.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *RoomRepo) Update(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.rooms[room.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepo) ListByAccommodation(_ context.Context, accommodationID string) ([]*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Room
	for _, room := range r.s.data.rooms {
		if room.AccommodationID == accommodationID {
			room := room
			list = append(list, &room)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *RoomRepo) CountOccupants(_ context.Context, roomID, excludeEmployeeID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, e := range r.s.data.employees {
		if e.Active && e.RoomID != nil && *e.RoomID == roomID && e.ID != excludeEmployeeID {
			n++
		}
	}
	return n, nil
}

// ── Employees ──────────────────────────────────────────────────────────────────

// EmployeeRepo repositorio de empleados.
type EmployeeRepo struct{ s *Store }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s} }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	if err := r.s.injected("employees.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.data.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id string) (*entity.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	if err := r.s.injected("employees.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.employees[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) List(_ context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Employee
	for _, e := range r.s.data.employees {
		if f.UnitID != "" && e.UnitID != f.UnitID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.AccommodationID != "" && (e.AccommodationID == nil || *e.AccommodationID != f.AccommodationID) {
			continue
		}
		if f.OnlyActive && !e.Active {
			continue
		}
		e := e
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, f.Limit, f.Offset), nil
}

// ── Products / Movements / Entries ─────────────────────────────────────────────

// ProductRepo repositorio de productos.
type ProductRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.products {
		if other.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.data.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.data.products {
		if p.Code == code {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Name = p.Name
	cur.UnitMeasure = p.UnitMeasure
	cur.UnitValue = p.UnitValue
	cur.Active = p.Active
	cur.UpdatedAt = p.UpdatedAt
	r.s.data.products[p.ID] = cur
	return nil
}

// UpdateQuantity rechaza un disponible negativo igual que el CHECK de la tabla.
func (r *ProductRepo) UpdateQuantity(_ context.Context, productID string, quantity decimal.Decimal) error {
	if err := r.s.injected("products.UpdateQuantity"); err != nil {
		return err
	}
	if quantity.IsNegative() {
		return domain.ErrInsufficientStock
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	r.s.data.products[productID] = p
	return nil
}

func (r *ProductRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(search)
	var list []*entity.Product
	for _, p := range r.s.data.products {
		if q != "" && !strings.Contains(strings.ToLower(p.Code), q) && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// MovementRepo repositorio de movimientos.
type MovementRepo struct{ s *Store }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s} }

func (r *MovementRepo) Create(_ context.Context, m *entity.ProductMovement) error {
	if err := r.s.injected("movements.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.movements[m.ID] = *m
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.ProductMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.data.movements[id]
	if !ok || !m.Active {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) Update(_ context.Context, m *entity.ProductMovement) error {
	if err := r.s.injected("movements.Update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.movements[m.ID] = *m
	return nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.ProductMovement, error) {
	if err := r.s.injected("movements.List"); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ProductMovement
	for _, m := range r.s.data.movements {
		if !m.Active {
			continue
		}
		if f.EmployeeID != "" && m.EmployeeID != f.EmployeeID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.OnlyOutstanding && !m.IsOutstanding() {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return page(list, f.Limit, f.Offset), nil
}

func (r *MovementRepo) SumOutstanding(_ context.Context, productID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, m := range r.s.data.movements {
		if m.Active && m.ProductID == productID && m.IsOutstanding() {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// EntryRepo repositorio de entradas por factura.
type EntryRepo struct{ s *Store }

// Entries devuelve el repositorio de entradas.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s} }

func (r *EntryRepo) Create(_ context.Context, e *entity.ProductEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.entries {
		if other.Digest == e.Digest {
			return domain.ErrDuplicate
		}
	}
	r.s.data.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) GetByDigest(_ context.Context, digest string) (*entity.ProductEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.data.entries {
		if e.Digest == digest {
			e := e
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ── Transfers ──────────────────────────────────────────────────────────────────

// TransferRepo historial de transferencias.
type TransferRepo struct{ s *Store }

// Transfers devuelve el repositorio de transferencias.
func (s *Store) Transfers() *TransferRepo { return &TransferRepo{s} }

func (r *TransferRepo) Create(_ context.Context, rec *entity.TransferRecord) error {
	if err := r.s.injected("transfers.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.transfers[rec.ID] = *rec
	return nil
}

func (r *TransferRepo) ListByEmployee(_ context.Context, employeeID string) ([]*entity.TransferRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.TransferRecord
	for _, t := range r.s.data.transfers {
		if t.EmployeeID == employeeID {
			t := t
			list = append(list, &t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DepartureAt.Before(list[j].DepartureAt) })
	return list, nil
}

// ── Inspections / Work hours ───────────────────────────────────────────────────

// InspectionRepo repositorio de inspecciones.
type InspectionRepo struct{ s *Store }

// Inspections devuelve el repositorio de inspecciones.
func (s *Store) Inspections() *InspectionRepo { return &InspectionRepo{s} }

func (r *InspectionRepo) Create(_ context.Context, i *entity.Inspection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *i
	cp.Photos = append([]entity.InspectionPhoto(nil), i.Photos...)
	r.s.data.inspections[i.ID] = cp
	return nil
}

func (r *InspectionRepo) GetByID(_ context.Context, id string) (*entity.Inspection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.data.inspections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	i.Photos = append([]entity.InspectionPhoto(nil), i.Photos...)
	return &i, nil
}

func (r *InspectionRepo) ListByAccommodation(_ context.Context, accommodationID string, limit, offset int) ([]*entity.Inspection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Inspection
	for _, i := range r.s.data.inspections {
		if i.AccommodationID == accommodationID {
			i := i
			list = append(list, &i)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].InspectedAt.After(list[b].InspectedAt) })
	return page(list, limit, offset), nil
}

func (r *InspectionRepo) AddPhoto(_ context.Context, p *entity.InspectionPhoto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.data.inspections[p.InspectionID]
	if !ok {
		return domain.ErrNotFound
	}
	i.Photos = append(append([]entity.InspectionPhoto(nil), i.Photos...), *p)
	r.s.data.inspections[i.ID] = i
	return nil
}

// WorkHourRepo repositorio de horas trabajadas.
type WorkHourRepo struct{ s *Store }

// WorkHours devuelve el repositorio de horas.
func (s *Store) WorkHours() *WorkHourRepo { return &WorkHourRepo{s} }

func (r *WorkHourRepo) Create(_ context.Context, e *entity.WorkHourEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.workHours[e.ID] = *e
	return nil
}

func (r *WorkHourRepo) ListByEmployee(_ context.Context, employeeID string, from, to *time.Time) ([]*entity.WorkHourEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.WorkHourEntry
	for _, e := range r.s.data.workHours {
		if e.EmployeeID != employeeID {
			continue
		}
		if from != nil && e.WorkDate.Before(*from) {
			continue
		}
		if to != nil && e.WorkDate.After(*to) {
			continue
		}
		e := e
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WorkDate.Before(list[j].WorkDate) })
	return list, nil
}
