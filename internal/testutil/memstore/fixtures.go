package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// Helpers de datos para tests. Escriben directo al estado, sin validaciones.

// SeedUnit crea una unidad activa.
func (s *Store) SeedUnit(code string) *entity.Unit {
	u := entity.Unit{ID: uuid.NewString(), Code: code, Name: "Unidad " + code, Active: true, CreatedAt: time.Now()}
	s.mu.Lock()
	s.data.units[u.ID] = u
	s.mu.Unlock()
	return &u
}

// SeedAccommodation crea un alojamiento activo con la capacidad indicada.
func (s *Store) SeedAccommodation(unitID, name string, capacity int) *entity.Accommodation {
	a := entity.Accommodation{ID: uuid.NewString(), UnitID: unitID, Name: name, Capacity: capacity, Active: true, CreatedAt: time.Now()}
	s.mu.Lock()
	s.data.accommodations[a.ID] = a
	s.mu.Unlock()
	return &a
}

// SeedRoom crea una habitación activa.
func (s *Store) SeedRoom(accommodationID, name string, beds int) *entity.Room {
	r := entity.Room{ID: uuid.NewString(), AccommodationID: accommodationID, Name: name, BedCount: beds, Active: true, CreatedAt: time.Now()}
	s.mu.Lock()
	s.data.rooms[r.ID] = r
	s.mu.Unlock()
	return &r
}

// SeedEmployee crea un empleado activo e integrado, sin asignación.
func (s *Store) SeedEmployee(unitID, name string) *entity.Employee {
	e := entity.Employee{
		ID:        uuid.NewString(),
		UnitID:    unitID,
		Name:      name,
		Document:  uuid.NewString()[:8],
		Status:    entity.EmployeeStatusIntegrated,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.mu.Lock()
	s.data.employees[e.ID] = e
	s.mu.Unlock()
	return &e
}

// SeedProduct crea un producto activo con el disponible indicado.
func (s *Store) SeedProduct(code string, quantity decimal.Decimal) *entity.Product {
	p := entity.Product{
		ID:          uuid.NewString(),
		Code:        code,
		Name:        "Producto " + code,
		UnitMeasure: "UN",
		Quantity:    quantity,
		UnitValue:   decimal.NewFromInt(1000),
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.mu.Lock()
	s.data.products[p.ID] = p
	s.mu.Unlock()
	return &p
}

// Employee lee el estado actual de un empleado (nil si no existe).
func (s *Store) Employee(id string) *entity.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data.employees[id]
	if !ok {
		return nil
	}
	return &e
}

// Product lee el estado actual de un producto (nil si no existe).
func (s *Store) Product(id string) *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data.products[id]
	if !ok {
		return nil
	}
	return &p
}

// TransferCount número de registros de transferencia guardados.
func (s *Store) TransferCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.transfers)
}
