package entity

import "time"

// Unit representa una unidad organizativa (obra, sede o frente de trabajo).
// Usuarios, empleados y alojamientos pertenecen a una unidad; es el contexto de acceso.
type Unit struct {
	ID        string
	Code      string // código corto único
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
