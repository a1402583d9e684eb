package entity

import "time"

// Accommodation representa un alojamiento (dormitorio, casa, hotel contratado) con capacidad limitada.
// Se desactiva (Active=false) en lugar de borrarse.
type Accommodation struct {
	ID        string
	UnitID    string
	Name      string
	Address   string
	Capacity  int // número máximo de empleados activos alojados (>= 1)
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Room representa una habitación de un alojamiento; BedCount es su capacidad.
type Room struct {
	ID              string
	AccommodationID string
	Name            string
	BedCount        int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
