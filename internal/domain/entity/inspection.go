package entity

import "time"

// Resultados de inspección.
const (
	InspectionApproved = "APROBADA"
	InspectionObserved = "OBSERVADA"
	InspectionRejected = "REPROBADA"
)

// Inspection inspección de un alojamiento con galería de fotos.
// Las fotos se guardan en un almacenamiento externo; aquí solo la URL.
type Inspection struct {
	ID              string
	AccommodationID string
	InspectorID     string
	InspectedAt     time.Time
	Result          string
	Notes           string
	Photos          []InspectionPhoto
	CreatedAt       time.Time
}

// InspectionPhoto foto de la galería.
type InspectionPhoto struct {
	ID           string
	InspectionID string
	URL          string
	Caption      string
	CreatedAt    time.Time
}
