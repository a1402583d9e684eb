package dto

import "time"

// CreateAccommodationRequest entrada para crear un alojamiento.
type CreateAccommodationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address" validate:"max=300"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// UpdateAccommodationRequest entrada para actualizar un alojamiento (incluye edición de capacidad).
type UpdateAccommodationRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
}

// AccommodationResponse salida de un alojamiento. OverCapacity se activa cuando la
// capacidad se redujo por debajo de la ocupación actual.
type AccommodationResponse struct {
	ID           string    `json:"id"`
	UnitID       string    `json:"unit_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Capacity     int       `json:"capacity"`
	Active       bool      `json:"active"`
	Occupied     *int      `json:"occupied,omitempty"`
	OverCapacity bool      `json:"over_capacity,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccommodationListResponse lista paginada de alojamientos.
type AccommodationListResponse struct {
	Items []AccommodationResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// CreateRoomRequest entrada para crear una habitación.
type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	BedCount int    `json:"bed_count" validate:"required,min=1"`
}

// UpdateRoomRequest entrada para actualizar una habitación.
type UpdateRoomRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	BedCount *int    `json:"bed_count" validate:"omitempty,min=1"`
}

// RoomResponse salida de una habitación.
type RoomResponse struct {
	ID              string    `json:"id"`
	AccommodationID string    `json:"accommodation_id"`
	Name            string    `json:"name"`
	BedCount        int       `json:"bed_count"`
	Active          bool      `json:"active"`
	Occupied        *int      `json:"occupied,omitempty"`
	OverCapacity    bool      `json:"over_capacity,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AssignRequest body para PUT /api/employees/:id/assignment.
// Con room_id se asigna cama en la habitación (y su alojamiento); con solo accommodation_id,
// se asigna el alojamiento sin habitación.
type AssignRequest struct {
	AccommodationID string `json:"accommodation_id" validate:"omitempty,uuid"`
	RoomID          string `json:"room_id" validate:"omitempty,uuid"`
}

// RoomOccupancy ocupación de una habitación.
type RoomOccupancy struct {
	RoomID   string `json:"room_id"`
	Name     string `json:"name"`
	BedCount int    `json:"bed_count"`
	Occupied int    `json:"occupied"`
	Free     int    `json:"free"`
	Active   bool   `json:"active"`
}

// OccupancyResponse ocupación de un alojamiento con detalle por habitación.
type OccupancyResponse struct {
	AccommodationID string          `json:"accommodation_id"`
	Name            string          `json:"name"`
	Capacity        int             `json:"capacity"`
	Occupied        int             `json:"occupied"`
	Free            int             `json:"free"`
	OverCapacity    bool            `json:"over_capacity"`
	Rooms           []RoomOccupancy `json:"rooms"`
}
