// Package occupancy contiene las reglas puras de ocupación de recursos con capacidad
// limitada (alojamientos y habitaciones). No accede a la base de datos: el caso de uso
// le entrega la ocupación leída bajo bloqueo de fila.
package occupancy

import "github.com/jhoicas/Alojamientos-api/internal/domain"

// CheckCapacity decide si cabe un ocupante más.
// occupied debe excluir al propio ocupante cuando se trata de una reasignación.
func CheckCapacity(occupied, capacity int) error {
	if capacity < 1 {
		return domain.ErrInvalidInput
	}
	if occupied >= capacity {
		return domain.ErrCapacityExceeded
	}
	return nil
}

// FreeSlots devuelve las plazas libres; nunca negativo aunque la capacidad se haya
// reducido por debajo de la ocupación actual.
func FreeSlots(occupied, capacity int) int {
	if occupied >= capacity {
		return 0
	}
	return capacity - occupied
}

// OverCapacity indica si la ocupación actual ya supera la capacidad declarada
// (posible tras editar la capacidad a la baja).
func OverCapacity(occupied, capacity int) bool {
	return occupied > capacity
}
