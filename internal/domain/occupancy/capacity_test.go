package occupancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/occupancy"
)

func TestCheckCapacity(t *testing.T) {
	cases := []struct {
		name     string
		occupied int
		capacity int
		want     error
	}{
		{"vacío", 0, 2, nil},
		{"queda una plaza", 1, 2, nil},
		{"lleno", 2, 2, domain.ErrCapacityExceeded},
		{"capacidad reducida por debajo de la ocupación", 3, 2, domain.ErrCapacityExceeded},
		{"capacidad inválida", 0, 0, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := occupancy.CheckCapacity(tc.occupied, tc.capacity)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFreeSlots_NuncaNegativo(t *testing.T) {
	assert.Equal(t, 2, occupancy.FreeSlots(1, 3))
	assert.Equal(t, 0, occupancy.FreeSlots(3, 3))
	assert.Equal(t, 0, occupancy.FreeSlots(5, 3), "sobreocupación no debe dar plazas negativas")
}

func TestOverCapacity(t *testing.T) {
	assert.False(t, occupancy.OverCapacity(3, 3))
	assert.True(t, occupancy.OverCapacity(4, 3))
}
