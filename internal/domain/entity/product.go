package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del almacén (EPI, herramienta, ropa de cama...).
// Quantity es el disponible en stock; nunca negativo. Se modifica solo por entradas de
// factura, retiros y devoluciones.
type Product struct {
	ID          string
	Code        string // clave de negocio única
	Name        string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitValue   decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
