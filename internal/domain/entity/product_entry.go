package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductEntry registra la importación de una factura de compra (entrada de stock).
// Digest es el SHA-256 del XML canónico: impide importar dos veces la misma factura.
type ProductEntry struct {
	ID            string
	InvoiceNumber string
	Supplier      string
	IssuedAt      time.Time
	Digest        string
	Lines         []ProductEntryLine
	CreatedBy     string
	CreatedAt     time.Time
}

// ProductEntryLine línea de la factura importada.
type ProductEntryLine struct {
	ProductID   string
	ProductCode string
	Quantity    decimal.Decimal
	UnitValue   decimal.Decimal
}
