package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedInvoice factura de compra ya interpretada por el adaptador XML.
type ParsedInvoice struct {
	Number   string
	Supplier string
	IssuedAt time.Time
	Digest   string
	Lines    []ParsedInvoiceLine
}

// ParsedInvoiceLine una línea de producto de la factura.
type ParsedInvoiceLine struct {
	Code        string
	Name        string
	UnitMeasure string
	Quantity    decimal.Decimal
	UnitValue   decimal.Decimal
}

// OccupancyReport datos del informe de ocupación de un alojamiento.
type OccupancyReport struct {
	UnitName    string
	GeneratedAt time.Time
	Occupancy   OccupancyResponse
	Occupants   []EmployeeResponse
}

// ReceiptLine una línea del comprobante de retiros.
type ReceiptLine struct {
	ProductCode  string
	ProductName  string
	UnitMeasure  string
	Quantity     decimal.Decimal
	MovementDate time.Time
	Status       string
}

// WithdrawalReceipt comprobante de productos retirados por un empleado.
type WithdrawalReceipt struct {
	UnitName    string
	GeneratedAt time.Time
	Employee    EmployeeResponse
	Lines       []ReceiptLine
	Outstanding decimal.Decimal
}
