// Package stock implementa la aritmética del libro de stock (servicio de dominio).
// Todas las cantidades son decimal.Decimal: se permiten retiros fraccionados (ej. 0.5)
// sin deriva de punto flotante.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain"
)

// Withdraw devuelve el nuevo disponible tras retirar quantity.
// quantity debe ser > 0 y no mayor que available.
func Withdraw(available, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return available, domain.ErrInvalidInput
	}
	if quantity.GreaterThan(available) {
		return available, domain.ErrInsufficientStock
	}
	return available.Sub(quantity), nil
}

// Return devuelve el nuevo disponible tras reintegrar quantity.
func Return(available, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return available, domain.ErrInvalidInput
	}
	return available.Add(quantity), nil
}

// Reconcile aplica la edición de un movimiento pendiente: restaura la cantidad anterior
// y vuelve a retirar la nueva, verificando suficiencia sobre el disponible restaurado.
//
//	nuevoDisponible = disponible + anterior - nueva   (si nueva <= disponible + anterior)
func Reconcile(available, oldQty, newQty decimal.Decimal) (decimal.Decimal, error) {
	if !newQty.IsPositive() || oldQty.IsNegative() {
		return available, domain.ErrInvalidInput
	}
	restored := available.Add(oldQty)
	return Withdraw(restored, newQty)
}

// Receive suma una entrada de mercadería al disponible.
func Receive(available, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return available, domain.ErrInvalidInput
	}
	return available.Add(quantity), nil
}
