package stock

import "github.com/shopspring/decimal"

// WeightedUnitValue recalcula el valor unitario de un producto al recibir mercadería
// (promedio ponderado):
//
//	nuevoValor = (disponible*valorActual + cantEntrada*valorEntrada) / (disponible + cantEntrada)
//
// Con disponible negativo o suma no positiva devuelve el valor de la entrada.
func WeightedUnitValue(available, currentValue, entryQty, entryValue decimal.Decimal) decimal.Decimal {
	if available.IsNegative() {
		available = decimal.Zero
	}
	sum := available.Add(entryQty)
	if !sum.IsPositive() {
		return entryValue
	}
	num := available.Mul(currentValue).Add(entryQty.Mul(entryValue))
	return num.DivRound(sum, 4)
}
