// Package calculo contiene la aritmética pura del libro de presupuestos.
// Todo el dinero se maneja en punto fijo (decimal) redondeado al centavo;
// nunca float64, para evitar deriva acumulada entre muchas órdenes.
package calculo

import (
	"github.com/shopspring/decimal"

	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

var (
	cero = decimal.Zero
	uno  = decimal.NewFromInt(1)
)

// MontoAsignado deriva el monto asignado de un presupuesto:
// base de comisiones × porcentaje de inversión, redondeado al centavo
// (mitad hacia arriba). El porcentaje debe estar en [0, 1].
func MontoAsignado(baseComisiones, porcentajeInversion decimal.Decimal) (decimal.Decimal, error) {
	if porcentajeInversion.LessThan(cero) || porcentajeInversion.GreaterThan(uno) {
		return cero, dominio.Nuevof(dominio.CodigoFraccionInvalida,
			"el porcentaje de inversión debe estar entre 0 y 1, se recibió %s", porcentajeInversion)
	}
	if baseComisiones.LessThan(cero) {
		return cero, dominio.Nuevo(dominio.CodigoFraccionInvalida,
			"la base de comisiones no puede ser negativa")
	}
	return baseComisiones.Mul(porcentajeInversion).Round(2), nil
}

// TotalOrden calcula el total de una orden de servicio:
// cantidad × costo unitario, redondeado al centavo.
func TotalOrden(cantidad, costoUnitario decimal.Decimal) (decimal.Decimal, error) {
	if cantidad.LessThan(cero) || costoUnitario.LessThan(cero) {
		return cero, dominio.Nuevo(dominio.CodigoCantidadOCostoInvalido,
			"cantidad y costo unitario deben ser no negativos")
	}
	return cantidad.Mul(costoUnitario).Round(2), nil
}

// SaldoDisponible es el saldo restante de un presupuesto:
// monto asignado − monto ejecutado. Puede usarse sobre un presupuesto
// cuyo ejecutado ya refleja órdenes en curso.
func SaldoDisponible(montoAsignado, montoEjecutado decimal.Decimal) decimal.Decimal {
	return montoAsignado.Sub(montoEjecutado)
}
