package comision

import "github.com/shopspring/decimal"

// CreateComisionDTO es el payload de registro de una comisión.
// La fecha llega en RFC3339; el valor de comisión puede omitirse y se
// deriva como prima × porcentaje.
type CreateComisionDTO struct {
	ClienteID          uint            `json:"clienteId"`
	ARL                string          `json:"arl"`
	Fecha              string          `json:"fecha"`
	ValorPrima         decimal.Decimal `json:"valorPrima"`
	PorcentajeComision decimal.Decimal `json:"porcentajeComision"`
	ValorComision      decimal.Decimal `json:"valorComision"`
}
