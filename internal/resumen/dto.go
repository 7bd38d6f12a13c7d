package resumen

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResumenClienteDTO es el rollup por cliente que consume el tablero:
// comisiones acumuladas y totales de sus presupuestos.
type ResumenClienteDTO struct {
	ClienteID       uint            `json:"clienteId"`
	Nombre          string          `json:"nombre"`
	TotalComisiones decimal.Decimal `json:"totalComisiones"`
	NumPresupuestos int64           `json:"numPresupuestos"`
	TotalAsignado   decimal.Decimal `json:"totalAsignado"`
	TotalEjecutado  decimal.Decimal `json:"totalEjecutado"`
}

// EjecucionPresupuestoDTO es el rollup de ejecución de un presupuesto.
type EjecucionPresupuestoDTO struct {
	PresupuestoID       uint            `json:"presupuestoId"`
	ClienteID           uint            `json:"clienteId"`
	Codigo              uuid.UUID       `json:"codigo"`
	MontoAsignado       decimal.Decimal `json:"montoAsignado"`
	MontoEjecutado      decimal.Decimal `json:"montoEjecutado"`
	SaldoDisponible     decimal.Decimal `json:"saldoDisponible"`
	PorcentajeEjecucion decimal.Decimal `json:"porcentajeEjecucion"`
	OrdenesActivas      int64           `json:"ordenesActivas"`
	OrdenesAnuladas     int64           `json:"ordenesAnuladas"`
}
