package presupuesto

import "github.com/shopspring/decimal"

// CreatePresupuestoDTO es el payload de creación de un presupuesto.
// Si baseComisiones se omite (o llega en cero), la base se toma de la
// suma de comisiones registradas del cliente al momento de crear.
type CreatePresupuestoDTO struct {
	ClienteID           uint             `json:"clienteId"`
	AliadoID            *uint            `json:"aliadoId,omitempty"`
	BaseComisiones      *decimal.Decimal `json:"baseComisiones,omitempty"`
	PorcentajeInversion decimal.Decimal  `json:"porcentajeInversion"`
}

// RecalcularAsignacionDTO es el payload del recálculo explícito de la
// asignación. Los campos omitidos conservan su valor actual.
type RecalcularAsignacionDTO struct {
	BaseComisiones      *decimal.Decimal `json:"baseComisiones,omitempty"`
	PorcentajeInversion *decimal.Decimal `json:"porcentajeInversion,omitempty"`
}

// ActualizarEstadoDTO es el payload del cambio de estado.
type ActualizarEstadoDTO struct {
	Estado EstadoPresupuesto `json:"estado"`
}
