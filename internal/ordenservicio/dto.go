package ordenservicio

import "github.com/shopspring/decimal"

// CreateOrdenDTO es el payload de creación de una orden de servicio.
// Cliente y aliado se toman del presupuesto; aliadoId puede
// sobrescribirse en la creación.
type CreateOrdenDTO struct {
	PresupuestoID uint            `json:"presupuestoId"`
	AliadoID      *uint           `json:"aliadoId,omitempty"`
	Descripcion   string          `json:"descripcion"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costoUnitario"`
}

// UpdateOrdenDTO es el payload de edición. Los campos omitidos
// conservan su valor; cambiar presupuestoId reubica el consumo entre
// sobres dentro de una misma transacción.
type UpdateOrdenDTO struct {
	PresupuestoID *uint            `json:"presupuestoId,omitempty"`
	AliadoID      *uint            `json:"aliadoId,omitempty"`
	Descripcion   *string          `json:"descripcion,omitempty"`
	Cantidad      *decimal.Decimal `json:"cantidad,omitempty"`
	CostoUnitario *decimal.Decimal `json:"costoUnitario,omitempty"`
}

// RegistrarFacturaDTO es el payload del registro de factura.
type RegistrarFacturaDTO struct {
	NumeroFactura   string `json:"numeroFactura"`
	FechaRadicacion string `json:"fechaRadicacion,omitempty"`
}
