package ordenservicio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadoOrden es el estado de ciclo de vida de una orden de servicio.
type EstadoOrden string

const (
	EstadoPendiente EstadoOrden = "PENDIENTE"
	EstadoEjecutada EstadoOrden = "EJECUTADA"
	EstadoFacturada EstadoOrden = "FACTURADA"
	EstadoAnulada   EstadoOrden = "ANULADA"
)

// EsValido reporta si el estado es uno de los cuatro conocidos.
func (e EstadoOrden) EsValido() bool {
	switch e {
	case EstadoPendiente, EstadoEjecutada, EstadoFacturada, EstadoAnulada:
		return true
	}
	return false
}

// PuedeTransicionar reporta si la transición e → destino es legal.
// ANULADA es terminal e irreversible; la anulación es posible desde
// cualquier otro estado y libera el saldo consumido.
func (e EstadoOrden) PuedeTransicionar(destino EstadoOrden) bool {
	switch e {
	case EstadoPendiente:
		return destino == EstadoEjecutada || destino == EstadoAnulada
	case EstadoEjecutada:
		return destino == EstadoFacturada || destino == EstadoAnulada
	case EstadoFacturada:
		return destino == EstadoAnulada
	case EstadoAnulada:
		return false
	}
	return false
}

// OrdenServicio es un consumo contra exactamente un presupuesto.
// ClienteID y AliadoID se desnormalizan del presupuesto al crear y
// luego se editan de forma independiente.
type OrdenServicio struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Codigo        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"codigo"`
	PresupuestoID uint      `gorm:"not null;index" json:"presupuestoId"`
	ClienteID     uint      `gorm:"not null;index" json:"clienteId"`
	AliadoID      *uint     `gorm:"index" json:"aliadoId,omitempty"`

	Descripcion   string          `gorm:"size:500" json:"descripcion"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cantidad"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"costoUnitario"`
	Total         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`

	Estado          EstadoOrden `gorm:"size:50;not null;default:'PENDIENTE';index" json:"estado"`
	NumeroFactura   *string     `gorm:"size:100" json:"numeroFactura,omitempty"`
	FechaRadicacion *time.Time  `json:"fechaRadicacion,omitempty"`
}

// ClientePropietario implementa autorizacion.RecursoDeCliente.
func (o *OrdenServicio) ClientePropietario() uint {
	return o.ClienteID
}

// Contribucion es lo que la orden aporta hoy al ejecutado de su
// presupuesto: su total, salvo que esté anulada.
func (o *OrdenServicio) Contribucion() decimal.Decimal {
	if o.Estado == EstadoAnulada {
		return decimal.Zero
	}
	return o.Total
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrdenServicio{})
}
