package presupuesto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadoPresupuesto es el estado de ciclo de vida de un presupuesto.
// Lo mueve el usuario; nunca se deriva del saldo.
type EstadoPresupuesto string

const (
	EstadoPendiente   EstadoPresupuesto = "PENDIENTE"
	EstadoActivo      EstadoPresupuesto = "ACTIVO"
	EstadoEnEjecucion EstadoPresupuesto = "EN_EJECUCION"
	EstadoCompletado  EstadoPresupuesto = "COMPLETADO"
)

// EsValido reporta si el estado es uno de los cuatro conocidos.
func (e EstadoPresupuesto) EsValido() bool {
	switch e {
	case EstadoPendiente, EstadoActivo, EstadoEnEjecucion, EstadoCompletado:
		return true
	}
	return false
}

// Presupuesto es el sobre de gasto de un cliente: la porción de sus
// comisiones designada para inversión. El invariante
// 0 ≤ monto_ejecutado ≤ monto_asignado se garantiza en AplicarDelta
// con una única actualización condicional.
type Presupuesto struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Codigo    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"codigo"`
	ClienteID uint      `gorm:"not null;index" json:"clienteId"`
	AliadoID  *uint     `gorm:"index" json:"aliadoId,omitempty"`

	BaseComisiones      decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"baseComisiones"`
	PorcentajeInversion decimal.Decimal   `gorm:"type:decimal(8,6);not null" json:"porcentajeInversion"`
	MontoAsignado       decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"montoAsignado"`
	MontoEjecutado      decimal.Decimal   `gorm:"type:decimal(20,2);not null;default:0" json:"montoEjecutado"`
	Estado              EstadoPresupuesto `gorm:"size:50;not null;default:'PENDIENTE';index" json:"estado"`
}

// SaldoDisponible es el monto aún no consumido por órdenes.
func (p *Presupuesto) SaldoDisponible() decimal.Decimal {
	return p.MontoAsignado.Sub(p.MontoEjecutado)
}

// ClientePropietario implementa autorizacion.RecursoDeCliente.
func (p *Presupuesto) ClientePropietario() uint {
	return p.ClienteID
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Presupuesto{})
}
