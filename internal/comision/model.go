package comision

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Comision es un hecho financiero inmutable: la comisión causada por la
// prima de un cliente frente a una ARL. Se registra una vez y solo se
// consulta para agregación; no existe edición ni borrado.
type Comision struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ClienteID          uint            `gorm:"not null;index" json:"clienteId"`
	ARL                string          `gorm:"size:255" json:"arl"`
	Fecha              time.Time       `gorm:"not null" json:"fecha"`
	ValorPrima         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"valorPrima"`
	PorcentajeComision decimal.Decimal `gorm:"type:decimal(8,6);not null" json:"porcentajeComision"`
	ValorComision      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"valorComision"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Comision{})
}
