package aliado

import (
	"time"

	"gorm.io/gorm"
)

// Aliado es el tercero que ejecuta órdenes de servicio por cuenta
// de la corredora.
type Aliado struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Nombre   string `gorm:"size:255;not null" json:"nombre"`
	NIT      string `gorm:"size:50;uniqueIndex" json:"nit"`
	Email    string `gorm:"size:255" json:"email"`
	Telefono string `gorm:"size:50" json:"telefono"`
	Activo   bool   `gorm:"not null;default:true" json:"activo"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Aliado{})
}
