package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente representa una empresa cliente de la corredora.
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nombre   string `gorm:"size:255;not null" json:"nombre"`
	NIT      string `gorm:"size:50;uniqueIndex" json:"nit"`
	Email    string `gorm:"size:255" json:"email"`
	Telefono string `gorm:"size:50" json:"telefono"`
	Ciudad   string `gorm:"size:100" json:"ciudad"`
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
