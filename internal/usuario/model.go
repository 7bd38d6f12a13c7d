package usuario

import (
	"time"

	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
)

// Usuario es el sujeto de autorización persistido. Lo crea el alta de
// usuarios y lo ajusta la gestión de roles del admin; el núcleo de
// autorización solo lo lee.
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nombre           string           `gorm:"size:255;not null" json:"nombre"`
	Email            string           `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Clave            string           `gorm:"size:255;not null" json:"-"`
	DebeCambiarClave bool             `gorm:"not null;default:false" json:"-"`
	Rol              autorizacion.Rol `gorm:"size:50;not null;default:'CONSULTA'" json:"rol"`

	// Módulos autorizados como lista JSONB plana.
	ModulosAutorizados []string `gorm:"type:jsonb;serializer:json" json:"modulosAutorizados"`

	// Solo para el rol CLIENTE: el cliente al que queda confinado.
	ClienteID *uint `gorm:"index" json:"clienteId,omitempty"`
}

// Perfil arma el perfil de autorización del usuario.
func (u *Usuario) Perfil() *autorizacion.Perfil {
	return autorizacion.NuevoPerfil(u.ID, u.Rol, u.ModulosAutorizados, u.ClienteID)
}

// Migrate crea la tabla en la base de datos.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
