package usuario

import (
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
)

// Repository encapsula operaciones de base de datos para Usuario.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(u *Usuario) error {
	return r.DB.Create(u).Error
}

func (r *Repository) FindByID(id uint) (*Usuario, error) {
	var u Usuario
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByEmail(email string) (*Usuario, error) {
	var u Usuario
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindAll() ([]Usuario, error) {
	var list []Usuario
	err := r.DB.Order("nombre").Find(&list).Error
	return list, err
}

// Contar retorna el número de usuarios registrados. Con cero usuarios
// la ventana de arranque del gate permanece abierta.
func (r *Repository) Contar() (int64, error) {
	var n int64
	err := r.DB.Model(&Usuario{}).Count(&n).Error
	return n, err
}

// ActualizarRol cambia el rol de un usuario.
func (r *Repository) ActualizarRol(id uint, rol autorizacion.Rol, clienteID *uint) error {
	return r.DB.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rol":        rol,
		"cliente_id": clienteID,
	}).Error
}

// ActualizarModulos reemplaza el conjunto de módulos autorizados.
func (r *Repository) ActualizarModulos(id uint, modulos []string) error {
	u, err := r.FindByID(id)
	if err != nil {
		return err
	}
	u.ModulosAutorizados = modulos
	return r.DB.Save(u).Error
}

// ActualizarClave guarda el hash de la nueva clave.
func (r *Repository) ActualizarClave(id uint, hash string, debeCambiar bool) error {
	return r.DB.Model(&Usuario{}).Where("id = ?", id).Updates(map[string]interface{}{
		"clave":              hash,
		"debe_cambiar_clave": debeCambiar,
	}).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Usuario{}, id).Error
}
