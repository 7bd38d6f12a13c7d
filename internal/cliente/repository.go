package cliente

import (
	"gorm.io/gorm"
)

// Repository encapsula operaciones de base de datos para Cliente.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserta un nuevo cliente.
func (r *Repository) Create(c *Cliente) error {
	return r.DB.Create(c).Error
}

// FindAll retorna todos los clientes.
func (r *Repository) FindAll() ([]Cliente, error) {
	var list []Cliente
	err := r.DB.Order("nombre").Find(&list).Error
	return list, err
}

// FindByID retorna un cliente por su ID.
func (r *Repository) FindByID(id uint) (*Cliente, error) {
	var c Cliente
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update guarda los campos editables de un cliente existente.
func (r *Repository) Update(id uint, datos *Cliente) (*Cliente, error) {
	var existente Cliente
	if err := r.DB.First(&existente, id).Error; err != nil {
		return nil, err
	}
	existente.Nombre = datos.Nombre
	existente.NIT = datos.NIT
	existente.Email = datos.Email
	existente.Telefono = datos.Telefono
	existente.Ciudad = datos.Ciudad
	if err := r.DB.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

// Delete elimina un cliente (soft delete).
func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Cliente{}, id).Error
}
