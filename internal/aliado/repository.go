package aliado

import (
	"gorm.io/gorm"
)

// Repository encapsula operaciones de base de datos para Aliado.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Aliado) error {
	return r.DB.Create(a).Error
}

// FindAll retorna los aliados; con soloActivos filtra los inactivos.
func (r *Repository) FindAll(soloActivos bool) ([]Aliado, error) {
	var list []Aliado
	q := r.DB.Order("nombre")
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Aliado, error) {
	var a Aliado
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Update(id uint, datos *Aliado) (*Aliado, error) {
	var existente Aliado
	if err := r.DB.First(&existente, id).Error; err != nil {
		return nil, err
	}
	existente.Nombre = datos.Nombre
	existente.NIT = datos.NIT
	existente.Email = datos.Email
	existente.Telefono = datos.Telefono
	existente.Activo = datos.Activo
	if err := r.DB.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}
