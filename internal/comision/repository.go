package comision

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsula operaciones de base de datos para Comision.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserta una nueva comisión.
func (r *Repository) Create(c *Comision) error {
	return r.DB.Create(c).Error
}

// FindByCliente retorna las comisiones de un cliente, más recientes primero.
func (r *Repository) FindByCliente(clienteID uint) ([]Comision, error) {
	var list []Comision
	err := r.DB.Where("cliente_id = ?", clienteID).Order("fecha DESC").Find(&list).Error
	return list, err
}

// SumarPorCliente suma el valor de comisión de un cliente. Es la base
// con la que se deriva la asignación de un presupuesto.
func (r *Repository) SumarPorCliente(clienteID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.
		Model(&Comision{}).
		Where("cliente_id = ?", clienteID).
		Select("COALESCE(SUM(valor_comision), 0)").
		Scan(&total).Error
	return total, err
}
