package ordenservicio

import (
	"errors"

	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Repository encapsula las lecturas de órdenes de servicio. Las
// escrituras pasan por el Validador, que es quien abre la transacción.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByID retorna una orden por su ID.
func (r *Repository) FindByID(id uint) (*OrdenServicio, error) {
	var o OrdenServicio
	if err := r.DB.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dominio.Nuevof(dominio.CodigoNoEncontrado, "orden de servicio %d no existe", id)
		}
		return nil, err
	}
	return &o, nil
}

// FindAll retorna órdenes filtrando opcionalmente por presupuesto y estado.
func (r *Repository) FindAll(presupuestoID uint, estado EstadoOrden) ([]OrdenServicio, error) {
	var list []OrdenServicio
	q := r.DB.Order("created_at DESC")
	if presupuestoID != 0 {
		q = q.Where("presupuesto_id = ?", presupuestoID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Find(&list).Error
	return list, err
}

// FindByPresupuesto retorna las órdenes de un presupuesto.
func (r *Repository) FindByPresupuesto(presupuestoID uint) ([]OrdenServicio, error) {
	return r.FindAll(presupuestoID, "")
}

// FindByCliente retorna las órdenes de un cliente, con los mismos
// filtros opcionales de FindAll.
func (r *Repository) FindByCliente(clienteID, presupuestoID uint, estado EstadoOrden) ([]OrdenServicio, error) {
	var list []OrdenServicio
	q := r.DB.Where("cliente_id = ?", clienteID).Order("created_at DESC")
	if presupuestoID != 0 {
		q = q.Where("presupuesto_id = ?", presupuestoID)
	}
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Find(&list).Error
	return list, err
}
