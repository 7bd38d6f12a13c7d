package presupuesto

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Repository encapsula operaciones de base de datos para Presupuesto.
// Es el único escritor de monto_ejecutado: toda mutación de consumo
// pasa por AplicarDelta.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserta un nuevo presupuesto.
func (r *Repository) Create(p *Presupuesto) error {
	return r.DB.Create(p).Error
}

// FindByID retorna un presupuesto por su ID.
func (r *Repository) FindByID(id uint) (*Presupuesto, error) {
	var p Presupuesto
	if err := r.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dominio.Nuevof(dominio.CodigoNoEncontrado, "presupuesto %d no existe", id)
		}
		return nil, err
	}
	return &p, nil
}

// FindByCliente retorna los presupuestos de un cliente; estado vacío
// no filtra.
func (r *Repository) FindByCliente(clienteID uint, estado EstadoPresupuesto) ([]Presupuesto, error) {
	var list []Presupuesto
	q := r.DB.Where("cliente_id = ?", clienteID).Order("created_at DESC")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Find(&list).Error
	return list, err
}

// FindAll retorna todos los presupuestos; estado vacío no filtra.
func (r *Repository) FindAll(estado EstadoPresupuesto) ([]Presupuesto, error) {
	var list []Presupuesto
	q := r.DB.Order("created_at DESC")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Find(&list).Error
	return list, err
}

// AplicarDelta ajusta monto_ejecutado en una sola sentencia condicional:
// la guarda [0, monto_asignado] se evalúa en la base de datos, de modo
// que dos envíos concurrentes contra el mismo presupuesto nunca pueden
// exceder la asignación aunque cada uno valide por separado.
// Debe invocarse dentro de la transacción que escribe la orden.
func (r *Repository) AplicarDelta(tx *gorm.DB, id uint, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	res := tx.Model(&Presupuesto{}).
		Where("id = ?", id).
		Where("monto_ejecutado + ? >= 0", delta).
		Where("monto_ejecutado + ? <= monto_asignado", delta).
		UpdateColumn("monto_ejecutado", gorm.Expr("monto_ejecutado + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Cero filas: la guarda rechazó el ajuste o el presupuesto no existe.
	// Se relee dentro de la misma transacción para clasificar el rechazo.
	var p Presupuesto
	if err := tx.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dominio.Nuevof(dominio.CodigoNoEncontrado, "presupuesto %d no existe", id)
		}
		return err
	}
	resultado := p.MontoEjecutado.Add(delta)
	if resultado.GreaterThan(p.MontoAsignado) {
		return dominio.Nuevof(dominio.CodigoPresupuestoExcedido,
			"el ajuste de %s excede el saldo disponible de %s", delta, p.SaldoDisponible())
	}
	return dominio.Nuevof(dominio.CodigoSaldoNegativo,
		"el ajuste de %s dejaría el ejecutado en %s", delta, resultado)
}

// ActualizarEstado cambia el estado de ciclo de vida.
func (r *Repository) ActualizarEstado(id uint, estado EstadoPresupuesto) error {
	res := r.DB.Model(&Presupuesto{}).Where("id = ?", id).Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.Nuevof(dominio.CodigoNoEncontrado, "presupuesto %d no existe", id)
	}
	return nil
}

// RecalcularAsignacion persiste una nueva base, porcentaje y monto
// asignado, condicionado a que el ejecutado actual siga cabiendo.
// La condición viaja en el WHERE para no perder contra una orden
// concurrente que consuma saldo entre la validación y la escritura.
func (r *Repository) RecalcularAsignacion(id uint, base, porcentaje, asignado decimal.Decimal) error {
	res := r.DB.Model(&Presupuesto{}).
		Where("id = ?", id).
		Where("monto_ejecutado <= ?", asignado).
		Updates(map[string]interface{}{
			"base_comisiones":      base,
			"porcentaje_inversion": porcentaje,
			"monto_asignado":       asignado,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var p Presupuesto
	if err := r.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dominio.Nuevof(dominio.CodigoNoEncontrado, "presupuesto %d no existe", id)
		}
		return err
	}
	return dominio.Nuevof(dominio.CodigoAsignacionInferiorEjecutado,
		"la nueva asignación %s es inferior al ejecutado %s; anule o reduzca órdenes primero",
		asignado, p.MontoEjecutado)
}

// Delete elimina un presupuesto (soft delete). Con ejecución pendiente
// se rechaza: el soft delete lo sacaría del alcance de AplicarDelta y
// sus órdenes no anuladas ya no podrían liberar lo consumido.
func (r *Repository) Delete(id uint) error {
	p, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if p.MontoEjecutado.IsPositive() {
		return dominio.Nuevof(dominio.CodigoPresupuestoEnUso,
			"el presupuesto %d tiene %s ejecutado; anule sus órdenes antes de eliminarlo",
			id, p.MontoEjecutado)
	}
	return r.DB.Delete(&Presupuesto{}, id).Error
}
