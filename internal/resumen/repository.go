// Package resumen arma los rollups de solo lectura que consumen el
// tablero y el portal de clientes. No muta nada; todo cálculo con
// efecto sobre saldos vive en presupuesto y ordenservicio.
package resumen

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/calculo"
	"github.com/SegurosAndinos/api-corretaje/internal/cliente"
	"github.com/SegurosAndinos/api-corretaje/internal/comision"
	"github.com/SegurosAndinos/api-corretaje/internal/ordenservicio"
	"github.com/SegurosAndinos/api-corretaje/internal/presupuesto"
)

// Repository ejecuta las consultas de agregación.
type Repository struct {
	DB *gorm.DB
}

// NewRepository crea un nuevo repositorio.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ResumenClientes retorna el rollup de todos los clientes.
func (r *Repository) ResumenClientes() ([]ResumenClienteDTO, error) {
	var clientes []cliente.Cliente
	if err := r.DB.Order("nombre").Find(&clientes).Error; err != nil {
		return nil, err
	}

	resumenes := make([]ResumenClienteDTO, 0, len(clientes))
	for _, c := range clientes {
		dto, err := r.resumenDe(c)
		if err != nil {
			return nil, err
		}
		resumenes = append(resumenes, *dto)
	}
	return resumenes, nil
}

// ResumenCliente retorna el rollup de un solo cliente.
func (r *Repository) ResumenCliente(clienteID uint) (*ResumenClienteDTO, error) {
	var c cliente.Cliente
	if err := r.DB.First(&c, clienteID).Error; err != nil {
		return nil, err
	}
	return r.resumenDe(c)
}

func (r *Repository) resumenDe(c cliente.Cliente) (*ResumenClienteDTO, error) {
	dto := &ResumenClienteDTO{ClienteID: c.ID, Nombre: c.Nombre}

	if err := r.DB.Model(&comision.Comision{}).
		Where("cliente_id = ?", c.ID).
		Select("COALESCE(SUM(valor_comision), 0)").
		Scan(&dto.TotalComisiones).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&presupuesto.Presupuesto{}).
		Where("cliente_id = ?", c.ID).
		Count(&dto.NumPresupuestos).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&presupuesto.Presupuesto{}).
		Where("cliente_id = ?", c.ID).
		Select("COALESCE(SUM(monto_asignado), 0)").
		Scan(&dto.TotalAsignado).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&presupuesto.Presupuesto{}).
		Where("cliente_id = ?", c.ID).
		Select("COALESCE(SUM(monto_ejecutado), 0)").
		Scan(&dto.TotalEjecutado).Error; err != nil {
		return nil, err
	}
	return dto, nil
}

// EjecucionPresupuesto retorna el rollup de ejecución de un presupuesto.
func (r *Repository) EjecucionPresupuesto(id uint) (*EjecucionPresupuestoDTO, error) {
	var p presupuesto.Presupuesto
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}

	dto := &EjecucionPresupuestoDTO{
		PresupuestoID:   p.ID,
		ClienteID:       p.ClienteID,
		Codigo:          p.Codigo,
		MontoAsignado:   p.MontoAsignado,
		MontoEjecutado:  p.MontoEjecutado,
		SaldoDisponible: calculo.SaldoDisponible(p.MontoAsignado, p.MontoEjecutado),
	}
	if p.MontoAsignado.IsPositive() {
		cien := decimal.NewFromInt(100)
		dto.PorcentajeEjecucion = p.MontoEjecutado.Div(p.MontoAsignado).Mul(cien).Round(2)
	}

	if err := r.DB.Model(&ordenservicio.OrdenServicio{}).
		Where("presupuesto_id = ? AND estado <> ?", p.ID, ordenservicio.EstadoAnulada).
		Count(&dto.OrdenesActivas).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&ordenservicio.OrdenServicio{}).
		Where("presupuesto_id = ? AND estado = ?", p.ID, ordenservicio.EstadoAnulada).
		Count(&dto.OrdenesAnuladas).Error; err != nil {
		return nil, err
	}
	return dto, nil
}
