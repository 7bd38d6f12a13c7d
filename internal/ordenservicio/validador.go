package ordenservicio

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/calculo"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
	"github.com/SegurosAndinos/api-corretaje/internal/presupuesto"
)

// Validador decide si una creación o edición de orden es admisible
// contra su presupuesto y conduce la máquina de estados. Toda mutación
// corre en una transacción: el ajuste de saldo (AplicarDelta) y la
// escritura de la orden se confirman juntos o no se confirma nada.
type Validador struct {
	DB           *gorm.DB
	Presupuestos *presupuesto.Repository
}

// NewValidador crea un nuevo Validador.
func NewValidador(db *gorm.DB) *Validador {
	return &Validador{
		DB:           db,
		Presupuestos: presupuesto.NewRepository(db),
	}
}

func (v *Validador) cargarOrden(tx *gorm.DB, id uint) (*OrdenServicio, error) {
	var o OrdenServicio
	if err := tx.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dominio.Nuevof(dominio.CodigoNoEncontrado, "orden de servicio %d no existe", id)
		}
		return nil, err
	}
	return &o, nil
}

// Crear valida y persiste una orden nueva. El delta contra el
// presupuesto es el total completo: una orden nueva no tiene
// contribución previa.
func (v *Validador) Crear(dto CreateOrdenDTO) (*OrdenServicio, error) {
	total, err := calculo.TotalOrden(dto.Cantidad, dto.CostoUnitario)
	if err != nil {
		return nil, err
	}

	var creada *OrdenServicio
	err = v.DB.Transaction(func(tx *gorm.DB) error {
		var p presupuesto.Presupuesto
		if err := tx.First(&p, dto.PresupuestoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dominio.Nuevof(dominio.CodigoNoEncontrado,
					"presupuesto %d no existe", dto.PresupuestoID)
			}
			return err
		}

		// Primero el ajuste condicional de saldo; si la guarda lo
		// rechaza, la transacción completa se revierte y la orden
		// nunca llega a existir.
		if err := v.Presupuestos.AplicarDelta(tx, p.ID, total); err != nil {
			return err
		}

		aliadoID := p.AliadoID
		if dto.AliadoID != nil {
			aliadoID = dto.AliadoID
		}
		o := &OrdenServicio{
			Codigo:        uuid.New(),
			PresupuestoID: p.ID,
			ClienteID:     p.ClienteID,
			AliadoID:      aliadoID,
			Descripcion:   dto.Descripcion,
			Cantidad:      dto.Cantidad,
			CostoUnitario: dto.CostoUnitario,
			Total:         total,
			Estado:        EstadoPendiente,
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		creada = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return creada, nil
}

// Actualizar revalida una orden editada. El delta es la contribución
// nueva menos la previa; una orden anulada no se edita y una facturada
// no admite cambios financieros.
func (v *Validador) Actualizar(id uint, dto UpdateOrdenDTO) (*OrdenServicio, error) {
	var actualizada *OrdenServicio
	err := v.DB.Transaction(func(tx *gorm.DB) error {
		o, err := v.cargarOrden(tx, id)
		if err != nil {
			return err
		}
		if o.Estado == EstadoAnulada {
			return dominio.Nuevo(dominio.CodigoTransicionInvalida,
				"una orden anulada no admite ediciones")
		}

		cantidad := o.Cantidad
		if dto.Cantidad != nil {
			cantidad = *dto.Cantidad
		}
		costo := o.CostoUnitario
		if dto.CostoUnitario != nil {
			costo = *dto.CostoUnitario
		}
		cambioFinanciero := !cantidad.Equal(o.Cantidad) || !costo.Equal(o.CostoUnitario)
		cambioPresupuesto := dto.PresupuestoID != nil && *dto.PresupuestoID != o.PresupuestoID
		if o.Estado == EstadoFacturada && (cambioFinanciero || cambioPresupuesto) {
			return dominio.Nuevo(dominio.CodigoOrdenFacturada,
				"una orden facturada no admite cambios de cantidad, costo o presupuesto")
		}

		total, err := calculo.TotalOrden(cantidad, costo)
		if err != nil {
			return err
		}

		previa := o.Contribucion()
		if cambioPresupuesto {
			// Reubicación entre sobres: liberar primero el presupuesto
			// anterior y consumir después en el nuevo, ambos pasos
			// dentro de esta transacción.
			if err := v.Presupuestos.AplicarDelta(tx, o.PresupuestoID, previa.Neg()); err != nil {
				return err
			}
			var destino presupuesto.Presupuesto
			if err := tx.First(&destino, *dto.PresupuestoID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return dominio.Nuevof(dominio.CodigoNoEncontrado,
						"presupuesto %d no existe", *dto.PresupuestoID)
				}
				return err
			}
			if err := v.Presupuestos.AplicarDelta(tx, destino.ID, total); err != nil {
				return err
			}
			o.PresupuestoID = destino.ID
			o.ClienteID = destino.ClienteID
		} else {
			delta := total.Sub(previa)
			if err := v.Presupuestos.AplicarDelta(tx, o.PresupuestoID, delta); err != nil {
				return err
			}
		}

		o.Cantidad = cantidad
		o.CostoUnitario = costo
		o.Total = total
		if dto.AliadoID != nil {
			o.AliadoID = dto.AliadoID
		}
		if dto.Descripcion != nil {
			o.Descripcion = *dto.Descripcion
		}
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		actualizada = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return actualizada, nil
}

// MarcarEjecutada transiciona PENDIENTE → EJECUTADA. No mueve saldo:
// la contribución de la orden no cambia.
func (v *Validador) MarcarEjecutada(id uint) (*OrdenServicio, error) {
	return v.transicionar(id, EstadoEjecutada, func(o *OrdenServicio) error { return nil })
}

// RegistrarFactura transiciona EJECUTADA → FACTURADA dejando número de
// factura y fecha de radicación.
func (v *Validador) RegistrarFactura(id uint, dto RegistrarFacturaDTO) (*OrdenServicio, error) {
	if dto.NumeroFactura == "" {
		return nil, dominio.Nuevo(dominio.CodigoTransicionInvalida,
			"el número de factura es obligatorio para facturar")
	}
	radicacion := time.Now()
	if dto.FechaRadicacion != "" {
		t, err := time.Parse(time.RFC3339, dto.FechaRadicacion)
		if err != nil {
			return nil, dominio.Nuevo(dominio.CodigoTransicionInvalida,
				"fecha de radicación inválida, se espera RFC3339")
		}
		radicacion = t
	}
	return v.transicionar(id, EstadoFacturada, func(o *OrdenServicio) error {
		o.NumeroFactura = &dto.NumeroFactura
		o.FechaRadicacion = &radicacion
		return nil
	})
}

// Anular transiciona a ANULADA y devuelve al presupuesto el total que
// la orden venía consumiendo. ANULADA es terminal.
func (v *Validador) Anular(id uint) (*OrdenServicio, error) {
	var anulada *OrdenServicio
	err := v.DB.Transaction(func(tx *gorm.DB) error {
		o, err := v.cargarOrden(tx, id)
		if err != nil {
			return err
		}
		if !o.Estado.PuedeTransicionar(EstadoAnulada) {
			return dominio.Nuevof(dominio.CodigoTransicionInvalida,
				"transición %s → %s no permitida", o.Estado, EstadoAnulada)
		}

		liberado := o.Contribucion()
		if err := v.Presupuestos.AplicarDelta(tx, o.PresupuestoID, liberado.Neg()); err != nil {
			return err
		}
		o.Estado = EstadoAnulada
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		anulada = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return anulada, nil
}

// transicionar aplica una transición sin efecto sobre el saldo.
func (v *Validador) transicionar(id uint, destino EstadoOrden, aplicar func(*OrdenServicio) error) (*OrdenServicio, error) {
	var resultado *OrdenServicio
	err := v.DB.Transaction(func(tx *gorm.DB) error {
		o, err := v.cargarOrden(tx, id)
		if err != nil {
			return err
		}
		if !o.Estado.PuedeTransicionar(destino) {
			return dominio.Nuevof(dominio.CodigoTransicionInvalida,
				"transición %s → %s no permitida", o.Estado, destino)
		}
		o.Estado = destino
		if err := aplicar(o); err != nil {
			return err
		}
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		resultado = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}
