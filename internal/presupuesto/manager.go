package presupuesto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/calculo"
	"github.com/SegurosAndinos/api-corretaje/internal/comision"
)

// Manager es el dueño del ciclo de vida del presupuesto: crea sobres,
// recalcula asignaciones de forma explícita y delega toda mutación de
// consumo en Repository.AplicarDelta.
type Manager struct {
	Repo       *Repository
	Comisiones *comision.Repository
}

// NewManager crea un nuevo Manager.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		Repo:       NewRepository(db),
		Comisiones: comision.NewRepository(db),
	}
}

// Crear deriva el monto asignado vía calculo y persiste el presupuesto
// con ejecutado en cero y estado PENDIENTE. Cuando el DTO no trae base,
// se congela la suma de comisiones del cliente al momento de crear; las
// comisiones posteriores no amplían la asignación automáticamente, el
// camino para eso es RecalcularAsignacion.
func (m *Manager) Crear(dto CreatePresupuestoDTO) (*Presupuesto, error) {
	base := decimal.Zero
	if dto.BaseComisiones != nil && !dto.BaseComisiones.IsZero() {
		base = *dto.BaseComisiones
	} else {
		suma, err := m.Comisiones.SumarPorCliente(dto.ClienteID)
		if err != nil {
			return nil, err
		}
		base = suma
	}

	asignado, err := calculo.MontoAsignado(base, dto.PorcentajeInversion)
	if err != nil {
		return nil, err
	}

	p := &Presupuesto{
		Codigo:              uuid.New(),
		ClienteID:           dto.ClienteID,
		AliadoID:            dto.AliadoID,
		BaseComisiones:      base,
		PorcentajeInversion: dto.PorcentajeInversion,
		MontoAsignado:       asignado,
		MontoEjecutado:      decimal.Zero,
		Estado:              EstadoPendiente,
	}
	if err := m.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecalcularAsignacion re-deriva el monto asignado con una base o
// porcentaje nuevos. Falla con ASIGNACION_INFERIOR_EJECUTADO si la
// nueva asignación no cubre el monto ya ejecutado; jamás se trunca
// valor consumido.
func (m *Manager) RecalcularAsignacion(id uint, dto RecalcularAsignacionDTO) (*Presupuesto, error) {
	p, err := m.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	base := p.BaseComisiones
	if dto.BaseComisiones != nil {
		base = *dto.BaseComisiones
	}
	porcentaje := p.PorcentajeInversion
	if dto.PorcentajeInversion != nil {
		porcentaje = *dto.PorcentajeInversion
	}

	asignado, err := calculo.MontoAsignado(base, porcentaje)
	if err != nil {
		return nil, err
	}
	if err := m.Repo.RecalcularAsignacion(id, base, porcentaje, asignado); err != nil {
		return nil, err
	}
	return m.Repo.FindByID(id)
}
