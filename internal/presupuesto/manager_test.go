package presupuesto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SegurosAndinos/api-corretaje/internal/comision"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
	"github.com/SegurosAndinos/api-corretaje/internal/presupuesto"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&comision.Comision{},
		&presupuesto.Presupuesto{},
	))
	return db
}

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func TestCrear_DerivaAsignacion(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)

	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000000")),
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)

	assert.True(t, p.MontoAsignado.Equal(d("600000")), "asignado: %s", p.MontoAsignado)
	assert.True(t, p.MontoEjecutado.IsZero())
	assert.Equal(t, presupuesto.EstadoPendiente, p.Estado)
	assert.NotZero(t, p.Codigo)
}

func TestCrear_BaseDesdeComisionesDelCliente(t *testing.T) {
	db := newTestDB(t)
	repo := comision.NewRepository(db)
	for _, valor := range []string{"300000", "200000"} {
		require.NoError(t, repo.Create(&comision.Comision{
			ClienteID:          7,
			ARL:                "Positiva",
			Fecha:              time.Now(),
			ValorPrima:         d("1000000"),
			PorcentajeComision: d("0.06"),
			ValorComision:      d(valor),
		}))
	}

	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           7,
		PorcentajeInversion: d("0.50"),
	})
	require.NoError(t, err)

	assert.True(t, p.BaseComisiones.Equal(d("500000")), "base: %s", p.BaseComisiones)
	assert.True(t, p.MontoAsignado.Equal(d("250000")), "asignado: %s", p.MontoAsignado)
}

func TestCrear_PorcentajeInvalido(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)

	_, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000")),
		PorcentajeInversion: d("1.5"),
	})
	assert.True(t, dominio.Es(err, dominio.CodigoFraccionInvalida))
}

func TestAplicarDelta_RespetaElTecho(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000000")),
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)

	// Consumo dentro del techo
	require.NoError(t, m.Repo.AplicarDelta(db, p.ID, d("500000")))

	// El siguiente consumo excede 600.000 y debe rechazarse sin tocar nada
	err = m.Repo.AplicarDelta(db, p.ID, d("150000"))
	assert.True(t, dominio.Es(err, dominio.CodigoPresupuestoExcedido))

	releido, err := m.Repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.True(t, releido.MontoEjecutado.Equal(d("500000")), "ejecutado: %s", releido.MontoEjecutado)
}

func TestAplicarDelta_RespetaElPiso(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000")),
		PorcentajeInversion: d("1"),
	})
	require.NoError(t, err)

	err = m.Repo.AplicarDelta(db, p.ID, d("-1"))
	assert.True(t, dominio.Es(err, dominio.CodigoSaldoNegativo))
}

func TestAplicarDelta_PresupuestoInexistente(t *testing.T) {
	db := newTestDB(t)
	repo := presupuesto.NewRepository(db)

	err := repo.AplicarDelta(db, 9999, d("10"))
	assert.True(t, dominio.Es(err, dominio.CodigoNoEncontrado))
}

func TestAplicarDelta_DeltaCeroEsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := presupuesto.NewRepository(db)
	// Delta cero no toca la base: ni siquiera exige que el presupuesto exista.
	require.NoError(t, repo.AplicarDelta(db, 12345, decimal.Zero))
}

func TestRecalcularAsignacion_RechazaAsignacionInferiorAlEjecutado(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000000")),
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)
	require.NoError(t, m.Repo.AplicarDelta(db, p.ID, d("500000")))

	// Bajar a 40% daría 400.000 < 500.000 ejecutado
	_, err = m.RecalcularAsignacion(p.ID, presupuesto.RecalcularAsignacionDTO{
		PorcentajeInversion: ptr(d("0.40")),
	})
	assert.True(t, dominio.Es(err, dominio.CodigoAsignacionInferiorEjecutado))

	// Nada cambió
	releido, err := m.Repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.True(t, releido.MontoAsignado.Equal(d("600000")))
	assert.True(t, releido.PorcentajeInversion.Equal(d("0.60")))
}

func TestRecalcularAsignacion_AmpliaLaAsignacion(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000000")),
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)
	require.NoError(t, m.Repo.AplicarDelta(db, p.ID, d("500000")))

	actualizado, err := m.RecalcularAsignacion(p.ID, presupuesto.RecalcularAsignacionDTO{
		BaseComisiones: ptr(d("2000000")),
	})
	require.NoError(t, err)
	assert.True(t, actualizado.MontoAsignado.Equal(d("1200000")), "asignado: %s", actualizado.MontoAsignado)
	assert.True(t, actualizado.MontoEjecutado.Equal(d("500000")))
}

func TestActualizarEstado(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("1000")),
		PorcentajeInversion: d("0.5"),
	})
	require.NoError(t, err)

	require.NoError(t, m.Repo.ActualizarEstado(p.ID, presupuesto.EstadoActivo))
	releido, err := m.Repo.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, presupuesto.EstadoActivo, releido.Estado)

	err = m.Repo.ActualizarEstado(9999, presupuesto.EstadoActivo)
	assert.True(t, dominio.Es(err, dominio.CodigoNoEncontrado))
}

func TestFindByCliente_FiltraPorEstado(t *testing.T) {
	db := newTestDB(t)
	m := presupuesto.NewManager(db)

	p1, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("500000")),
		PorcentajeInversion: d("0.50"),
	})
	require.NoError(t, err)
	p2, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      ptr(d("300000")),
		PorcentajeInversion: d("0.50"),
	})
	require.NoError(t, err)
	require.NoError(t, m.Repo.ActualizarEstado(p2.ID, presupuesto.EstadoActivo))

	list, err := m.Repo.FindByCliente(1, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = m.Repo.FindByCliente(1, presupuesto.EstadoActivo)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p2.ID, list[0].ID)

	list, err = m.Repo.FindByCliente(1, presupuesto.EstadoPendiente)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p1.ID, list[0].ID)
}
