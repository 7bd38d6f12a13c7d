package resumen_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SegurosAndinos/api-corretaje/internal/cliente"
	"github.com/SegurosAndinos/api-corretaje/internal/comision"
	"github.com/SegurosAndinos/api-corretaje/internal/ordenservicio"
	"github.com/SegurosAndinos/api-corretaje/internal/presupuesto"
	"github.com/SegurosAndinos/api-corretaje/internal/resumen"
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
		&cliente.Cliente{},
		&comision.Comision{},
		&presupuesto.Presupuesto{},
		&ordenservicio.OrdenServicio{},
	))
	return db
}

func TestResumenClientes(t *testing.T) {
	db := newTestDB(t)

	c := cliente.Cliente{Nombre: "Transportes La Sabana", NIT: "900123456"}
	require.NoError(t, db.Create(&c).Error)

	for _, valor := range []string{"400000", "600000"} {
		require.NoError(t, db.Create(&comision.Comision{
			ClienteID:          c.ID,
			ARL:                "Sura",
			Fecha:              time.Now(),
			ValorPrima:         d("10000000"),
			PorcentajeComision: d("0.05"),
			ValorComision:      d(valor),
		}).Error)
	}

	base := d("1000000")
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           c.ID,
		BaseComisiones:      &base,
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)
	require.NoError(t, m.Repo.AplicarDelta(db, p.ID, d("150000")))

	rollups, err := resumen.NewRepository(db).ResumenClientes()
	require.NoError(t, err)
	require.Len(t, rollups, 1)

	r := rollups[0]
	assert.Equal(t, c.ID, r.ClienteID)
	assert.True(t, r.TotalComisiones.Equal(d("1000000")), "comisiones: %s", r.TotalComisiones)
	assert.EqualValues(t, 1, r.NumPresupuestos)
	assert.True(t, r.TotalAsignado.Equal(d("600000")))
	assert.True(t, r.TotalEjecutado.Equal(d("150000")))
}

func TestEjecucionPresupuesto(t *testing.T) {
	db := newTestDB(t)

	base := d("1000000")
	m := presupuesto.NewManager(db)
	p, err := m.Crear(presupuesto.CreatePresupuestoDTO{
		ClienteID:           1,
		BaseComisiones:      &base,
		PorcentajeInversion: d("0.60"),
	})
	require.NoError(t, err)

	v := ordenservicio.NewValidador(db)
	o, err := v.Crear(ordenservicio.CreateOrdenDTO{
		PresupuestoID: p.ID,
		Cantidad:      d("3"),
		CostoUnitario: d("50000"),
	})
	require.NoError(t, err)

	anulable, err := v.Crear(ordenservicio.CreateOrdenDTO{
		PresupuestoID: p.ID,
		Cantidad:      d("1"),
		CostoUnitario: d("30000"),
	})
	require.NoError(t, err)
	_, err = v.Anular(anulable.ID)
	require.NoError(t, err)

	dto, err := resumen.NewRepository(db).EjecucionPresupuesto(p.ID)
	require.NoError(t, err)

	assert.Equal(t, o.PresupuestoID, dto.PresupuestoID)
	assert.True(t, dto.MontoEjecutado.Equal(d("150000")))
	assert.True(t, dto.SaldoDisponible.Equal(d("450000")))
	assert.True(t, dto.PorcentajeEjecucion.Equal(d("25")), "porcentaje: %s", dto.PorcentajeEjecucion)
	assert.EqualValues(t, 1, dto.OrdenesActivas)
	assert.EqualValues(t, 1, dto.OrdenesAnuladas)
}
