package comision_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/comision"
)

func newTestHandler(t *testing.T) *comision.Handler {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&comision.Comision{}))
	return comision.NewHandler(db, autorizacion.NewGate(true))
}

func postComision(t *testing.T, h *comision.Handler, cuerpo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/comisiones", strings.NewReader(cuerpo))
	h.Crear(rec, req)
	return rec
}

func TestCrear_RechazaValoresNegativos(t *testing.T) {
	casos := map[string]string{
		"prima":      `{"clienteId":1,"fecha":"2026-01-15T00:00:00Z","valorPrima":"-100","porcentajeComision":"0.1"}`,
		"porcentaje": `{"clienteId":1,"fecha":"2026-01-15T00:00:00Z","valorPrima":"100","porcentajeComision":"-0.1"}`,
		"valor":      `{"clienteId":1,"fecha":"2026-01-15T00:00:00Z","valorPrima":"100","porcentajeComision":"0.1","valorComision":"-10"}`,
	}
	for nombre, cuerpo := range casos {
		t.Run(nombre, func(t *testing.T) {
			rec := postComision(t, newTestHandler(t), cuerpo)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCrear_DerivaValorCuandoSeOmite(t *testing.T) {
	h := newTestHandler(t)

	rec := postComision(t, h,
		`{"clienteId":1,"arl":"Sura","fecha":"2026-01-15T00:00:00Z","valorPrima":"1000000","porcentajeComision":"0.12"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valorComision":"120000"`)
}
