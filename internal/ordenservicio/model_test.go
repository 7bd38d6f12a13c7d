package ordenservicio_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SegurosAndinos/api-corretaje/internal/ordenservicio"
)

func TestPuedeTransicionar(t *testing.T) {
	casos := []struct {
		desde     ordenservicio.EstadoOrden
		hacia     ordenservicio.EstadoOrden
		permitida bool
	}{
		{ordenservicio.EstadoPendiente, ordenservicio.EstadoEjecutada, true},
		{ordenservicio.EstadoPendiente, ordenservicio.EstadoAnulada, true},
		{ordenservicio.EstadoPendiente, ordenservicio.EstadoFacturada, false},
		{ordenservicio.EstadoEjecutada, ordenservicio.EstadoFacturada, true},
		{ordenservicio.EstadoEjecutada, ordenservicio.EstadoAnulada, true},
		{ordenservicio.EstadoEjecutada, ordenservicio.EstadoPendiente, false},
		{ordenservicio.EstadoFacturada, ordenservicio.EstadoAnulada, true},
		{ordenservicio.EstadoFacturada, ordenservicio.EstadoEjecutada, false},
		{ordenservicio.EstadoAnulada, ordenservicio.EstadoPendiente, false},
		{ordenservicio.EstadoAnulada, ordenservicio.EstadoEjecutada, false},
		{ordenservicio.EstadoAnulada, ordenservicio.EstadoFacturada, false},
		{ordenservicio.EstadoAnulada, ordenservicio.EstadoAnulada, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.permitida, c.desde.PuedeTransicionar(c.hacia),
			"%s → %s", c.desde, c.hacia)
	}
}

func TestContribucion(t *testing.T) {
	total := decimal.NewFromInt(500000)

	activa := ordenservicio.OrdenServicio{Total: total, Estado: ordenservicio.EstadoEjecutada}
	assert.True(t, activa.Contribucion().Equal(total))

	anulada := ordenservicio.OrdenServicio{Total: total, Estado: ordenservicio.EstadoAnulada}
	assert.True(t, anulada.Contribucion().IsZero())
}
