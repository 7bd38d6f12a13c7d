package calculo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SegurosAndinos/api-corretaje/internal/calculo"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestMontoAsignado_DerivacionBasica(t *testing.T) {
	// base 1.000.000 × 60% = 600.000
	monto, err := calculo.MontoAsignado(d("1000000"), d("0.60"))
	require.NoError(t, err)
	assert.True(t, monto.Equal(d("600000")), "se esperaba 600000, se obtuvo %s", monto)
}

func TestMontoAsignado_RedondeoAlCentavo(t *testing.T) {
	// 100.005 × 0.333 = 33301.665 → la mitad sube: 33301.67
	monto, err := calculo.MontoAsignado(d("100005"), d("0.333"))
	require.NoError(t, err)
	assert.True(t, monto.Equal(d("33301.67")), "se esperaba 33301.67, se obtuvo %s", monto)
}

func TestMontoAsignado_EsIdempotente(t *testing.T) {
	a, err := calculo.MontoAsignado(d("987654.32"), d("0.37"))
	require.NoError(t, err)
	b, err := calculo.MontoAsignado(d("987654.32"), d("0.37"))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestMontoAsignado_FraccionFueraDeRango(t *testing.T) {
	casos := []string{"-0.01", "1.01", "2", "-1"}
	for _, pct := range casos {
		_, err := calculo.MontoAsignado(d("1000"), d(pct))
		assert.True(t, dominio.Es(err, dominio.CodigoFraccionInvalida),
			"porcentaje %s debía rechazarse", pct)
	}
}

func TestMontoAsignado_FraccionEnLosBordes(t *testing.T) {
	cero, err := calculo.MontoAsignado(d("1000"), d("0"))
	require.NoError(t, err)
	assert.True(t, cero.IsZero())

	todo, err := calculo.MontoAsignado(d("1000"), d("1"))
	require.NoError(t, err)
	assert.True(t, todo.Equal(d("1000")))
}

func TestMontoAsignado_BaseNegativa(t *testing.T) {
	_, err := calculo.MontoAsignado(d("-1"), d("0.5"))
	assert.True(t, dominio.Es(err, dominio.CodigoFraccionInvalida))
}

func TestTotalOrden(t *testing.T) {
	total, err := calculo.TotalOrden(d("10"), d("50000"))
	require.NoError(t, err)
	assert.True(t, total.Equal(d("500000")))
}

func TestTotalOrden_OperandosNegativos(t *testing.T) {
	_, err := calculo.TotalOrden(d("-1"), d("100"))
	assert.True(t, dominio.Es(err, dominio.CodigoCantidadOCostoInvalido))

	_, err = calculo.TotalOrden(d("1"), d("-100"))
	assert.True(t, dominio.Es(err, dominio.CodigoCantidadOCostoInvalido))
}

func TestSaldoDisponible(t *testing.T) {
	saldo := calculo.SaldoDisponible(d("600000"), d("500000"))
	assert.True(t, saldo.Equal(d("100000")))
}
