package autorizacion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
)

type recursoPrueba struct {
	clienteID uint
}

func (r recursoPrueba) ClientePropietario() uint { return r.clienteID }

func uintPtr(v uint) *uint { return &v }

func perfilCon(rol autorizacion.Rol, modulos []string, clienteID *uint) *autorizacion.Perfil {
	return autorizacion.NuevoPerfil(1, rol, modulos, clienteID)
}

func TestPuedeAcceder_AdminEntraATodo(t *testing.T) {
	g := autorizacion.NewGate(false)
	admin := perfilCon(autorizacion.RolAdmin, nil, nil)

	for _, modulo := range []string{"presupuestos", "ordenes-servicio", "usuarios", "lo-que-sea"} {
		assert.True(t, g.PuedeAcceder(admin, modulo), "modulo %s", modulo)
	}
}

func TestPuedeAcceder_ModulosBaseSiemprePermitidos(t *testing.T) {
	g := autorizacion.NewGate(false)
	p := perfilCon(autorizacion.RolConsulta, nil, nil)

	for _, modulo := range []string{"home", "help", "settings"} {
		assert.True(t, g.PuedeAcceder(p, modulo), "modulo base %s", modulo)
	}
	assert.False(t, g.PuedeAcceder(p, "presupuestos"))
}

func TestPuedeAcceder_PorMembresia(t *testing.T) {
	g := autorizacion.NewGate(false)
	p := perfilCon(autorizacion.RolAnalista, []string{"presupuestos", "clientes"}, nil)

	assert.True(t, g.PuedeAcceder(p, "presupuestos"))
	assert.True(t, g.PuedeAcceder(p, "clientes"))
	assert.False(t, g.PuedeAcceder(p, "usuarios"))
}

func TestPuedeAcceder_VentanaDeArranque(t *testing.T) {
	g := autorizacion.NewGate(true)

	// Sin perfil cargado, el arranque abierto deja pasar
	assert.True(t, g.PuedeAcceder(nil, "usuarios"))

	// Cerrada la ventana, un perfil nil ya no pasa nunca
	g.CerrarArranque()
	assert.False(t, g.PuedeAcceder(nil, "usuarios"))
	assert.False(t, g.ArranqueAbierto())
}

func TestPuedeAcceder_SinArranqueNuncaPasaNil(t *testing.T) {
	g := autorizacion.NewGate(false)
	assert.False(t, g.PuedeAcceder(nil, "home"))
}

func TestPuedeEjecutar_ClienteConfinadoASuCliente(t *testing.T) {
	g := autorizacion.NewGate(false)
	p := perfilCon(autorizacion.RolCliente, []string{"presupuestos"}, uintPtr(7))

	assert.True(t, g.PuedeEjecutar(p, autorizacion.AccionLeer, recursoPrueba{clienteID: 7}))
	assert.True(t, g.PuedeEjecutar(p, autorizacion.AccionEscribir, recursoPrueba{clienteID: 7}))

	// Cruzar de cliente se niega siempre, sin importar módulos ni acción
	assert.False(t, g.PuedeEjecutar(p, autorizacion.AccionLeer, recursoPrueba{clienteID: 8}))
	assert.False(t, g.PuedeEjecutar(p, autorizacion.AccionEscribir, recursoPrueba{clienteID: 8}))
}

func TestPuedeEjecutar_ClienteSinReferenciaNoPasa(t *testing.T) {
	g := autorizacion.NewGate(false)
	p := perfilCon(autorizacion.RolCliente, []string{"presupuestos"}, nil)
	assert.False(t, g.PuedeEjecutar(p, autorizacion.AccionLeer, recursoPrueba{clienteID: 7}))
}

func TestPuedeEjecutar_ConsultaEsSoloLectura(t *testing.T) {
	g := autorizacion.NewGate(false)
	p := perfilCon(autorizacion.RolConsulta, []string{"presupuestos"}, nil)

	assert.True(t, g.PuedeEjecutar(p, autorizacion.AccionLeer, recursoPrueba{clienteID: 1}))
	assert.False(t, g.PuedeEjecutar(p, autorizacion.AccionEscribir, recursoPrueba{clienteID: 1}))
}

func TestPuedeEjecutar_AdminYAnalista(t *testing.T) {
	g := autorizacion.NewGate(false)
	admin := perfilCon(autorizacion.RolAdmin, nil, nil)
	analista := perfilCon(autorizacion.RolAnalista, nil, nil)

	assert.True(t, g.PuedeEjecutar(admin, autorizacion.AccionEscribir, recursoPrueba{clienteID: 3}))
	assert.True(t, g.PuedeEjecutar(analista, autorizacion.AccionEscribir, recursoPrueba{clienteID: 3}))
}

func TestParseRol(t *testing.T) {
	assert.Equal(t, autorizacion.RolAdmin, autorizacion.ParseRol("ADMIN"))
	assert.Equal(t, autorizacion.RolCliente, autorizacion.ParseRol("CLIENTE"))
	// Los desconocidos degradan al rol de menor privilegio
	assert.Equal(t, autorizacion.RolConsulta, autorizacion.ParseRol("SUPERUSUARIO"))
	assert.Equal(t, autorizacion.RolConsulta, autorizacion.ParseRol(""))
}
