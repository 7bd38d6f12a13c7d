// Package autorizacion decide qué módulos y acciones puede ejercer una
// sesión. El perfil viaja siempre como parámetro explícito; no hay
// estado ambiente de sesión.
package autorizacion

import (
	"context"
	"sync"
)

// Accion clasifica la operación solicitada sobre un recurso.
type Accion string

const (
	AccionLeer     Accion = "leer"
	AccionEscribir Accion = "escribir"
)

// Módulos base accesibles para cualquier sesión autenticada,
// independiente del conjunto autorizado del perfil.
var modulosBase = map[string]struct{}{
	"home":     {},
	"help":     {},
	"settings": {},
}

// Perfil es el sujeto de autorización: lo que la sesión ya autenticada
// aporta. ClienteID solo aplica al rol CLIENTE.
type Perfil struct {
	UsuarioID uint
	Rol       Rol
	Modulos   map[string]struct{}
	ClienteID *uint
}

// NuevoPerfil construye un Perfil a partir de la lista plana de módulos.
func NuevoPerfil(usuarioID uint, rol Rol, modulos []string, clienteID *uint) *Perfil {
	set := make(map[string]struct{}, len(modulos))
	for _, m := range modulos {
		set[m] = struct{}{}
	}
	return &Perfil{UsuarioID: usuarioID, Rol: rol, Modulos: set, ClienteID: clienteID}
}

// TieneModulo reporta si el módulo está en el conjunto autorizado.
func (p *Perfil) TieneModulo(modulo string) bool {
	_, ok := p.Modulos[modulo]
	return ok
}

// RecursoDeCliente lo implementa todo recurso que pertenece a un
// cliente; el gate lo usa para el alcance del rol CLIENTE.
type RecursoDeCliente interface {
	ClientePropietario() uint
}

// ClienteRef adapta un ID de cliente suelto (por ejemplo de la ruta)
// como RecursoDeCliente.
type ClienteRef uint

// ClientePropietario implementa RecursoDeCliente.
func (c ClienteRef) ClientePropietario() uint { return uint(c) }

// Gate evalúa acceso a módulos y acciones. La única pieza de estado es
// la ventana de arranque: mientras ningún perfil se haya cargado, un
// perfil nil se permite para el aprovisionamiento inicial del admin.
// CerrarArranque la cierra de forma permanente.
type Gate struct {
	mu              sync.RWMutex
	arranqueAbierto bool
}

// NewGate crea un Gate con la ventana de arranque abierta o cerrada.
func NewGate(modoArranque bool) *Gate {
	return &Gate{arranqueAbierto: modoArranque}
}

// CerrarArranque cierra la ventana de arranque. No se reabre.
func (g *Gate) CerrarArranque() {
	g.mu.Lock()
	g.arranqueAbierto = false
	g.mu.Unlock()
}

// ArranqueAbierto reporta si la ventana de arranque sigue abierta.
func (g *Gate) ArranqueAbierto() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.arranqueAbierto
}

// PuedeAcceder decide si el perfil puede entrar al módulo. ADMIN entra
// a todo; los módulos base están siempre permitidos; el resto depende
// del conjunto autorizado del perfil.
func (g *Gate) PuedeAcceder(p *Perfil, modulo string) bool {
	if p == nil {
		return g.ArranqueAbierto()
	}
	if _, base := modulosBase[modulo]; base {
		return true
	}
	switch p.Rol {
	case RolAdmin:
		return true
	case RolAnalista, RolConsulta, RolCliente:
		return p.TieneModulo(modulo)
	}
	return false
}

// PuedeEjecutar decide si el perfil puede realizar la acción sobre el
// recurso. El rol CLIENTE queda confinado a recursos de su propio
// cliente aunque el módulo esté nominalmente autorizado; CONSULTA es
// de solo lectura. La negación no explica qué regla falló.
func (g *Gate) PuedeEjecutar(p *Perfil, accion Accion, recurso RecursoDeCliente) bool {
	if p == nil {
		return g.ArranqueAbierto()
	}
	switch p.Rol {
	case RolAdmin:
		return true
	case RolAnalista:
		return true
	case RolConsulta:
		return accion == AccionLeer
	case RolCliente:
		if p.ClienteID == nil || recurso == nil {
			return false
		}
		return recurso.ClientePropietario() == *p.ClienteID
	}
	return false
}

type ctxKey string

const perfilKey ctxKey = "perfilAutorizacion"

// ConPerfil guarda el perfil en el contexto de la petición.
func ConPerfil(ctx context.Context, p *Perfil) context.Context {
	return context.WithValue(ctx, perfilKey, p)
}

// PerfilDeContexto recupera el perfil guardado por el middleware de
// autenticación; nil si la petición no trae perfil.
func PerfilDeContexto(ctx context.Context) *Perfil {
	p, _ := ctx.Value(perfilKey).(*Perfil)
	return p
}
