package autorizacion

import (
	"net/http"
)

// RequiereModulo protege una ruta exigiendo acceso al módulo dado.
// La negación es un 403 genérico, sin detalle de la regla.
func RequiereModulo(g *Gate, modulo string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			perfil := PerfilDeContexto(r.Context())
			if !g.PuedeAcceder(perfil, modulo) {
				http.Error(w, "Acceso denegado", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequiereAdmin protege una ruta exigiendo rol ADMIN. A diferencia del
// acceso por módulo, la ventana de arranque también aplica aquí: sin
// perfiles cargados aún, el aprovisionamiento inicial debe poder pasar.
func RequiereAdmin(g *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			perfil := PerfilDeContexto(r.Context())
			if perfil == nil {
				if g.ArranqueAbierto() {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "Acceso denegado", http.StatusForbidden)
				return
			}
			if !perfil.Rol.EsAdmin() {
				http.Error(w, "Acceso denegado", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
