package auth

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/usuario"
)

type ctxKey string

// CtxUsuarioID expone el ID del usuario autenticado en el contexto.
const CtxUsuarioID ctxKey = "usuarioID"

// MiddlewareAutenticacion valida el Bearer token, relee al usuario y
// deja su perfil de autorización en el contexto. El primer perfil
// cargado con éxito cierra la ventana de arranque del gate.
func MiddlewareAutenticacion(db *gorm.DB, gate *autorizacion.Gate) func(http.Handler) http.Handler {
	repo := usuario.NewRepository(db)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				// Sin token solo se pasa mientras el arranque siga
				// abierto; después es un 401 firme.
				if gate.ArranqueAbierto() {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "Token ausente", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")
			claims, err := ValidarToken(raw)
			if err != nil {
				http.Error(w, "Token inválido", http.StatusUnauthorized)
				return
			}

			// El perfil se relee de la base: un cambio de rol o de
			// módulos aplica sin esperar a que expire el token.
			u, err := repo.FindByID(claims.UsuarioID)
			if err != nil {
				http.Error(w, "Usuario no encontrado", http.StatusUnauthorized)
				return
			}
			gate.CerrarArranque()

			ctx := context.WithValue(r.Context(), CtxUsuarioID, u.ID)
			ctx = autorizacion.ConPerfil(ctx, u.Perfil())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
