package auth

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/usuario"
	"github.com/SegurosAndinos/api-corretaje/internal/utils"
)

// LoginHandler emite un JWT para credenciales válidas.
func LoginHandler(db *gorm.DB) http.HandlerFunc {
	repo := usuario.NewRepository(db)
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
			Clave string `json:"clave"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "payload inválido", http.StatusBadRequest)
			return
		}

		u, err := repo.FindByEmail(req.Email)
		if err != nil {
			http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
			return
		}
		if !utils.VerificarClave(u.Clave, req.Clave) {
			http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
			return
		}

		token, err := GenerarToken(u.ID, u.Rol, u.ClienteID)
		if err != nil {
			http.Error(w, "error al generar token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token":            token,
			"debeCambiarClave": u.DebeCambiarClave,
		})
	}
}

// CambiarClaveHandler actualiza la clave del usuario autenticado.
func CambiarClaveHandler(db *gorm.DB) http.HandlerFunc {
	repo := usuario.NewRepository(db)
	return func(w http.ResponseWriter, r *http.Request) {
		usuarioID, ok := r.Context().Value(CtxUsuarioID).(uint)
		if !ok {
			http.Error(w, "No autenticado", http.StatusUnauthorized)
			return
		}

		var req struct {
			ClaveActual string `json:"claveActual"`
			ClaveNueva  string `json:"claveNueva"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "payload inválido", http.StatusBadRequest)
			return
		}
		if len(req.ClaveNueva) < 8 {
			http.Error(w, "la clave nueva debe tener al menos 8 caracteres", http.StatusBadRequest)
			return
		}

		u, err := repo.FindByID(usuarioID)
		if err != nil {
			http.Error(w, "Usuario no encontrado", http.StatusNotFound)
			return
		}
		if !utils.VerificarClave(u.Clave, req.ClaveActual) {
			http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
			return
		}

		hash, err := utils.HashClave(req.ClaveNueva)
		if err != nil {
			http.Error(w, "Error al procesar la clave", http.StatusInternalServerError)
			return
		}
		if err := repo.ActualizarClave(usuarioID, hash, false); err != nil {
			http.Error(w, "Error al actualizar la clave", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
