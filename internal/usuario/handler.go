package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/utils"
)

// Handler gestiona las rutas de administración de usuarios.
type Handler struct {
	Repo *Repository
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

type crearUsuarioRequest struct {
	Nombre             string   `json:"nombre"`
	Email              string   `json:"email"`
	Clave              string   `json:"clave"`
	Rol                string   `json:"rol"`
	ModulosAutorizados []string `json:"modulosAutorizados"`
	ClienteID          *uint    `json:"clienteId,omitempty"`
}

// Crear maneja POST /usuarios. Sin clave en el payload se genera una
// temporal y el usuario queda obligado a cambiarla en el primer acceso.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var req crearUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if req.Nombre == "" || req.Email == "" {
		http.Error(w, "nombre y email son obligatorios", http.StatusBadRequest)
		return
	}

	clave := req.Clave
	debeCambiar := false
	if clave == "" {
		temporal, err := utils.GenerarClaveTemporal()
		if err != nil {
			http.Error(w, "Error al generar clave temporal", http.StatusInternalServerError)
			return
		}
		clave = temporal
		debeCambiar = true
	}
	hash, err := utils.HashClave(clave)
	if err != nil {
		http.Error(w, "Error al procesar la clave", http.StatusInternalServerError)
		return
	}

	rol := autorizacion.ParseRol(req.Rol)
	if rol == autorizacion.RolCliente && req.ClienteID == nil {
		http.Error(w, "el rol CLIENTE requiere clienteId", http.StatusBadRequest)
		return
	}

	u := Usuario{
		Nombre:             req.Nombre,
		Email:              req.Email,
		Clave:              hash,
		DebeCambiarClave:   debeCambiar,
		Rol:                rol,
		ModulosAutorizados: req.ModulosAutorizados,
		ClienteID:          req.ClienteID,
	}
	if err := h.Repo.Create(&u); err != nil {
		http.Error(w, "Error al crear usuario", http.StatusInternalServerError)
		return
	}

	respuesta := map[string]interface{}{"usuario": u}
	if debeCambiar {
		// La clave temporal se entrega una única vez en la respuesta.
		respuesta["claveTemporal"] = clave
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(respuesta)
}

// Listar maneja GET /usuarios.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll()
	if err != nil {
		http.Error(w, "Error al listar usuarios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ActualizarRol maneja PATCH /usuarios/{id}/rol.
func (h *Handler) ActualizarRol(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de usuario inválido", http.StatusBadRequest)
		return
	}

	var req struct {
		Rol       string `json:"rol"`
		ClienteID *uint  `json:"clienteId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	rol := autorizacion.Rol(req.Rol)
	if !rol.EsValido() {
		http.Error(w, "rol inválido", http.StatusBadRequest)
		return
	}
	if rol == autorizacion.RolCliente && req.ClienteID == nil {
		http.Error(w, "el rol CLIENTE requiere clienteId", http.StatusBadRequest)
		return
	}

	if err := h.Repo.ActualizarRol(uint(id), rol, req.ClienteID); err != nil {
		http.Error(w, "Error al actualizar rol", http.StatusInternalServerError)
		return
	}
	u, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Usuario no encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// ActualizarModulos maneja PUT /usuarios/{id}/modulos.
func (h *Handler) ActualizarModulos(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de usuario inválido", http.StatusBadRequest)
		return
	}

	var req struct {
		Modulos []string `json:"modulos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Repo.ActualizarModulos(uint(id), req.Modulos); err != nil {
		http.Error(w, "Error al actualizar módulos", http.StatusInternalServerError)
		return
	}
	u, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Usuario no encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

// Eliminar maneja DELETE /usuarios/{id}.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de usuario inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(uint(id)); err != nil {
		http.Error(w, "Error al eliminar usuario", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
