package resumen

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Handler gestiona las rutas del tablero.
type Handler struct {
	Repo *Repository
	Gate *autorizacion.Gate
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB, gate *autorizacion.Gate) *Handler {
	return &Handler{Repo: NewRepository(db), Gate: gate}
}

// ResumenClientes maneja GET /resumen/clientes. El rol CLIENTE solo
// recibe su propio rollup.
func (h *Handler) ResumenClientes(w http.ResponseWriter, r *http.Request) {
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if perfil != nil && perfil.Rol == autorizacion.RolCliente {
		if perfil.ClienteID == nil {
			http.Error(w, "Acceso denegado", http.StatusForbidden)
			return
		}
		dto, err := h.Repo.ResumenCliente(*perfil.ClienteID)
		if err != nil {
			http.Error(w, "Error al armar el resumen", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]ResumenClienteDTO{*dto})
		return
	}

	list, err := h.Repo.ResumenClientes()
	if err != nil {
		http.Error(w, "Error al armar el resumen", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// EjecucionPresupuesto maneja GET /resumen/presupuestos/{id}.
func (h *Handler) EjecucionPresupuesto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}
	dto, err := h.Repo.EjecucionPresupuesto(uint(id))
	if err != nil {
		http.Error(w, "Presupuesto no encontrado", http.StatusNotFound)
		return
	}
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if !h.Gate.PuedeEjecutar(perfil, autorizacion.AccionLeer, autorizacion.ClienteRef(dto.ClienteID)) {
		dominio.EscribirHTTP(w, dominio.Nuevo(dominio.CodigoNoAutorizado, "acceso denegado"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto)
}
