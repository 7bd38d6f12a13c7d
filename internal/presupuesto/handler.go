package presupuesto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Handler gestiona las rutas de presupuestos.
type Handler struct {
	Manager *Manager
	Gate    *autorizacion.Gate
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB, gate *autorizacion.Gate) *Handler {
	return &Handler{Manager: NewManager(db), Gate: gate}
}

// autorizar aplica el alcance por cliente del gate sobre el recurso.
func (h *Handler) autorizar(r *http.Request, accion autorizacion.Accion, recurso autorizacion.RecursoDeCliente) error {
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if !h.Gate.PuedeEjecutar(perfil, accion, recurso) {
		return dominio.Nuevo(dominio.CodigoNoAutorizado, "acceso denegado")
	}
	return nil
}

// Crear maneja POST /presupuestos.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreatePresupuestoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if dto.ClienteID == 0 {
		http.Error(w, "clienteId es obligatorio", http.StatusBadRequest)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, autorizacion.ClienteRef(dto.ClienteID)); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}

	p, err := h.Manager.Crear(dto)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Listar maneja GET /presupuestos; acepta ?estado=. El rol CLIENTE
// solo ve sus propios presupuestos.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	estado := EstadoPresupuesto(r.URL.Query().Get("estado"))
	if estado != "" && !estado.EsValido() {
		http.Error(w, "estado inválido", http.StatusBadRequest)
		return
	}

	perfil := autorizacion.PerfilDeContexto(r.Context())
	if perfil != nil && perfil.Rol == autorizacion.RolCliente {
		if perfil.ClienteID == nil {
			http.Error(w, "Acceso denegado", http.StatusForbidden)
			return
		}
		list, err := h.Manager.Repo.FindByCliente(*perfil.ClienteID, estado)
		if err != nil {
			http.Error(w, "Error al listar presupuestos", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
		return
	}

	list, err := h.Manager.Repo.FindAll(estado)
	if err != nil {
		http.Error(w, "Error al listar presupuestos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID maneja GET /presupuestos/{id}.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Manager.Repo.FindByID(uint(id))
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionLeer, p); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// ListarPorCliente maneja GET /clientes/{id}/presupuestos.
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionLeer, autorizacion.ClienteRef(clienteID)); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	list, err := h.Manager.Repo.FindByCliente(uint(clienteID), "")
	if err != nil {
		http.Error(w, "Error al listar presupuestos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ActualizarEstado maneja PATCH /presupuestos/{id}/estado.
func (h *Handler) ActualizarEstado(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}

	var dto ActualizarEstadoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if !dto.Estado.EsValido() {
		http.Error(w, "estado inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Manager.Repo.FindByID(uint(id))
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, p); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}

	if err := h.Manager.Repo.ActualizarEstado(uint(id), dto.Estado); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	p, err = h.Manager.Repo.FindByID(uint(id))
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// RecalcularAsignacion maneja PATCH /presupuestos/{id}/asignacion.
func (h *Handler) RecalcularAsignacion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}

	var dto RecalcularAsignacionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	existente, err := h.Manager.Repo.FindByID(uint(id))
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, existente); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}

	p, err := h.Manager.RecalcularAsignacion(uint(id), dto)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Eliminar maneja DELETE /presupuestos/{id}.
func (h *Handler) Eliminar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Manager.Repo.FindByID(uint(id))
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, p); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.Manager.Repo.Delete(uint(id)); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
