package ordenservicio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Handler gestiona las rutas de órdenes de servicio.
type Handler struct {
	Validador *Validador
	Repo      *Repository
	Gate      *autorizacion.Gate
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB, gate *autorizacion.Gate) *Handler {
	return &Handler{
		Validador: NewValidador(db),
		Repo:      NewRepository(db),
		Gate:      gate,
	}
}

// autorizar aplica el alcance por cliente del gate sobre el recurso.
func (h *Handler) autorizar(r *http.Request, accion autorizacion.Accion, recurso autorizacion.RecursoDeCliente) error {
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if !h.Gate.PuedeEjecutar(perfil, accion, recurso) {
		return dominio.Nuevo(dominio.CodigoNoAutorizado, "acceso denegado")
	}
	return nil
}

// autorizarEscritura carga la orden y verifica permiso de escritura.
func (h *Handler) autorizarEscritura(w http.ResponseWriter, r *http.Request, id uint) bool {
	o, err := h.Repo.FindByID(id)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return false
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, o); err != nil {
		dominio.EscribirHTTP(w, err)
		return false
	}
	return true
}

func idDeRuta(r *http.Request, clave string) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[clave])
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// Crear maneja POST /ordenes-servicio.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreateOrdenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if dto.PresupuestoID == 0 {
		http.Error(w, "presupuestoId es obligatorio", http.StatusBadRequest)
		return
	}
	p, err := h.Validador.Presupuestos.FindByID(dto.PresupuestoID)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionEscribir, p); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}

	o, err := h.Validador.Crear(dto)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(o)
}

// Listar maneja GET /ordenes-servicio; acepta ?presupuesto= y ?estado=.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var presupuestoID uint
	if s := r.URL.Query().Get("presupuesto"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "presupuesto inválido", http.StatusBadRequest)
			return
		}
		presupuestoID = uint(id)
	}
	estado := EstadoOrden(r.URL.Query().Get("estado"))
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
		list, err := h.Repo.FindByCliente(*perfil.ClienteID, presupuestoID, estado)
		if err != nil {
			http.Error(w, "Error al listar órdenes", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
		return
	}

	list, err := h.Repo.FindAll(presupuestoID, estado)
	if err != nil {
		http.Error(w, "Error al listar órdenes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID maneja GET /ordenes-servicio/{id}.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de orden inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Repo.FindByID(id)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionLeer, o); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// ListarPorPresupuesto maneja GET /presupuestos/{id}/ordenes-servicio.
func (h *Handler) ListarPorPresupuesto(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de presupuesto inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Validador.Presupuestos.FindByID(id)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	if err := h.autorizar(r, autorizacion.AccionLeer, p); err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	list, err := h.Repo.FindByPresupuesto(id)
	if err != nil {
		http.Error(w, "Error al listar órdenes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Actualizar maneja PUT /ordenes-servicio/{id}.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de orden inválido", http.StatusBadRequest)
		return
	}
	if !h.autorizarEscritura(w, r, id) {
		return
	}
	var dto UpdateOrdenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	o, err := h.Validador.Actualizar(id, dto)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// MarcarEjecutada maneja PATCH /ordenes-servicio/{id}/ejecutar.
func (h *Handler) MarcarEjecutada(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de orden inválido", http.StatusBadRequest)
		return
	}
	if !h.autorizarEscritura(w, r, id) {
		return
	}
	o, err := h.Validador.MarcarEjecutada(id)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// RegistrarFactura maneja PATCH /ordenes-servicio/{id}/facturar.
func (h *Handler) RegistrarFactura(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de orden inválido", http.StatusBadRequest)
		return
	}
	if !h.autorizarEscritura(w, r, id) {
		return
	}
	var dto RegistrarFacturaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	o, err := h.Validador.RegistrarFactura(id, dto)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}

// Anular maneja PATCH /ordenes-servicio/{id}/anular.
func (h *Handler) Anular(w http.ResponseWriter, r *http.Request) {
	id, ok := idDeRuta(r, "id")
	if !ok {
		http.Error(w, "ID de orden inválido", http.StatusBadRequest)
		return
	}
	if !h.autorizarEscritura(w, r, id) {
		return
	}
	o, err := h.Validador.Anular(id)
	if err != nil {
		dominio.EscribirHTTP(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(o)
}
