package aliado

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler gestiona las rutas de aliados.
type Handler struct {
	Repo *Repository
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Repo: NewRepository(db)}
}

// Crear maneja POST /aliados.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	var a Aliado
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if a.Nombre == "" {
		http.Error(w, "nombre es obligatorio", http.StatusBadRequest)
		return
	}
	a.Activo = true
	if err := h.Repo.Create(&a); err != nil {
		http.Error(w, "Error al crear aliado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// Listar maneja GET /aliados; acepta ?activos=true.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	soloActivos := r.URL.Query().Get("activos") == "true"
	list, err := h.Repo.FindAll(soloActivos)
	if err != nil {
		http.Error(w, "Error al listar aliados", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID maneja GET /aliados/{id}.
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de aliado inválido", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Aliado no encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}

// Actualizar maneja PUT /aliados/{id}.
func (h *Handler) Actualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de aliado inválido", http.StatusBadRequest)
		return
	}
	var datos Aliado
	if err := json.NewDecoder(r.Body).Decode(&datos); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	a, err := h.Repo.Update(uint(id), &datos)
	if err != nil {
		http.Error(w, "Error al actualizar aliado", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(a)
}
