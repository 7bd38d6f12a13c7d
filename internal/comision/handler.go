package comision

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/dominio"
)

// Handler gestiona las rutas de comisiones.
type Handler struct {
	Repo *Repository
	Gate *autorizacion.Gate
}

// NewHandler crea un nuevo Handler.
func NewHandler(db *gorm.DB, gate *autorizacion.Gate) *Handler {
	return &Handler{Repo: NewRepository(db), Gate: gate}
}

// Crear maneja POST /comisiones.
func (h *Handler) Crear(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var dto CreateComisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if dto.ClienteID == 0 {
		http.Error(w, "clienteId es obligatorio", http.StatusBadRequest)
		return
	}
	if dto.ValorPrima.IsNegative() || dto.PorcentajeComision.IsNegative() || dto.ValorComision.IsNegative() {
		http.Error(w, "prima, porcentaje y valor deben ser no negativos", http.StatusBadRequest)
		return
	}
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if !h.Gate.PuedeEjecutar(perfil, autorizacion.AccionEscribir, autorizacion.ClienteRef(dto.ClienteID)) {
		dominio.EscribirHTTP(w, dominio.Nuevo(dominio.CodigoNoAutorizado, "acceso denegado"))
		return
	}

	fecha, err := time.Parse(time.RFC3339, dto.Fecha)
	if err != nil {
		http.Error(w, "fecha inválida, se espera RFC3339", http.StatusBadRequest)
		return
	}

	valor := dto.ValorComision
	if valor.IsZero() {
		valor = dto.ValorPrima.Mul(dto.PorcentajeComision).Round(2)
	}

	c := Comision{
		ClienteID:          dto.ClienteID,
		ARL:                dto.ARL,
		Fecha:              fecha,
		ValorPrima:         dto.ValorPrima,
		PorcentajeComision: dto.PorcentajeComision,
		ValorComision:      valor,
	}
	if err := h.Repo.Create(&c); err != nil {
		http.Error(w, "Error al registrar comisión", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// ListarPorCliente maneja GET /clientes/{id}/comisiones.
func (h *Handler) ListarPorCliente(w http.ResponseWriter, r *http.Request) {
	clienteID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de cliente inválido", http.StatusBadRequest)
		return
	}
	perfil := autorizacion.PerfilDeContexto(r.Context())
	if !h.Gate.PuedeEjecutar(perfil, autorizacion.AccionLeer, autorizacion.ClienteRef(clienteID)) {
		dominio.EscribirHTTP(w, dominio.Nuevo(dominio.CodigoNoAutorizado, "acceso denegado"))
		return
	}
	list, err := h.Repo.FindByCliente(uint(clienteID))
	if err != nil {
		http.Error(w, "Error al listar comisiones", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
