// Package dominio define los errores de negocio del libro de presupuestos.
// Toda regla violada se reporta con un código cerrado; la capa HTTP los
// traduce a estados sin filtrar detalles de la regla.
package dominio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Codigo identifica el tipo de error de dominio.
type Codigo string

const (
	CodigoFraccionInvalida            Codigo = "FRACCION_INVALIDA"
	CodigoCantidadOCostoInvalido      Codigo = "CANTIDAD_O_COSTO_INVALIDO"
	CodigoPresupuestoExcedido         Codigo = "PRESUPUESTO_EXCEDIDO"
	CodigoSaldoNegativo               Codigo = "SALDO_NEGATIVO"
	CodigoAsignacionInferiorEjecutado Codigo = "ASIGNACION_INFERIOR_EJECUTADO"
	CodigoNoAutorizado                Codigo = "NO_AUTORIZADO"
	CodigoTransicionInvalida          Codigo = "TRANSICION_INVALIDA"
	CodigoOrdenFacturada              Codigo = "ORDEN_FACTURADA"
	CodigoPresupuestoEnUso            Codigo = "PRESUPUESTO_EN_USO"
	CodigoNoEncontrado                Codigo = "NO_ENCONTRADO"
)

// Error es un error de dominio con código cerrado.
type Error struct {
	Codigo  Codigo `json:"codigo"`
	Mensaje string `json:"mensaje"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Codigo, e.Mensaje)
}

// Nuevo crea un error de dominio con el código y mensaje dados.
func Nuevo(codigo Codigo, mensaje string) *Error {
	return &Error{Codigo: codigo, Mensaje: mensaje}
}

// Nuevof crea un error de dominio con mensaje formateado.
func Nuevof(codigo Codigo, formato string, args ...interface{}) *Error {
	return &Error{Codigo: codigo, Mensaje: fmt.Sprintf(formato, args...)}
}

// Es reporta si err es un error de dominio con el código dado.
func Es(err error, codigo Codigo) bool {
	var de *Error
	return errors.As(err, &de) && de.Codigo == codigo
}

// estado mapea cada código a su estado HTTP.
func (e *Error) estado() int {
	switch e.Codigo {
	case CodigoFraccionInvalida, CodigoCantidadOCostoInvalido:
		return http.StatusBadRequest
	case CodigoPresupuestoExcedido, CodigoSaldoNegativo,
		CodigoAsignacionInferiorEjecutado, CodigoTransicionInvalida,
		CodigoOrdenFacturada, CodigoPresupuestoEnUso:
		return http.StatusUnprocessableEntity
	case CodigoNoAutorizado:
		return http.StatusForbidden
	case CodigoNoEncontrado:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// EscribirHTTP serializa err como respuesta JSON. Los errores que no son
// de dominio se responden como 500 genérico sin exponer el detalle.
func EscribirHTTP(w http.ResponseWriter, err error) {
	var de *Error
	if !errors.As(err, &de) {
		http.Error(w, "Error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(de.estado())
	_ = json.NewEncoder(w).Encode(de)
}
