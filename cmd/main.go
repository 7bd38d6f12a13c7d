package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/SegurosAndinos/api-corretaje/internal/aliado"
	"github.com/SegurosAndinos/api-corretaje/internal/auth"
	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
	"github.com/SegurosAndinos/api-corretaje/internal/cliente"
	"github.com/SegurosAndinos/api-corretaje/internal/comision"
	"github.com/SegurosAndinos/api-corretaje/internal/ordenservicio"
	"github.com/SegurosAndinos/api-corretaje/internal/presupuesto"
	"github.com/SegurosAndinos/api-corretaje/internal/resumen"
	"github.com/SegurosAndinos/api-corretaje/internal/usuario"
	"github.com/SegurosAndinos/api-corretaje/internal/utils/db"
)

func main() {
	// .env es opcional; en despliegue las variables llegan del entorno.
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Error al conectar a la base de datos:", err)
	}

	// AutoMigrate para todos los modelos
	if err := database.AutoMigrate(
		&cliente.Cliente{},
		&aliado.Aliado{},
		&comision.Comision{},
		&presupuesto.Presupuesto{},
		&ordenservicio.OrdenServicio{},
		&usuario.Usuario{},
	); err != nil {
		log.Fatal("Error en AutoMigrate:", err)
	}

	// La ventana de arranque solo se abre con la base de usuarios
	// vacía: es el camino de aprovisionamiento del primer admin.
	usuarios := usuario.NewRepository(database)
	n, err := usuarios.Contar()
	if err != nil {
		log.Fatal("Error al contar usuarios:", err)
	}
	gate := autorizacion.NewGate(n == 0)
	if n == 0 {
		log.Println("Sin usuarios registrados: ventana de arranque abierta")
	}

	// Handlers
	clienteHandler := cliente.NewHandler(database)
	aliadoHandler := aliado.NewHandler(database)
	comisionHandler := comision.NewHandler(database, gate)
	presupuestoHandler := presupuesto.NewHandler(database, gate)
	ordenHandler := ordenservicio.NewHandler(database, gate)
	usuarioHandler := usuario.NewHandler(database)
	resumenHandler := resumen.NewHandler(database, gate)

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/login", auth.LoginHandler(database)).Methods("POST")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacion(database, gate))

	api.HandleFunc("/cambiar-clave", auth.CambiarClaveHandler(database)).Methods("POST")

	// Rutas de clientes
	clientes := api.PathPrefix("/clientes").Subrouter()
	clientes.Use(autorizacion.RequiereModulo(gate, "clientes"))
	clientes.HandleFunc("", clienteHandler.Crear).Methods("POST")
	clientes.HandleFunc("", clienteHandler.Listar).Methods("GET")
	clientes.HandleFunc("/{id}", clienteHandler.BuscarPorID).Methods("GET")
	clientes.HandleFunc("/{id}", clienteHandler.Actualizar).Methods("PUT")
	clientes.HandleFunc("/{id}", clienteHandler.Eliminar).Methods("DELETE")
	clientes.HandleFunc("/{id}/comisiones", comisionHandler.ListarPorCliente).Methods("GET")
	clientes.HandleFunc("/{id}/presupuestos", presupuestoHandler.ListarPorCliente).Methods("GET")

	// Rutas de aliados
	aliados := api.PathPrefix("/aliados").Subrouter()
	aliados.Use(autorizacion.RequiereModulo(gate, "aliados"))
	aliados.HandleFunc("", aliadoHandler.Crear).Methods("POST")
	aliados.HandleFunc("", aliadoHandler.Listar).Methods("GET")
	aliados.HandleFunc("/{id}", aliadoHandler.BuscarPorID).Methods("GET")
	aliados.HandleFunc("/{id}", aliadoHandler.Actualizar).Methods("PUT")

	// Rutas de comisiones (registro inmutable)
	comisiones := api.PathPrefix("/comisiones").Subrouter()
	comisiones.Use(autorizacion.RequiereModulo(gate, "comisiones"))
	comisiones.HandleFunc("", comisionHandler.Crear).Methods("POST")

	// Rutas de presupuestos
	presupuestos := api.PathPrefix("/presupuestos").Subrouter()
	presupuestos.Use(autorizacion.RequiereModulo(gate, "presupuestos"))
	presupuestos.HandleFunc("", presupuestoHandler.Crear).Methods("POST")
	presupuestos.HandleFunc("", presupuestoHandler.Listar).Methods("GET")
	presupuestos.HandleFunc("/{id}", presupuestoHandler.BuscarPorID).Methods("GET")
	presupuestos.HandleFunc("/{id}", presupuestoHandler.Eliminar).Methods("DELETE")
	presupuestos.HandleFunc("/{id}/estado", presupuestoHandler.ActualizarEstado).Methods("PATCH")
	presupuestos.HandleFunc("/{id}/asignacion", presupuestoHandler.RecalcularAsignacion).Methods("PATCH")
	presupuestos.HandleFunc("/{id}/ordenes-servicio", ordenHandler.ListarPorPresupuesto).Methods("GET")

	// Rutas de órdenes de servicio
	ordenes := api.PathPrefix("/ordenes-servicio").Subrouter()
	ordenes.Use(autorizacion.RequiereModulo(gate, "ordenes-servicio"))
	ordenes.HandleFunc("", ordenHandler.Crear).Methods("POST")
	ordenes.HandleFunc("", ordenHandler.Listar).Methods("GET")
	ordenes.HandleFunc("/{id}", ordenHandler.BuscarPorID).Methods("GET")
	ordenes.HandleFunc("/{id}", ordenHandler.Actualizar).Methods("PUT")
	ordenes.HandleFunc("/{id}/ejecutar", ordenHandler.MarcarEjecutada).Methods("PATCH")
	ordenes.HandleFunc("/{id}/facturar", ordenHandler.RegistrarFactura).Methods("PATCH")
	ordenes.HandleFunc("/{id}/anular", ordenHandler.Anular).Methods("PATCH")

	// Rutas del tablero
	tablero := api.PathPrefix("/resumen").Subrouter()
	tablero.Use(autorizacion.RequiereModulo(gate, "resumen"))
	tablero.HandleFunc("/clientes", resumenHandler.ResumenClientes).Methods("GET")
	tablero.HandleFunc("/presupuestos/{id}", resumenHandler.EjecucionPresupuesto).Methods("GET")

	// Rutas de administración de usuarios
	admin := api.PathPrefix("/usuarios").Subrouter()
	admin.Use(autorizacion.RequiereAdmin(gate))
	admin.HandleFunc("", usuarioHandler.Crear).Methods("POST")
	admin.HandleFunc("", usuarioHandler.Listar).Methods("GET")
	admin.HandleFunc("/{id}/rol", usuarioHandler.ActualizarRol).Methods("PATCH")
	admin.HandleFunc("/{id}/modulos", usuarioHandler.ActualizarModulos).Methods("PUT")
	admin.HandleFunc("/{id}", usuarioHandler.Eliminar).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	puerto := os.Getenv("PORT")
	if puerto == "" {
		puerto = "8080"
	}
	fmt.Println("Servidor escuchando en http://localhost:" + puerto)
	log.Fatal(http.ListenAndServe(":"+puerto, handler))
}
