package autorizacion

// Rol es el rol cerrado de un usuario. El conjunto es exhaustivo: el
// gate hace switch completo sobre estos cuatro valores.
type Rol string

const (
	RolAdmin    Rol = "ADMIN"
	RolAnalista Rol = "ANALISTA"
	RolConsulta Rol = "CONSULTA"
	RolCliente  Rol = "CLIENTE"
)

func (r Rol) String() string {
	return string(r)
}

// EsAdmin reporta si el rol es ADMIN.
func (r Rol) EsAdmin() bool {
	return r == RolAdmin
}

// EsValido reporta si el rol es uno de los cuatro conocidos.
func (r Rol) EsValido() bool {
	switch r {
	case RolAdmin, RolAnalista, RolConsulta, RolCliente:
		return true
	}
	return false
}

// ParseRol interpreta s como rol; los valores desconocidos degradan a
// CONSULTA, el rol de menor privilegio.
func ParseRol(s string) Rol {
	rol := Rol(s)
	if rol.EsValido() {
		return rol
	}
	return RolConsulta
}
