// Package auth emite y valida los tokens de sesión. La autenticación
// termina aquí: la autorización de módulos y acciones vive en
// internal/autorizacion y recibe el perfil ya cargado.
package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SegurosAndinos/api-corretaje/internal/autorizacion"
)

// Claims del token de sesión: identidad más los datos mínimos para
// reconstruir el perfil sin releer al usuario en cada petición.
type Claims struct {
	UsuarioID uint   `json:"usuarioId"`
	Rol       string `json:"rol"`
	ClienteID *uint  `json:"clienteId,omitempty"`
	jwt.RegisteredClaims
}

// Vigencia del token de acceso.
const TTL = 24 * time.Hour

func obtenerSecreto() ([]byte, error) {
	secreto := os.Getenv("JWT_SECRET")
	if secreto == "" {
		return nil, errors.New("JWT_SECRET no definida")
	}
	return []byte(secreto), nil
}

// GenerarToken emite un JWT HS256 con vigencia de 24h.
func GenerarToken(usuarioID uint, rol autorizacion.Rol, clienteID *uint) (string, error) {
	secreto, err := obtenerSecreto()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := &Claims{
		UsuarioID: usuarioID,
		Rol:       rol.String(),
		ClienteID: clienteID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(usuarioID),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secreto)
}

// ValidarToken valida firma y vigencia y retorna las claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	secreto, err := obtenerSecreto()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secreto, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido o expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("no fue posible extraer las claims")
	}
	return claims, nil
}
