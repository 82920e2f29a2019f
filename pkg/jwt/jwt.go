// Package jwt firma y valida los tokens de sesión (HS256) que identifican usuario, empresa y rol.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired el token fue válido pero ya venció.
	ErrExpired = errors.New("jwt: token expirado")
	// ErrInvalid firma, emisor, algoritmo o claims incorrectos.
	ErrInvalid = errors.New("jwt: token inválido")
)

// leeway tolerancia de reloj entre instancias al validar exp/iat.
const leeway = 5 * time.Second

// Config parámetros de firma y validación.
// Si Issuer no está vacío, Parse exige que el token lo traiga.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Identity lo que el token afirma sobre quien llama.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // admin, contador, vendedor, bodeguero
}

type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token para id con vencimiento cfg.TTL.
func Generate(cfg Config, id Identity) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if id.UserID == "" || id.CompanyID == "" {
		return "", fmt.Errorf("jwt: usuario y empresa son obligatorios")
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(cfg.Secret))
}

// Parse valida firma, algoritmo, vencimiento y emisor, y devuelve la identidad del token.
// Los errores se reducen a ErrExpired o ErrInvalid.
func Parse(cfg Config, tokenString string) (Identity, error) {
	if cfg.Secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrExpired
	case err != nil:
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Subject == "" || c.CompanyID == "" {
		return Identity{}, fmt.Errorf("%w: faltan usuario o empresa", ErrInvalid)
	}
	return Identity{UserID: c.Subject, CompanyID: c.CompanyID, Role: c.Role}, nil
}
