package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para dar un mensaje descriptivo;
// la capa HTTP los reconoce con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInactive            = errors.New("recurso inactivo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrReturnExceeded      = errors.New("cantidad devuelta supera la cantidad disponible para devolución")
)

// IsDomainError indica si err proviene de una regla de negocio (no de infraestructura).
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrEmailAlreadyExists, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrInactive, ErrInsufficientStock,
		ErrInsufficientBalance, ErrReturnExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
