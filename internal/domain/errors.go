package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrEmptyCart            = errors.New("el carrito está vacío")
	ErrConfirmationRequired = errors.New("se requiere confirmación")
	ErrInvalidTransition    = errors.New("transición de estado inválida")
	ErrBackendUnavailable   = errors.New("backend no disponible")
	ErrUnsupported          = errors.New("operación no soportada")
)

// ValidationError lista los campos requeridos que llegaron vacíos o con formato inválido.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos: " + strings.Join(e.Fields, ", ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// DecodeError indica que una respuesta del backend no cumple el esquema esperado.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("respuesta inválida de %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BackendError es un error HTTP devuelto por el backend, con el mensaje que éste informe.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend respondió HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend respondió HTTP %d: %s", e.Status, e.Message)
}

// Is traduce los códigos HTTP habituales a los errores de dominio.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == 404
	case ErrUnauthorized:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	case ErrConflict:
		return e.Status == 409
	case ErrInvalidInput:
		return e.Status == 400 || e.Status == 422
	case ErrBackendUnavailable:
		return e.Status >= 500
	}
	return false
}
