package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// respond escribe el sobre {data, toasts} con los avisos acumulados en la petición.
func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Data: data, Toasts: notifierFor(c).Toasts()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// writeError traduce un error de aplicación a código HTTP y dto.ErrorResponse.
// DecodeError se revisa antes que ErrInvalidInput: una respuesta mal formada del backend
// no es culpa del cliente.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	body.Toasts = notifierFor(c).Toasts()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("session_id", GetSessionID(c)).Msg("error atendiendo petición")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		vErr *domain.ValidationError
		dErr *domain.DecodeError
		bErr *domain.BackendError
	)
	backendMsg := func(def string) string {
		if errors.As(err, &bErr) && bErr.Message != "" {
			return bErr.Message
		}
		return def
	}

	switch {
	case errors.As(err, &dErr):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "BAD_BACKEND_RESPONSE", Message: "respuesta inválida del backend (" + dErr.Resource + ")"}
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "campos obligatorios o inválidos: " + strings.Join(vErr.Fields, ", "), Fields: vErr.Fields}
	case errors.Is(err, domain.ErrConfirmationRequired):
		return fiber.StatusPreconditionRequired, dto.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "confirma la eliminación con ?confirmar=true"}
	case errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito está vacío"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"}
	case errors.Is(err, domain.ErrUnsupported):
		return fiber.StatusMethodNotAllowed, dto.ErrorResponse{Code: "UNSUPPORTED", Message: "operación no soportada por este panel"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: backendMsg("recurso no encontrado")}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: backendMsg("debes iniciar sesión")}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: backendMsg("no tienes permisos para esta acción")}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: backendMsg("conflicto con el estado actual")}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: backendMsg("entrada inválida")}
	case errors.Is(err, domain.ErrBackendUnavailable):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "BACKEND_UNAVAILABLE", Message: "el backend no está disponible, intenta más tarde"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler manejador global de Fiber para errores no atendidos por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		code := "HTTP_ERROR"
		if fErr.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return c.Status(fErr.Code).JSON(dto.ErrorResponse{Code: code, Message: fErr.Message})
	}
	return writeError(c, err)
}
