package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
)

// sessionLoader es el contrato mínimo que necesita el middleware para hidratar la sesión.
// Lo implementa *session.Manager.
type sessionLoader interface {
	Hydrate(ctx context.Context, sessionID string) (*session.Session, error)
}

// LoadSession hidrata la sesión persistida del token. Debe usarse DESPUÉS de AuthMiddleware.
//
// El estado persistido manda sobre los claims: tras un logout el token sigue siendo válido,
// pero la sesión queda como invitado y el rol del contexto se rebaja en consecuencia.
//   - 401 UNAUTHORIZED si no hay session_id en el contexto.
//   - 503 SESSION_UNAVAILABLE si falla el almacenamiento.
func LoadSession(loader sessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := GetSessionID(c)
		if sessionID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión no encontrada en el token",
			})
		}
		s, err := loader.Hydrate(c.UserContext(), sessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("no se pudo hidratar la sesión")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SESSION_UNAVAILABLE",
				Message: "no se pudo leer la sesión, intente más tarde",
			})
		}
		c.Locals(LocalSession, s)
		c.Locals(LocalUserID, s.UserID())
		c.Locals(LocalRole, s.Role())
		c.Locals(LocalNotifier, notify.NewCollector())
		return c.Next()
	}
}

// GetSession devuelve la sesión hidratada; nil si LoadSession no corrió.
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

// notifierFor devuelve el collector de avisos de la petición, creándolo si hace falta.
func notifierFor(c *fiber.Ctx) *notify.Collector {
	if n, ok := c.Locals(LocalNotifier).(*notify.Collector); ok {
		return n
	}
	n := notify.NewCollector()
	c.Locals(LocalNotifier, n)
	return n
}
