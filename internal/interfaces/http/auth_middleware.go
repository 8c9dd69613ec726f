package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/pkg/jwt"
)

// Locals keys que dejan los middlewares en Fiber.
const (
	LocalSessionID = "session_id"
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSession   = "session"
	LocalNotifier  = "notifier"
	LocalRequestID = "request_id"
)

// bearerToken extrae el token del header Authorization. ok=false si el formato es inválido.
func bearerToken(c *fiber.Ctx) (token string, present, ok bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true, false
	}
	token = strings.TrimSpace(parts[1])
	return token, true, token != ""
}

// AuthMiddleware valida el Bearer Token de la tienda y deja sesión, usuario y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, present, ok := bearerToken(c)
		if !present {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware, pero sin token (o con uno inválido) deja pasar sin locals.
// Lo usa el login para conservar el carrito del invitado.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, _, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		if claims, err := jwt.Parse(jwtSecret, tokenString); err == nil {
			c.Locals(LocalSessionID, claims.SessionID)
			c.Locals(LocalUserID, claims.UserID)
			c.Locals(LocalRole, claims.Role)
		}
		return c.Next()
	}
}

// RequireRole autoriza sólo a los roles indicados. Debe ir DESPUÉS de AuthMiddleware.
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permisos para esta acción"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSessionID devuelve el ID de sesión de la tienda (después del middleware de auth).
func GetSessionID(c *fiber.Ctx) string { return localString(c, LocalSessionID) }

// GetUserID devuelve el UserID del contexto; "" para invitados.
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
