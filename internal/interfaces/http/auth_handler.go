package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/pkg/jwt"
)

// TokenConfig firma de los tokens de la tienda.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// AuthHandler maneja login, registro, sesión de invitado y logout.
type AuthHandler struct {
	sessions *session.Manager
	carts    *CartHandler
	locker   *session.Locker
	tokens   TokenConfig
	limiter  *LoginLimiter
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sessions *session.Manager, carts *CartHandler, locker *session.Locker, tokens TokenConfig, limiter *LoginLimiter) *AuthHandler {
	return &AuthHandler{sessions: sessions, carts: carts, locker: locker, tokens: tokens, limiter: limiter}
}

func (h *AuthHandler) issue(sessionID string, user *entity.User) (dto.SessionResponse, error) {
	userID, role := "", entity.RoleInvitado
	if user != nil {
		userID, role = user.ID, user.Role
	}
	tok, err := jwt.Generate(h.tokens.Secret, sessionID, userID, role, h.tokens.Issuer, h.tokens.ExpMinutes)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	return dto.SessionResponse{
		Token:     tok,
		SessionID: sessionID,
		Role:      role,
		User:      dto.FromUser(user),
		ExpiresIn: h.tokens.ExpMinutes * 60,
	}, nil
}

// Guest godoc
// @Summary      Abrir sesión de invitado
// @Description  Devuelve un token para navegar y usar el carrito sin cuenta.
// @Tags         auth
// @Produce      json
// @Success      201  {object}  dto.Envelope{data=dto.SessionResponse}
// @Router       /api/auth/guest [post]
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	s := h.sessions.New()
	out, err := h.issue(s.ID, nil)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusCreated, out)
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Da de alta la cuenta en el backend; no inicia sesión.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "rut, nombre, email, password, rol"
// @Success      201   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.sessions.Register(c.UserContext(), in.ToRegistration())
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo completar el registro"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Cuenta creada, ya puedes iniciar sesión")
	return respond(c, fiber.StatusCreated, dto.FromUser(user))
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Si la petición trae el token de invitado, la sesión (y su carrito) se conserva.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.SessionResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ip := c.IP()
	if h.limiter != nil && !h.limiter.Allow(ip) {
		return h.limiter.reject(c)
	}
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	sessionID := GetSessionID(c)
	if sessionID == "" {
		sessionID = h.sessions.New().ID
	}
	unlock := h.locker.Lock(sessionID)
	defer unlock()

	s, err := h.sessions.Login(c.UserContext(), sessionID, in.Email, in.Password)
	if err != nil {
		if h.limiter != nil && (errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound)) {
			h.limiter.Fail(ip)
		}
		notify.Error(notifierFor(c), notify.Message(err, "Credenciales inválidas"))
		return writeError(c, err)
	}
	if h.limiter != nil {
		h.limiter.Reset(ip)
	}
	out, err := h.issue(s.ID, s.User)
	if err != nil {
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Bienvenido, "+s.User.Name)
	return respond(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra todo el estado de la sesión, carrito incluido, y entrega un token de invitado.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.SessionResponse}
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := GetSession(c)
	unlock := h.locker.Lock(s.ID)
	defer unlock()
	if err := h.sessions.Logout(c.UserContext(), s); err != nil {
		return writeError(c, err)
	}
	out, err := h.issue(s.ID, nil)
	if err != nil {
		return writeError(c, err)
	}
	notify.Info(notifierFor(c), "Sesión cerrada")
	return respond(c, fiber.StatusOK, out)
}

// Me godoc
// @Summary      Sesión actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.MeResponse}
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	store, unlock, err := h.carts.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	return respond(c, fiber.StatusOK, dto.MeResponse{
		SessionID:     s.ID,
		Authenticated: s.IsAuthenticated(),
		Role:          s.Role(),
		User:          dto.FromUser(s.User),
		CartCount:     store.Count(),
	})
}

// UpdateProfile godoc
// @Summary      Editar perfil propio
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProfileRequest  true  "nombre, email, rut"
// @Success      200   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.ProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s := GetSession(c)
	unlock := h.locker.Lock(s.ID)
	defer unlock()
	user, err := h.sessions.UpdateProfile(c.UserContext(), s, session.ProfilePatch{Name: in.Name, Email: in.Email, RUT: in.RUT})
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo actualizar el perfil"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Perfil actualizado")
	return respond(c, fiber.StatusOK, dto.FromUser(user))
}
