// Package session mantiene el estado de autenticación de cada visitante de la tienda.
// El estado se hidrata desde el StateStore al inicio de cada petición y se borra por completo en Logout.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

// Session estado de un visitante: usuario autenticado (o nil) y token del backend.
type Session struct {
	ID    string
	User  *entity.User
	Token string
}

// IsAuthenticated indica si hay un usuario con token vigente en la sesión.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Role devuelve el rol del usuario o RoleInvitado.
func (s *Session) Role() string {
	if !s.IsAuthenticated() {
		return entity.RoleInvitado
	}
	return s.User.Role
}

// UserID devuelve el ID del usuario o "" para invitados.
func (s *Session) UserID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.ID
}

// ProfilePatch cambios de perfil permitidos al propio usuario.
type ProfilePatch struct {
	Name  *string
	Email *string
	RUT   *string
}

// storedUser formato persistido bajo la clave "user".
type storedUser struct {
	ID               string    `json:"id"`
	RUT              string    `json:"rut"`
	Name             string    `json:"nombre"`
	Email            string    `json:"email"`
	Role             string    `json:"rol"`
	RegistrationDate time.Time `json:"fecha_registro"`
}

// Manager carga, guarda y limpia sesiones.
type Manager struct {
	store repository.StateStore
	auth  AuthGateway
}

// NewManager construye el manager con el almacenamiento y el gateway de auth.
func NewManager(store repository.StateStore, auth AuthGateway) *Manager {
	return &Manager{store: store, auth: auth}
}

// New crea una sesión anónima con un ID nuevo (no se persiste hasta la primera escritura).
func (m *Manager) New() *Session {
	return &Session{ID: uuid.New().String()}
}

// Hydrate carga el usuario y el token persistidos. Un "user" corrupto se descarta.
func (m *Manager) Hydrate(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthorized
	}
	s := &Session{ID: sessionID}

	token, ok, err := m.store.Get(ctx, sessionID, repository.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("session: leer token: %w", err)
	}
	if ok {
		s.Token = token
	}

	raw, ok, err := m.store.Get(ctx, sessionID, repository.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("session: leer usuario: %w", err)
	}
	if ok {
		var su storedUser
		if err := json.Unmarshal([]byte(raw), &su); err != nil || su.ID == "" {
			log.Warn().Str("session_id", sessionID).Msg("usuario persistido inválido, se descarta")
			if err := m.store.Delete(ctx, sessionID, repository.KeyUser); err != nil {
				log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudo borrar el usuario inválido")
			}
		} else {
			s.User = fromStored(su)
		}
	}
	return s, nil
}

// Login valida credenciales contra el backend y persiste usuario y token en la sesión.
func (m *Manager) Login(ctx context.Context, sessionID, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	user, token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s := &Session{ID: sessionID, User: user, Token: token}
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	log.Info().Str("session_id", sessionID).Str("user_id", user.ID).Msg("inicio de sesión")
	return s, nil
}

// Register da de alta un usuario en el backend; no inicia sesión.
func (m *Manager) Register(ctx context.Context, in entity.Registration) (*entity.User, error) {
	var missing []string
	if strings.TrimSpace(in.RUT) == "" {
		missing = append(missing, "rut")
	}
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "nombre")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}
	if in.Role == "" {
		in.Role = entity.RoleCliente
	}
	if !entity.IsValidRole(in.Role) || in.Role == entity.RoleAdmin {
		return nil, domain.ErrInvalidInput
	}
	return m.auth.Register(ctx, in)
}

// UpdateProfile edita el perfil propio y refresca el usuario persistido.
func (m *Manager) UpdateProfile(ctx context.Context, s *Session, patch ProfilePatch) (*entity.User, error) {
	if !s.IsAuthenticated() {
		return nil, domain.ErrUnauthorized
	}
	updated := *s.User
	if patch.Name != nil {
		updated.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		updated.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.RUT != nil {
		updated.RUT = strings.TrimSpace(*patch.RUT)
	}
	if updated.Name == "" || updated.Email == "" {
		return nil, &domain.ValidationError{Fields: []string{"nombre", "email"}}
	}
	user, err := m.auth.UpdateUser(ctx, s.Token, &updated)
	if err != nil {
		return nil, err
	}
	s.User = user
	if err := m.save(ctx, s); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout borra todo el estado persistido de la sesión (incluido el carrito) y limpia la memoria.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	if err := m.store.Clear(ctx, s.ID); err != nil {
		return fmt.Errorf("session: limpiar: %w", err)
	}
	s.User = nil
	s.Token = ""
	return nil
}

func (m *Manager) save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(toStored(s.User))
	if err != nil {
		return fmt.Errorf("session: serializar usuario: %w", err)
	}
	if err := m.store.Set(ctx, s.ID, repository.KeyUser, string(raw)); err != nil {
		return fmt.Errorf("session: guardar usuario: %w", err)
	}
	if err := m.store.Set(ctx, s.ID, repository.KeyToken, s.Token); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	return nil
}

func toStored(u *entity.User) storedUser {
	return storedUser{
		ID:               u.ID,
		RUT:              u.RUT,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		RegistrationDate: u.RegistrationDate,
	}
}

func fromStored(su storedUser) *entity.User {
	return &entity.User{
		ID:               su.ID,
		RUT:              su.RUT,
		Name:             su.Name,
		Email:            su.Email,
		Role:             su.Role,
		RegistrationDate: su.RegistrationDate,
	}
}
