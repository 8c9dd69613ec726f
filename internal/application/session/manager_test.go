package session_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/memory"
)

type fakeAuth struct {
	loginCalls int
	loginErr   error
	updated    *entity.User
}

func (f *fakeAuth) Login(_ context.Context, email, _ string) (*entity.User, string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return &entity.User{ID: "u1", Name: "Ana", Email: email, Role: entity.RoleCliente}, "tok-123", nil
}

func (f *fakeAuth) Register(_ context.Context, in entity.Registration) (*entity.User, error) {
	return &entity.User{ID: "u2", Name: in.Name, Email: in.Email, Role: in.Role}, nil
}

func (f *fakeAuth) UpdateUser(_ context.Context, _ string, u *entity.User) (*entity.User, error) {
	f.updated = u
	cp := *u
	return &cp, nil
}

func TestManager_LoginPersisteYHydrate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore(0)
	m := session.NewManager(store, &fakeAuth{})

	_, err := m.Login(ctx, "s1", "ana@autoparts.cl", "secreto")
	require.NoError(t, err)

	s, err := m.Hydrate(ctx, "s1")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "u1", s.User.ID)
	assert.Equal(t, "tok-123", s.Token)
	assert.Equal(t, entity.RoleCliente, s.Role())
}

func TestManager_LoginCamposVaciosNoLlamaBackend(t *testing.T) {
	auth := &fakeAuth{}
	m := session.NewManager(memory.NewStateStore(0), auth)

	_, err := m.Login(context.Background(), "s1", "  ", "")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"email", "password"}, vErr.Fields)
	assert.Equal(t, 0, auth.loginCalls)
}

func TestManager_LoginErrorBackendNoPersiste(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore(0)
	m := session.NewManager(store, &fakeAuth{loginErr: &domain.BackendError{Status: 401}})

	_, err := m.Login(ctx, "s1", "ana@autoparts.cl", "mala")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	s, err := m.Hydrate(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, entity.RoleInvitado, s.Role())
}

func TestManager_LogoutBorraTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore(0)
	m := session.NewManager(store, &fakeAuth{})

	s, err := m.Login(ctx, "s1", "ana@autoparts.cl", "secreto")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "s1", repository.KeyCartID, "99"))

	require.NoError(t, m.Logout(ctx, s))
	assert.Nil(t, s.User)
	assert.Empty(t, s.Token)

	_, ok, _ := store.Get(ctx, "s1", repository.KeyCartID)
	assert.False(t, ok, "logout debe borrar también el carrito persistido")
}

func TestManager_HydrateDescartaUsuarioCorrupto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore(0)
	require.NoError(t, store.Set(ctx, "s1", repository.KeyUser, "{no-es-json"))
	m := session.NewManager(store, &fakeAuth{})

	s, err := m.Hydrate(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, s.User)
	_, ok, _ := store.Get(ctx, "s1", repository.KeyUser)
	assert.False(t, ok)
}

// failingDeleteStore falla al borrar; el resto delega en memoria.
type failingDeleteStore struct {
	*memory.StateStore
}

func (failingDeleteStore) Delete(context.Context, string, ...string) error {
	return errors.New("almacén caído")
}

func TestManager_HydrateRegistraFalloAlBorrarUsuarioCorrupto(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	ctx := context.Background()
	mem := memory.NewStateStore(0)
	require.NoError(t, mem.Set(ctx, "s1", repository.KeyUser, "{no-es-json"))
	m := session.NewManager(failingDeleteStore{mem}, &fakeAuth{})

	s, err := m.Hydrate(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, s.User)
	assert.Contains(t, buf.String(), "almacén caído")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestManager_RegisterRechazaRolAdmin(t *testing.T) {
	m := session.NewManager(memory.NewStateStore(0), &fakeAuth{})
	_, err := m.Register(context.Background(), entity.Registration{
		RUT: "11.111.111-1", Name: "Ana", Email: "ana@autoparts.cl", Password: "secreto", Role: entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManager_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{}
	m := session.NewManager(memory.NewStateStore(0), auth)
	s, err := m.Login(ctx, "s1", "ana@autoparts.cl", "secreto")
	require.NoError(t, err)

	name := "Ana María"
	u, err := m.UpdateProfile(ctx, s, session.ProfilePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)

	reloaded, err := m.Hydrate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", reloaded.User.Name)
}
