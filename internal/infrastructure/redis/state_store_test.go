package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
	infraredis "github.com/jhoicas/autoparts-storefront/internal/infrastructure/redis"
)

const sessionKey = "storefront:session:s1"

func newRedisStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *infraredis.StateStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := infraredis.NewClient(infraredis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	store := infraredis.NewStateStore(client, ttl)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestNewClient_SinServidorFalla(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := infraredis.NewClient(infraredis.Config{Addr: addr})
	assert.Error(t, err)
}

func TestStateStore_GetSinClaveDevuelveNoEncontrado(t *testing.T) {
	_, store := newRedisStore(t, time.Hour)

	v, ok, err := store.Get(context.Background(), "s1", repository.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStateStore_SetYGetEnHashDeLaSesion(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", repository.KeyToken, "tok-123"))
	v, ok, err := store.Get(ctx, "s1", repository.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)

	assert.Equal(t, "tok-123", mr.HGet(sessionKey, repository.KeyToken))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey))
}

func TestStateStore_SetRenuevaTTL(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", repository.KeyToken, "tok-123"))
	mr.FastForward(40 * time.Minute)
	assert.Equal(t, 20*time.Minute, mr.TTL(sessionKey))

	require.NoError(t, store.Set(ctx, "s1", repository.KeyCart, "[]"))
	assert.Equal(t, time.Hour, mr.TTL(sessionKey))
}

func TestStateStore_SesionVenceTrasTTL(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", repository.KeyToken, "tok-123"))
	mr.FastForward(time.Hour + time.Second)

	_, ok, err := store.Get(ctx, "s1", repository.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_SinTTLNoExpira(t *testing.T) {
	mr, store := newRedisStore(t, 0)

	require.NoError(t, store.Set(context.Background(), "s1", repository.KeyToken, "tok-123"))
	assert.Zero(t, mr.TTL(sessionKey))
}

func TestStateStore_DeleteVariasClaves(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", repository.KeyCart, "[]"))
	require.NoError(t, store.Set(ctx, "s1", repository.KeyCartID, "55"))
	require.NoError(t, store.Set(ctx, "s1", repository.KeyToken, "tok-123"))

	require.NoError(t, store.Delete(ctx, "s1", repository.KeyCart, repository.KeyCartID))

	fields, err := mr.HKeys(sessionKey)
	require.NoError(t, err)
	assert.Equal(t, []string{repository.KeyToken}, fields)
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestStateStore_ClearBorraLaSesionYNoOtras(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "s1", repository.KeyToken, "a"))
	require.NoError(t, store.Set(ctx, "s2", repository.KeyToken, "b"))

	require.NoError(t, store.Clear(ctx, "s1"))

	assert.False(t, mr.Exists(sessionKey))
	v, ok, err := store.Get(ctx, "s2", repository.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestStateStore_ErrorDeConexion(t *testing.T) {
	mr, store := newRedisStore(t, time.Hour)
	mr.SetError("ERR fuera de servicio")

	_, _, err := store.Get(context.Background(), "s1", repository.KeyToken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, goredis.Nil)
}
