package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/pkg/config"
)

func newTestStorage(t *testing.T, prefix string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	s := NewRedisStorage(rdb, prefix)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestNewRedisClient_ServidorCaido(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestRedisStorage_GetInexistente(t *testing.T) {
	s, _ := newTestStorage(t, "")

	val, err := s.Get("nada")
	require.NoError(t, err)
	assert.Nil(t, val)

	val, err = s.Get("")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_SetGetConPrefijo(t *testing.T) {
	s, mr := newTestStorage(t, "")

	require.NoError(t, s.Set("1.2.3.4-admin-login", []byte("3"), time.Minute))

	val, err := s.Get("1.2.3.4-admin-login")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	raw, err := mr.Get(defaultPrefix + "1.2.3.4-admin-login")
	require.NoError(t, err)
	assert.Equal(t, "3", raw)
	assert.Equal(t, time.Minute, mr.TTL(defaultPrefix+"1.2.3.4-admin-login"))
}

func TestRedisStorage_Expiracion(t *testing.T) {
	s, mr := newTestStorage(t, "t:")

	require.NoError(t, s.Set("k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	val, err := s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_SetVacioNoEscribe(t *testing.T) {
	s, mr := newTestStorage(t, "t:")

	require.NoError(t, s.Set("k", nil, 0))
	require.NoError(t, s.Set("", []byte("v"), 0))

	assert.Empty(t, mr.Keys())
}

func TestRedisStorage_Delete(t *testing.T) {
	s, _ := newTestStorage(t, "t:")
	require.NoError(t, s.Set("k", []byte("v"), 0))

	require.NoError(t, s.Delete("k"))

	val, err := s.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorage_ResetSoloBorraSuPrefijo(t *testing.T) {
	s, mr := newTestStorage(t, "t:")
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(k, []byte("1"), 0))
	}
	require.NoError(t, mr.Set("otra:app", "x"))

	require.NoError(t, s.Reset())

	assert.Equal(t, []string{"otra:app"}, mr.Keys())
}

// Dos storages sobre el mismo servidor no comparten claves.
func TestRedisStorage_PrefijosAislados(t *testing.T) {
	mr := miniredis.RunT(t)
	a := NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "a:")
	b := NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "b:")
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })

	require.NoError(t, a.Set("k", []byte("1"), 0))

	val, err := b.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}
