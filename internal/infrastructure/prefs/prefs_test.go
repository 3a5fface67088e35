package prefs_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/internal/infrastructure/prefs"
)

// fakeRedis guarda los valores en un mapa y responde como go-redis.
type fakeRedis struct {
	values map[string]string
	err    error
}

func newFakeRedis() *fakeRedis { return &fakeRedis{values: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// contract comportamiento común de todos los almacenes de preferencias.
func contract(t *testing.T, store repository.PreferenceStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "@biciros_theme")
	require.NoError(t, err)
	assert.False(t, ok, "clave ausente")

	require.NoError(t, store.Set(ctx, "@biciros_theme", "light"))
	v, ok, err := store.Get(ctx, "@biciros_theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, store.Set(ctx, "@biciros_theme", "dark"))
	v, _, _ = store.Get(ctx, "@biciros_theme")
	assert.Equal(t, "dark", v, "Set sobrescribe")

	require.NoError(t, store.Remove(ctx, "@biciros_theme"))
	_, ok, err = store.Get(ctx, "@biciros_theme")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.Remove(ctx, "no-existe"), "borrar una clave ausente no es error")
}

func TestMemoryStore_Contrato(t *testing.T) {
	contract(t, prefs.NewMemory())
}

func TestMemoryStore_FallosInyectados(t *testing.T) {
	s := prefs.NewMemory()
	boom := errors.New("boom")
	require.NoError(t, s.Set(context.Background(), "k", "v"))

	s.FailGet(boom)
	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)

	s.FailSet(boom)
	assert.ErrorIs(t, s.Set(context.Background(), "k", "w"), boom)
	assert.ErrorIs(t, s.Remove(context.Background(), "k"), boom)
	assert.Equal(t, 1, s.Writes())

	s.FailGet(nil)
	v, _, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestBoltStore_Contrato(t *testing.T) {
	s, err := prefs.OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	contract(t, s)
}

func TestBoltStore_SobreviveAlReabrir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := prefs.OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "@biciros_session", "token"))
	require.NoError(t, s.Close())

	reopened, err := prefs.OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Get(context.Background(), "@biciros_session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token", v)
}

func TestBoltStore_ContextoCancelado(t *testing.T) {
	s, err := prefs.OpenBolt(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
	_, _, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisStore_Contrato(t *testing.T) {
	contract(t, prefs.NewRedisWithClient(newFakeRedis(), "biciros"))
}

func TestRedisStore_PrefijoDeClave(t *testing.T) {
	fake := newFakeRedis()
	s := prefs.NewRedisWithClient(fake, "taller1")

	require.NoError(t, s.Set(context.Background(), "@biciros_theme", "light"))

	assert.Equal(t, "taller1:prefs:@biciros_theme", s.Key("@biciros_theme"))
	assert.Equal(t, "light", fake.values["taller1:prefs:@biciros_theme"])
	assert.Equal(t, "prefs:x", prefs.NewRedisWithClient(fake, "").Key("x"))
	assert.NoError(t, s.Close(), "un cliente ajeno no se cierra")
}

func TestRedisStore_ErroresDelServidor(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	s := prefs.NewRedisWithClient(fake, "")

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, fake.err)
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), fake.err)
	assert.ErrorIs(t, s.Remove(context.Background(), "k"), fake.err)
}
