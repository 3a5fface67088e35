package theme_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/internal/application/theme"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/infrastructure/prefs"
)

func storedMode(t *testing.T, store *prefs.MemoryStore) string {
	t.Helper()
	v, ok, err := store.Get(context.Background(), theme.Key)
	require.NoError(t, err)
	require.True(t, ok)
	return v
}

func TestTheme_OscuroPorDefecto(t *testing.T) {
	h := theme.NewHook(prefs.NewMemory(), nil)
	h.Load(context.Background())

	assert.True(t, h.IsDark())
	assert.Equal(t, theme.ModeDark, h.Mode())
	assert.Equal(t, entity.DarkPalette, h.Palette())
}

func TestTheme_LoadLeeModoClaro(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(context.Background(), theme.Key, "light"))
	h := theme.NewHook(store, nil)

	h.Load(context.Background())

	assert.False(t, h.IsDark())
	assert.Equal(t, entity.LightPalette, h.Palette())
}

func TestTheme_ValorDesconocidoDejaOscuro(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(context.Background(), theme.Key, "sepia"))
	h := theme.NewHook(store, nil)

	h.Load(context.Background())

	assert.True(t, h.IsDark())
}

func TestTheme_ToggleGuardaElModoNuevo(t *testing.T) {
	store := prefs.NewMemory()
	h := theme.NewHook(store, nil)

	assert.False(t, h.Toggle(context.Background()))
	assert.Equal(t, "light", storedMode(t, store))

	assert.True(t, h.Toggle(context.Background()))
	assert.Equal(t, "dark", storedMode(t, store))
}

func TestTheme_ToggleSobreviveAUnHookNuevo(t *testing.T) {
	store := prefs.NewMemory()
	first := theme.NewHook(store, nil)
	first.Load(context.Background())
	require.True(t, first.IsDark())
	first.Toggle(context.Background())

	reopened := theme.NewHook(store, nil)
	reopened.Load(context.Background())

	assert.False(t, reopened.IsDark())
	assert.Equal(t, entity.LightPalette, reopened.Palette())
}

func TestTheme_SetDarkGuarda(t *testing.T) {
	store := prefs.NewMemory()
	h := theme.NewHook(store, nil)

	h.SetDark(context.Background(), false)

	assert.Equal(t, theme.ModeLight, h.Mode())
	assert.Equal(t, "light", storedMode(t, store))
}

func TestTheme_FalloAlGuardarNoRevierteElModo(t *testing.T) {
	store := prefs.NewMemory()
	store.FailSet(errors.New("sin espacio"))
	h := theme.NewHook(store, nil)

	dark := h.Toggle(context.Background())

	assert.False(t, dark)
	assert.False(t, h.IsDark())
}
