// Package theme mantiene el modo de color (oscuro/claro) y su paleta derivada.
package theme

import (
	"context"
	"sync"

	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
)

// Key clave del modo en el almacén de preferencias.
const Key = "@biciros_theme"

// Valores guardados.
const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// Hook modo de color. Por defecto oscuro.
type Hook struct {
	store repository.PreferenceStore
	log   *logger.Logger

	mu   sync.RWMutex
	dark bool
}

// NewHook crea el hook en modo oscuro.
func NewHook(store repository.PreferenceStore, log *logger.Logger) *Hook {
	return &Hook{store: store, log: logger.OrNop(log).Component("theme"), dark: true}
}

// Load lee el modo guardado. Un valor ausente, desconocido o ilegible deja el modo oscuro.
func (h *Hook) Load(ctx context.Context) {
	raw, ok, err := h.store.Get(ctx, Key)
	if err != nil {
		h.log.Warn().Err(err).Msg("error cargando el tema")
	}
	dark := true
	if err == nil && ok && raw == ModeLight {
		dark = false
	}
	h.mu.Lock()
	h.dark = dark
	h.mu.Unlock()
}

// IsDark indica si el modo actual es oscuro.
func (h *Hook) IsDark() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dark
}

// Mode "dark" o "light".
func (h *Hook) Mode() string {
	if h.IsDark() {
		return ModeDark
	}
	return ModeLight
}

// Palette paleta del modo actual.
func (h *Hook) Palette() entity.Palette {
	return entity.PaletteFor(h.IsDark())
}

// Toggle invierte el modo y lo guarda. Devuelve el modo nuevo (true = oscuro).
func (h *Hook) Toggle(ctx context.Context) bool {
	h.mu.Lock()
	h.dark = !h.dark
	dark := h.dark
	h.mu.Unlock()
	h.persist(ctx, dark)
	return dark
}

// SetDark fija el modo y lo guarda.
func (h *Hook) SetDark(ctx context.Context, dark bool) {
	h.mu.Lock()
	h.dark = dark
	h.mu.Unlock()
	h.persist(ctx, dark)
}

// persist guarda el modo; un fallo solo se registra, el estado en memoria ya cambió.
func (h *Hook) persist(ctx context.Context, dark bool) {
	mode := ModeLight
	if dark {
		mode = ModeDark
	}
	if err := h.store.Set(ctx, Key, mode); err != nil {
		h.log.Warn().Err(err).Str("mode", mode).Msg("error guardando el tema")
	}
}
