// Package settings guarda las preferencias de la instalación como un único blob JSON en el
// almacén local.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
)

// Key clave del blob en el almacén de preferencias.
const Key = "@biciros_settings"

// Hook estado de preferencias. Empieza con los valores de fábrica y loading=true hasta Load.
type Hook struct {
	store repository.PreferenceStore
	log   *logger.Logger

	mu      sync.RWMutex
	current entity.AppSettings
	loading bool
	writeMu sync.Mutex // serializa cálculo y guardado: el último cambio gana
}

// NewHook crea el hook con los valores de fábrica.
func NewHook(store repository.PreferenceStore, log *logger.Logger) *Hook {
	return &Hook{
		store:   store,
		log:     logger.OrNop(log).Component("settings"),
		current: entity.DefaultSettings(),
		loading: true,
	}
}

// Load lee el blob guardado y lo mezcla sobre los valores de fábrica campo a campo.
// Un campo con un valor ilegible conserva su valor de fábrica; los demás se aplican.
// Los errores de lectura o de formato se registran y se ignoran.
func (h *Hook) Load(ctx context.Context) {
	next := entity.DefaultSettings()
	raw, ok, err := h.store.Get(ctx, Key)
	switch {
	case err != nil:
		h.log.Warn().Err(err).Msg("error cargando configuraciones; se usan los valores por defecto")
	case ok && raw != "":
		var saved map[string]any
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			h.log.Warn().Err(err).Msg("configuraciones guardadas ilegibles; se usan los valores por defecto")
			break
		}
		for key, value := range saved {
			patch, err := decodeField(key, value, true)
			if err != nil {
				h.log.Warn().Err(err).Str("campo", key).Msg("campo de configuración ilegible; se usa el valor por defecto")
				continue
			}
			next = patch.Apply(next)
		}
	}
	h.mu.Lock()
	h.current = next
	h.loading = false
	h.mu.Unlock()
}

// Current copia de las preferencias en memoria.
func (h *Hook) Current() entity.AppSettings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Loading es true hasta que termina Load.
func (h *Hook) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// Set cambia un campo por su nombre guardado (p. ej. "nombreNegocio"). Un nombre desconocido
// o un valor del tipo equivocado devuelve domain.ErrInvalidInput sin tocar el estado.
func (h *Hook) Set(ctx context.Context, key string, value any) error {
	patch, err := decodeField(key, value, false)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return h.Update(ctx, patch)
}

// decodeField arma un SettingsPatch con un único campo. Con weak se aceptan conversiones
// laxas ("true", 1) y se ignoran las claves desconocidas, como en un blob de otra versión.
func decodeField(key string, value any, weak bool) (entity.SettingsPatch, error) {
	var patch entity.SettingsPatch
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &patch,
		ErrorUnused:      !weak,
		WeaklyTypedInput: weak,
	})
	if err != nil {
		return patch, fmt.Errorf("settings: decoder: %w", err)
	}
	if err := dec.Decode(map[string]any{key: value}); err != nil {
		return entity.SettingsPatch{}, err
	}
	return patch, nil
}

// Update aplica un cambio parcial. El estado en memoria se actualiza antes de guardar;
// si el guardado falla el error se devuelve y el estado en memoria se conserva.
func (h *Hook) Update(ctx context.Context, patch entity.SettingsPatch) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	next := patch.Apply(h.current)
	h.current = next
	h.mu.Unlock()

	return h.save(ctx, next)
}

// Reset vuelve a los valores de fábrica y los guarda.
func (h *Hook) Reset(ctx context.Context) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	next := entity.DefaultSettings()
	h.mu.Lock()
	h.current = next
	h.mu.Unlock()

	return h.save(ctx, next)
}

func (h *Hook) save(ctx context.Context, s entity.AppSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: serializar: %w", err)
	}
	if err := h.store.Set(ctx, Key, string(raw)); err != nil {
		h.log.Error().Err(err).Msg("error guardando configuraciones")
		return fmt.Errorf("settings: guardar: %w", err)
	}
	return nil
}
