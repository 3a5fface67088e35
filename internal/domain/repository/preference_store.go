package repository

import "context"

// PreferenceStore almacenamiento clave → valor local del dispositivo que sobrevive a reinicios.
// Get devuelve ok=false cuando la clave no existe.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
