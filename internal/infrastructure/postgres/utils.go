package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// ── Marcas de tiempo dentro de JSONB ──────────────────────────────────────────
// JSONB no tiene tipo fecha: time.Time se guarda como {"$ts": "<UTC ancho fijo>"} para que
// el orden lexicográfico del texto coincida con el orden temporal en ORDER BY.

const (
	tsKey    = "$ts"
	tsLayout = "2006-01-02T15:04:05.000000000Z"
)

func marshalData(data map[string]any) ([]byte, error) {
	raw, err := json.Marshal(encodeValue(data))
	if err != nil {
		return nil, fmt.Errorf("codificar documento: %w", err)
	}
	return raw, nil
}

func unmarshalData(raw []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	out, _ := decodeValue(m).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return map[string]any{tsKey: t.UTC().Format(tsLayout)}
	case *time.Time:
		if t == nil {
			return nil
		}
		return map[string]any{tsKey: t.UTC().Format(tsLayout)}
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = encodeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = encodeValue(val)
		}
		return out
	}
	return v
}

func decodeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 1 {
			if s, ok := t[tsKey].(string); ok {
				if ts, err := time.Parse(tsLayout, s); err == nil {
					return ts
				}
			}
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = decodeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = decodeValue(val)
		}
		return out
	}
	return v
}
