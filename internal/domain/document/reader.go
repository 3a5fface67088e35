// Package document contiene utilidades compartidas para convertir documentos crudos del
// almacén remoto (mapas abiertos) en registros tipados con valores por defecto.
package document

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// DateLayout formato de las fechas sin hora que se guardan como texto.
const DateLayout = "2006-01-02"

// Reader lee campos de un documento aplicando el valor por defecto de cada tipo cuando el
// campo falta, es nulo o no se puede convertir.
type Reader struct {
	data map[string]any
}

// Read envuelve los datos crudos de un documento. data puede ser nil.
func Read(data map[string]any) Reader {
	return Reader{data: data}
}

func (r Reader) value(key string) (any, bool) {
	if r.data == nil {
		return nil, false
	}
	v, ok := r.data[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has indica si el campo existe con un valor no nulo.
func (r Reader) Has(key string) bool {
	_, ok := r.value(key)
	return ok
}

// String devuelve el campo como texto; vacío o ausente → def.
func (r Reader) String(key, def string) string {
	v, ok := r.value(key)
	if !ok {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return def
	}
	return s
}

// Int devuelve el campo como entero; 0 si falta o no es numérico.
func (r Reader) Int(key string) int {
	v, ok := r.value(key)
	if !ok {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// Float devuelve el campo como float64; 0 si falta o no es numérico.
func (r Reader) Float(key string) float64 {
	v, ok := r.value(key)
	if !ok {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// Decimal devuelve el campo como decimal; cero si falta o no es numérico.
func (r Reader) Decimal(key string) decimal.Decimal {
	v, ok := r.value(key)
	if !ok {
		return decimal.Zero
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// Bool devuelve el campo como booleano; def solo si falta o es nulo.
func (r Reader) Bool(key string, def bool) bool {
	v, ok := r.value(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// Strings devuelve el campo como lista de textos; nunca nil.
func (r Reader) Strings(key string) []string {
	v, ok := r.value(key)
	if !ok {
		return []string{}
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil || list == nil {
		return []string{}
	}
	return list
}

// Time devuelve la marca de tiempo del campo o fallback si el valor no es una marca de
// tiempo reconocida (texto, número, ausente).
func (r Reader) Time(key string, fallback time.Time) time.Time {
	if t := r.OptionalTime(key); t != nil {
		return *t
	}
	return fallback
}

// OptionalTime devuelve la marca de tiempo del campo o nil.
func (r Reader) OptionalTime(key string) *time.Time {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		if t == nil {
			return nil
		}
		out := *t
		return &out
	}
	return nil
}

// DateString devuelve una fecha sin hora. Las marcas de tiempo se reducen a su fecha UTC;
// cualquier otro valor se devuelve como texto.
func (r Reader) DateString(key string) string {
	if t := r.OptionalTime(key); t != nil {
		return t.UTC().Format(DateLayout)
	}
	return r.String(key, "")
}

// Decode vuelca un objeto anidado en out (puntero a struct con etiquetas mapstructure).
// Si el campo falta, out queda intacto.
func (r Reader) Decode(key string, out any) error {
	v, ok := r.value(key)
	if !ok {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("document: decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("document: decodificar %q: %w", key, err)
	}
	return nil
}

// Encode convierte un struct con etiquetas mapstructure en un mapa apto para el almacén.
// Los campos vacíos marcados omitempty se omiten y los punteros se desreferencian.
func Encode(in any) (map[string]any, error) {
	out := map[string]any{}
	if err := mapstructure.Decode(in, &out); err != nil {
		return nil, fmt.Errorf("document: codificar: %w", err)
	}
	for k, v := range out {
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				delete(out, k)
				continue
			}
			out[k] = rv.Elem().Interface()
		}
	}
	return out, nil
}
