package repository

import (
	"context"
	"time"
)

// Document documento crudo tal como lo entrega el almacén remoto: identidad asignada por el
// almacén y un mapa abierto campo → valor (escalares, objetos anidados, listas).
// El tipo de marca de tiempo nativo es time.Time.
type Document struct {
	ID   string
	Data map[string]any
}

// Direction sentido del orden de una consulta en vivo.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SnapshotFunc recibe el conjunto completo y ordenado de documentos en cada cambio.
type SnapshotFunc func(docs []Document)

// ErrorFunc recibe un error de entrega; después de invocarse no llegan más snapshots.
type ErrorFunc func(err error)

// Subscription manejador de una consulta en vivo. Unsubscribe es idempotente.
type Subscription interface {
	Unsubscribe()
}

// Collection capacidades del almacén remoto sobre una colección.
type Collection interface {
	// Subscribe abre una consulta en vivo ordenada por orderBy. El primer snapshot se entrega
	// en cuanto está disponible; un error síncrono indica fallo de configuración.
	Subscribe(ctx context.Context, orderBy string, dir Direction, onNext SnapshotFunc, onErr ErrorFunc) (Subscription, error)
	// Create inserta un documento y devuelve el id generado.
	Create(ctx context.Context, data map[string]any) (string, error)
	// Update escribe solo los campos de patch (merge superficial). ErrNotFound si no existe.
	Update(ctx context.Context, id string, patch map[string]any) error
	// Delete elimina un documento. ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
}

// DocumentStore puerto del almacén de documentos remoto (DIP).
type DocumentStore interface {
	Collection(name string) Collection
}

// Clock fuente de la hora actual; permite fijar "ahora" en pruebas.
type Clock func() time.Time
