// Package livesync implementa el ciclo de vida compartido por los hooks de entidades:
// una consulta en vivo por montaje, reemplazo completo de la lista en cada snapshot,
// estado de carga/error y cancelación exactamente una vez.
package livesync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
	"github.com/jhoicas/biciros/pkg/metrics"
)

// Config parámetros de un feed.
type Config[T any] struct {
	Collection string                                      // nombre de la colección (etiquetas de log y métricas)
	OrderBy    string                                      // campo de marca de tiempo de creación
	Map        func(doc repository.Document, now time.Time) T // nunca falla: rellena valores por defecto
	ID         func(T) string
	Filter     func(T) bool // opcional; se aplica tras recibir el conjunto completo
	Clock      repository.Clock
	Metrics    *metrics.Collectors
	Logger     *logger.Logger
}

// Feed lista local de registros sincronizada con una colección remota.
type Feed[T any] struct {
	coll repository.Collection
	cfg  Config[T]
	log  *logger.Logger

	mu       sync.RWMutex
	gen      uint64 // identifica el montaje vigente; callbacks de montajes previos se ignoran
	mounted  bool
	sub      repository.Subscription
	records  []T
	loading  bool
	err      error
	failed   bool
	watchers map[uint64]chan []T
	nextW    uint64
}

// New crea un feed sin montar (loading=false, lista vacía).
func New[T any](coll repository.Collection, cfg Config[T]) *Feed[T] {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Feed[T]{
		coll:     coll,
		cfg:      cfg,
		log:      logger.OrNop(cfg.Logger).Component("livesync." + cfg.Collection),
		records:  []T{},
		watchers: map[uint64]chan []T{},
	}
}

// Collection nombre de la colección que sigue el feed.
func (f *Feed[T]) Collection() string { return f.cfg.Collection }

// Now hora actual según el reloj configurado.
func (f *Feed[T]) Now() time.Time { return f.cfg.Clock() }

// Mount abre la suscripción. Un feed montado devuelve ErrAlreadyMounted. Si la configuración
// de la consulta falla, el feed queda con error y lista vacía y el error se devuelve.
func (f *Feed[T]) Mount(ctx context.Context) error {
	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return domain.ErrAlreadyMounted
	}
	f.gen++
	gen := f.gen
	f.mounted = true
	f.loading = true
	f.failed = false
	f.err = nil
	f.records = []T{}
	f.mu.Unlock()

	if f.coll == nil || f.cfg.OrderBy == "" || f.cfg.Map == nil {
		return f.setupFailed(gen, fmt.Errorf("%s: %w", f.cfg.Collection, domain.ErrSubscriptionSetup))
	}

	sub, err := f.coll.Subscribe(ctx, f.cfg.OrderBy, repository.Desc,
		func(docs []repository.Document) { f.deliver(gen, docs) },
		func(err error) { f.deliveryFailed(gen, err) },
	)
	if err != nil {
		return f.setupFailed(gen, fmt.Errorf("%s: %w: %w", f.cfg.Collection, domain.ErrSubscriptionSetup, err))
	}

	f.mu.Lock()
	if f.gen != gen || !f.mounted {
		// Close llegó mientras se configuraba la consulta.
		f.mu.Unlock()
		sub.Unsubscribe()
		return nil
	}
	f.sub = sub
	f.mu.Unlock()
	f.cfg.Metrics.Opened(f.cfg.Collection)
	return nil
}

func (f *Feed[T]) setupFailed(gen uint64, err error) error {
	f.cfg.Metrics.SubscriptionError(f.cfg.Collection, metrics.PhaseSetup)
	f.log.Error().Err(err).Msg("error al configurar la suscripción")
	f.mu.Lock()
	if f.gen != gen {
		f.mu.Unlock()
		return err
	}
	f.mounted = false
	f.loading = false
	f.failed = true
	f.err = err
	f.records = []T{}
	// Sin montaje Close no hace nada: los canales de Watch se cierran aquí.
	watchers := f.watchers
	f.watchers = map[uint64]chan []T{}
	f.mu.Unlock()

	for _, ch := range watchers {
		close(ch)
	}
	return err
}

func (f *Feed[T]) deliver(gen uint64, docs []repository.Document) {
	now := f.cfg.Clock()
	list := make([]T, 0, len(docs))
	for _, d := range docs {
		rec := f.cfg.Map(d, now)
		if f.cfg.Filter != nil && !f.cfg.Filter(rec) {
			continue
		}
		list = append(list, rec)
	}

	f.mu.Lock()
	if f.gen != gen || !f.mounted || f.failed {
		f.mu.Unlock()
		return
	}
	f.records = list
	f.loading = false
	f.err = nil
	for _, ch := range f.watchers {
		offer(ch, copyOf(list))
	}
	f.mu.Unlock()

	f.cfg.Metrics.Snapshot(f.cfg.Collection, len(list))
	f.log.Debug().Int("records", len(list)).Msg("snapshot recibido")
}

func (f *Feed[T]) deliveryFailed(gen uint64, err error) {
	f.mu.Lock()
	if f.gen != gen || !f.mounted || f.failed {
		f.mu.Unlock()
		return
	}
	f.failed = true
	f.loading = false
	f.err = fmt.Errorf("%s: %w", f.cfg.Collection, err)
	f.mu.Unlock()

	f.cfg.Metrics.SubscriptionError(f.cfg.Collection, metrics.PhaseDelivery)
	f.log.Error().Err(err).Msg("error en la suscripción; se conserva la última lista")
}

// Close cancela la suscripción exactamente una vez y cierra los canales de Watch.
// Llamarlo de nuevo, o sobre un feed sin montar, no hace nada.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		return
	}
	f.mounted = false
	f.loading = false
	f.gen++
	sub := f.sub
	f.sub = nil
	watchers := f.watchers
	f.watchers = map[uint64]chan []T{}
	f.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
		f.cfg.Metrics.Closed(f.cfg.Collection)
	}
	for _, ch := range watchers {
		close(ch)
	}
}

// Mounted indica si hay una suscripción abierta o configurándose.
func (f *Feed[T]) Mounted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mounted
}

// Records copia de la lista actual (ya filtrada).
func (f *Feed[T]) Records() []T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return copyOf(f.records)
}

// Loading es true desde Mount hasta el primer snapshot o error.
func (f *Feed[T]) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Err último error de configuración o entrega; nil si no hay.
func (f *Feed[T]) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// Find busca un registro por id en la lista local.
func (f *Feed[T]) Find(id string) (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.cfg.ID != nil {
		for _, r := range f.records {
			if f.cfg.ID(r) == id {
				return r, true
			}
		}
	}
	var zero T
	return zero, false
}

// Watch devuelve un canal que recibe cada nueva lista. Solo se conserva la más reciente si el
// lector se atrasa. El canal se cierra con cancel o con Close; en un feed sin montar llega cerrado.
func (f *Feed[T]) Watch() (<-chan []T, func()) {
	ch := make(chan []T, 1)
	f.mu.Lock()
	if !f.mounted {
		f.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := f.nextW
	f.nextW++
	f.watchers[id] = ch
	if !f.loading {
		ch <- copyOf(f.records)
	}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			w, ok := f.watchers[id]
			delete(f.watchers, id)
			f.mu.Unlock()
			if ok {
				close(w)
			}
		})
	}
	return ch, cancel
}

// RecordWrite registra la escritura en métricas y log; devuelve err sin cambios.
func (f *Feed[T]) RecordWrite(op, id string, err error) error {
	f.cfg.Metrics.Write(f.cfg.Collection, op, err)
	if err != nil {
		f.log.Error().Err(err).Str("op", op).Str("id", id).Msg("error al escribir en el almacén")
		return err
	}
	f.log.Info().Str("op", op).Str("id", id).Msg("documento escrito")
	return nil
}

// offer envía sin bloquear, reemplazando la lista pendiente si el lector no la consumió.
// Se llama con f.mu tomado: los canales solo se cierran después de quitarlos del mapa.
func offer[T any](ch chan []T, list []T) {
	for {
		select {
		case ch <- list:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func copyOf[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
