// Package memstore implementa los puertos de almacenamiento en memoria. Entrega los snapshots
// de forma síncrona al terminar cada escritura, lo que lo hace útil en pruebas y en modo local.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)
var _ repository.Collection = (*Collection)(nil)

// Store almacén de documentos en memoria con consultas en vivo.
type Store struct {
	mu    sync.Mutex
	colls map[string]*Collection
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{colls: map[string]*Collection{}}
}

// Collection devuelve (creando si hace falta) la colección name.
func (s *Store) Collection(name string) repository.Collection {
	return s.Coll(name)
}

// Coll igual que Collection pero con el tipo concreto (siembra e inyección de fallos).
func (s *Store) Coll(name string) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.colls[name]
	if !ok {
		c = &Collection{
			name:      name,
			docs:      map[string]map[string]any{},
			listeners: map[uint64]*listener{},
			newID:     uuid.NewString,
		}
		s.colls[name] = c
	}
	return c
}

// Collection colección en memoria.
type Collection struct {
	name string

	mu        sync.Mutex
	docs      map[string]map[string]any
	listeners map[uint64]*listener
	nextL     uint64
	newID     func() string

	subscribeErr error
	writeErr     error

	// dmu serializa las entregas para que cada oyente vea los snapshots en orden de escritura.
	dmu sync.Mutex
}

type listener struct {
	orderBy string
	dir     repository.Direction
	onNext  repository.SnapshotFunc
	onErr   repository.ErrorFunc
	stopped bool
}

type subscription struct {
	c    *Collection
	id   uint64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.c.mu.Lock()
		if l, ok := s.c.listeners[s.id]; ok {
			l.stopped = true
			delete(s.c.listeners, s.id)
		}
		s.c.mu.Unlock()
	})
}

// Subscribe registra el oyente y le entrega el snapshot inicial antes de retornar.
func (c *Collection) Subscribe(ctx context.Context, orderBy string, dir repository.Direction, onNext repository.SnapshotFunc, onErr repository.ErrorFunc) (repository.Subscription, error) {
	if strings.TrimSpace(orderBy) == "" || onNext == nil {
		return nil, fmt.Errorf("memstore %s: %w", c.name, domain.ErrSubscriptionSetup)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.dmu.Lock()
	defer c.dmu.Unlock()

	c.mu.Lock()
	if c.subscribeErr != nil {
		err := c.subscribeErr
		c.mu.Unlock()
		return nil, err
	}
	id := c.nextL
	c.nextL++
	l := &listener{orderBy: orderBy, dir: dir, onNext: onNext, onErr: onErr}
	c.listeners[id] = l
	docs := c.snapshotLocked(orderBy, dir)
	c.mu.Unlock()

	onNext(docs)
	return &subscription{c: c, id: id}, nil
}

// Create inserta una copia de data con un id nuevo.
func (c *Collection) Create(ctx context.Context, data map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	if c.writeErr != nil {
		err := c.writeErr
		c.mu.Unlock()
		return "", err
	}
	id := c.newID()
	c.docs[id] = maps.Clone(data)
	if c.docs[id] == nil {
		c.docs[id] = map[string]any{}
	}
	c.mu.Unlock()

	c.notify()
	return id, nil
}

// Update mezcla patch sobre el documento existente.
func (c *Collection) Update(ctx context.Context, id string, patch map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	if c.writeErr != nil {
		err := c.writeErr
		c.mu.Unlock()
		return err
	}
	doc, ok := c.docs[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("update %s/%s: %w", c.name, id, domain.ErrNotFound)
	}
	next := maps.Clone(doc)
	maps.Copy(next, patch)
	c.docs[id] = next
	c.mu.Unlock()

	c.notify()
	return nil
}

// Delete elimina el documento.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	if c.writeErr != nil {
		err := c.writeErr
		c.mu.Unlock()
		return err
	}
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return fmt.Errorf("delete %s/%s: %w", c.name, id, domain.ErrNotFound)
	}
	delete(c.docs, id)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Put guarda data bajo id tal cual (sin generar id) y notifica a los oyentes.
func (c *Collection) Put(id string, data map[string]any) {
	c.mu.Lock()
	c.docs[id] = maps.Clone(data)
	c.mu.Unlock()
	c.notify()
}

// Get devuelve una copia del documento guardado.
func (c *Collection) Get(id string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// Len número de documentos.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// Listeners número de suscripciones abiertas.
func (c *Collection) Listeners() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// FailSubscribe hace que los próximos Subscribe devuelvan err (nil lo desactiva).
func (c *Collection) FailSubscribe(err error) {
	c.mu.Lock()
	c.subscribeErr = err
	c.mu.Unlock()
}

// FailWrites hace que Create, Update y Delete devuelvan err (nil lo desactiva).
func (c *Collection) FailWrites(err error) {
	c.mu.Lock()
	c.writeErr = err
	c.mu.Unlock()
}

// Break entrega err a todas las suscripciones abiertas y las da por terminadas.
func (c *Collection) Break(err error) {
	c.dmu.Lock()
	defer c.dmu.Unlock()

	c.mu.Lock()
	targets := make([]*listener, 0, len(c.listeners))
	for id, l := range c.listeners {
		l.stopped = true
		targets = append(targets, l)
		delete(c.listeners, id)
	}
	c.mu.Unlock()

	for _, l := range targets {
		if l.onErr != nil {
			l.onErr(err)
		}
	}
}

func (c *Collection) notify() {
	c.dmu.Lock()
	defer c.dmu.Unlock()

	type delivery struct {
		l    *listener
		docs []repository.Document
	}
	c.mu.Lock()
	out := make([]delivery, 0, len(c.listeners))
	for _, l := range c.listeners {
		out = append(out, delivery{l: l, docs: c.snapshotLocked(l.orderBy, l.dir)})
	}
	c.mu.Unlock()

	for _, d := range out {
		c.mu.Lock()
		stopped := d.l.stopped
		c.mu.Unlock()
		if !stopped {
			d.l.onNext(d.docs)
		}
	}
}

// snapshotLocked devuelve todos los documentos ordenados por orderBy. Los documentos sin
// marca de tiempo en ese campo van al final; el id desempata.
func (c *Collection) snapshotLocked(orderBy string, dir repository.Direction) []repository.Document {
	docs := make([]repository.Document, 0, len(c.docs))
	for id, data := range c.docs {
		docs = append(docs, repository.Document{ID: id, Data: maps.Clone(data)})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		ti, oki := docs[i].Data[orderBy].(time.Time)
		tj, okj := docs[j].Data[orderBy].(time.Time)
		switch {
		case oki && !okj:
			return true
		case !oki && okj:
			return false
		case oki && okj && !ti.Equal(tj):
			if dir == repository.Desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}
