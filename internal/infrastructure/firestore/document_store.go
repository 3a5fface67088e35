package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)
var _ repository.Collection = (*CollectionRepo)(nil)

// DocumentStore almacén remoto sobre Cloud Firestore.
type DocumentStore struct {
	client *firestore.Client
	log    *logger.Logger
}

// NewDocumentStore construye el adaptador.
func NewDocumentStore(client *firestore.Client, log *logger.Logger) *DocumentStore {
	return &DocumentStore{client: client, log: logger.OrNop(log).Component("firestore.documents")}
}

// Collection devuelve el adaptador de una colección.
func (s *DocumentStore) Collection(name string) repository.Collection {
	return &CollectionRepo{client: s.client, name: name, log: s.log}
}

// CollectionRepo operaciones sobre una colección de Firestore.
type CollectionRepo struct {
	client *firestore.Client
	name   string
	log    *logger.Logger
}

func (r *CollectionRepo) ref() *firestore.CollectionRef {
	return r.client.Collection(r.name)
}

// Create agrega el documento con id autogenerado.
func (r *CollectionRepo) Create(ctx context.Context, data map[string]any) (string, error) {
	doc, _, err := r.ref().Add(ctx, data)
	if err != nil {
		return "", mapError("add document", err)
	}
	return doc.ID, nil
}

// Update escribe solo los campos de patch; NotFound si el documento no existe.
func (r *CollectionRepo) Update(ctx context.Context, id string, patch map[string]any) error {
	updates := make([]firestore.Update, 0, len(patch))
	for k, v := range patch {
		// FieldPath evita que nombres con caracteres especiales se interpreten como rutas.
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	if _, err := r.ref().Doc(id).Update(ctx, updates); err != nil {
		return mapError("update document "+r.name+"/"+id, err)
	}
	return nil
}

// Delete elimina el documento; con la precondición Exists un id inexistente es un error.
func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.ref().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return mapError("delete document "+r.name+"/"+id, err)
	}
	return nil
}

// Subscribe abre la consulta en vivo ordenada y entrega cada snapshot completo.
func (r *CollectionRepo) Subscribe(ctx context.Context, orderBy string, dir repository.Direction, onNext repository.SnapshotFunc, onErr repository.ErrorFunc) (repository.Subscription, error) {
	if strings.TrimSpace(orderBy) == "" || onNext == nil {
		return nil, fmt.Errorf("firestore %s: %w", r.name, domain.ErrSubscriptionSetup)
	}
	if r.client == nil {
		return nil, fmt.Errorf("firestore %s: cliente no inicializado: %w", r.name, domain.ErrSubscriptionSetup)
	}
	fsDir := firestore.Asc
	if dir == repository.Desc {
		fsDir = firestore.Desc
	}

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	it := r.ref().OrderBy(orderBy, fsDir).Snapshots(subCtx)
	sub := &snapshotSub{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(sub.done)
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if errors.Is(err, iterator.Done) || isCanceled(subCtx, err) {
					return
				}
				r.log.Error().Err(err).Str("collection", r.name).Msg("suscripción interrumpida")
				if onErr != nil {
					onErr(mapError("snapshot "+r.name, err))
				}
				return
			}
			all, err := snap.Documents.GetAll()
			if err != nil {
				if isCanceled(subCtx, err) {
					return
				}
				if onErr != nil {
					onErr(mapError("snapshot "+r.name, err))
				}
				return
			}
			docs := make([]repository.Document, 0, len(all))
			for _, ds := range all {
				docs = append(docs, repository.Document{ID: ds.Ref.ID, Data: ds.Data()})
			}
			onNext(docs)
		}
	}()
	return sub, nil
}

type snapshotSub struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Unsubscribe cancela la consulta y espera a que termine la goroutine de entrega.
func (s *snapshotSub) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
