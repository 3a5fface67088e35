package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)
var _ repository.Collection = (*CollectionRepo)(nil)

// DocumentStore almacén de documentos sobre una tabla JSONB. Los cambios se empujan a los
// suscriptores con LISTEN/NOTIFY (ver schema.go).
type DocumentStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDocumentStore construye el adaptador.
func NewDocumentStore(pool *pgxpool.Pool, log *logger.Logger) *DocumentStore {
	return &DocumentStore{pool: pool, log: logger.OrNop(log).Component("postgres.documents")}
}

// Collection devuelve el adaptador de una colección.
func (s *DocumentStore) Collection(name string) repository.Collection {
	return &CollectionRepo{pool: s.pool, name: name, log: s.log}
}

// CollectionRepo operaciones sobre las filas de una colección.
type CollectionRepo struct {
	pool *pgxpool.Pool
	name string
	log  *logger.Logger
}

// Create inserta el documento con un id nuevo.
func (r *CollectionRepo) Create(ctx context.Context, data map[string]any) (string, error) {
	raw, err := marshalData(data)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	query := `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`
	if _, err := r.pool.Exec(ctx, query, r.name, id, string(raw)); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert document: %w", domain.ErrDuplicate)
		}
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// Update mezcla patch sobre el documento (operador || de JSONB: merge superficial).
func (r *CollectionRepo) Update(ctx context.Context, id string, patch map[string]any) error {
	raw, err := marshalData(patch)
	if err != nil {
		return err
	}
	query := `UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, r.name, id, string(raw))
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update document %s/%s: %w", r.name, id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el documento.
func (r *CollectionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, r.name, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete document %s/%s: %w", r.name, id, domain.ErrNotFound)
	}
	return nil
}

// Subscribe reserva una conexión, escucha el canal de cambios y entrega el conjunto completo
// y ordenado al inicio y después de cada aviso sobre esta colección.
func (r *CollectionRepo) Subscribe(ctx context.Context, orderBy string, dir repository.Direction, onNext repository.SnapshotFunc, onErr repository.ErrorFunc) (repository.Subscription, error) {
	if strings.TrimSpace(orderBy) == "" || onNext == nil {
		return nil, fmt.Errorf("postgres %s: %w", r.name, domain.ErrSubscriptionSetup)
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen: %w", err)
	}

	// La suscripción vive más que la petición que la abrió: solo Unsubscribe la cancela.
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sub := &listenSub{cancel: cancel, done: make(chan struct{})}
	query := snapshotQuery(dir)

	go func() {
		defer close(sub.done)
		defer func() {
			if !conn.Conn().IsClosed() {
				_, _ = conn.Exec(context.Background(), "UNLISTEN *")
			}
			conn.Release()
		}()

		docs, err := r.snapshot(subCtx, conn, query, orderBy)
		if err != nil {
			r.fail(subCtx, onErr, err)
			return
		}
		onNext(docs)

		for {
			n, err := conn.Conn().WaitForNotification(subCtx)
			if err != nil {
				r.fail(subCtx, onErr, err)
				return
			}
			if n.Payload != r.name {
				continue
			}
			docs, err := r.snapshot(subCtx, conn, query, orderBy)
			if err != nil {
				r.fail(subCtx, onErr, err)
				return
			}
			onNext(docs)
		}
	}()
	return sub, nil
}

// fail entrega err salvo que la suscripción se haya cancelado.
func (r *CollectionRepo) fail(ctx context.Context, onErr repository.ErrorFunc, err error) {
	if ctx.Err() != nil {
		return
	}
	r.log.Error().Err(err).Str("collection", r.name).Msg("suscripción interrumpida")
	if onErr != nil {
		onErr(err)
	}
}

func snapshotQuery(dir repository.Direction) string {
	order := "ASC NULLS LAST"
	if dir == repository.Desc {
		order = "DESC NULLS LAST"
	}
	return `SELECT id, data FROM documents WHERE collection = $1
		ORDER BY (data -> $2 ->> '` + tsKey + `') ` + order + `, id`
}

func (r *CollectionRepo) snapshot(ctx context.Context, conn *pgxpool.Conn, query, orderBy string) ([]repository.Document, error) {
	rows, err := conn.Query(ctx, query, r.name, orderBy)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()
	docs := make([]repository.Document, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		data, err := unmarshalData(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, repository.Document{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("rows documents: %w", err)
	}
	return docs, nil
}

type listenSub struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Unsubscribe cancela la espera y devuelve la conexión al pool.
func (s *listenSub) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}
