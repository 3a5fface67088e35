package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/internal/application/livesync"
	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/internal/infrastructure/memstore"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func tickingClock() repository.Clock {
	var mu sync.Mutex
	cur := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := cur
		cur = cur.Add(time.Minute)
		return now
	}
}

func mountedHook(t *testing.T, store repository.DocumentStore) *services.Hook {
	t.Helper()
	h := services.NewHook(store, livesync.Deps{Clock: tickingClock()})
	require.NoError(t, h.Mount(context.Background()))
	t.Cleanup(h.Close)
	return h
}

func newService(name string) entity.NewService {
	return entity.NewService{
		Number:       "SRV-2025-001",
		Name:         name,
		Type:         entity.ServiceTypeMaintenance,
		Price:        decimal.NewFromInt(45000),
		Status:       entity.ServiceStatusPending,
		CustomerName: "Carlos",
		BikeBrand:    "Trek",
	}
}

// failingUpdates deja pasar Create y Subscribe pero rechaza Update.
type failingUpdates struct {
	repository.DocumentStore
	err error
}

func (s failingUpdates) Collection(name string) repository.Collection {
	return failingColl{Collection: s.DocumentStore.Collection(name), err: s.err}
}

type failingColl struct {
	repository.Collection
	err error
}

func (c failingColl) Update(context.Context, string, map[string]any) error { return c.err }

func TestServicesHook_AddCopiaElIdGeneradoEnElDocumento(t *testing.T) {
	store := memstore.New()
	h := mountedHook(t, store)

	id, err := h.Add(context.Background(), newService("Mantenimiento general"))
	require.NoError(t, err)

	doc, ok := store.Coll(services.Collection).Get(id)
	require.True(t, ok)
	assert.Equal(t, id, doc[services.FieldServiceID])
	assert.Equal(t, "SRV-2025-001", doc[services.FieldNumber])
	assert.Equal(t, 45000.0, doc[services.FieldPrice])
	assert.Nil(t, doc[services.FieldCompletedAt])
	assert.IsType(t, time.Time{}, doc[services.FieldScheduledAt], "sin fecha programada se usa ahora")

	svc, ok := h.Find(id)
	require.True(t, ok)
	assert.Equal(t, id, svc.ServiceID)
	assert.Equal(t, entity.ServiceTypeMaintenance, svc.Type)
	assert.Nil(t, svc.CompletedAt)
}

func TestServicesHook_AddRespetaFechaProgramada(t *testing.T) {
	store := memstore.New()
	h := mountedHook(t, store)
	when := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	in := newService("Cambio de cadena")
	in.ScheduledAt = &when

	id, err := h.Add(context.Background(), in)
	require.NoError(t, err)

	svc, _ := h.Find(id)
	require.NotNil(t, svc.ScheduledAt)
	assert.Equal(t, when, *svc.ScheduledAt)
}

func TestServicesHook_FalloDelSegundoPasoDevuelveIdYError(t *testing.T) {
	mem := memstore.New()
	boom := errors.New("update rechazado")
	h := mountedHook(t, failingUpdates{DocumentStore: mem, err: boom})

	id, err := h.Add(context.Background(), newService("Revisión"))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotEmpty(t, id, "el documento ya existe")
	assert.Equal(t, 1, mem.Coll(services.Collection).Len())

	svc, ok := h.Find(id)
	require.True(t, ok)
	assert.Equal(t, id, svc.ServiceID, "id_servicio vacío se lee como el id del documento")
}

func TestServicesHook_CompletarFijaFechaDeCompletado(t *testing.T) {
	store := memstore.New()
	h := mountedHook(t, store)
	ctx := context.Background()
	id, err := h.Add(ctx, newService("Ajuste de frenos"))
	require.NoError(t, err)

	inProgress := entity.ServiceStatusInProgress
	require.NoError(t, h.Update(ctx, id, entity.ServiceUpdate{Status: &inProgress}))
	svc, _ := h.Find(id)
	assert.Nil(t, svc.CompletedAt, "solo el estado completado fija la fecha")

	completed := entity.ServiceStatusCompleted
	require.NoError(t, h.Update(ctx, id, entity.ServiceUpdate{Status: &completed}))
	svc, _ = h.Find(id)
	require.NotNil(t, svc.CompletedAt)
	first := *svc.CompletedAt
	assert.Equal(t, svc.UpdatedAt, first, "completado y actualizado salen de la misma escritura")

	require.NoError(t, h.Update(ctx, id, entity.ServiceUpdate{Status: &completed}))
	svc, _ = h.Find(id)
	require.NotNil(t, svc.CompletedAt)
	assert.True(t, svc.CompletedAt.After(first), "cada paso a completado vuelve a fijar la fecha")
	assert.Equal(t, svc.UpdatedAt, *svc.CompletedAt)
}

func TestServicesHook_CompletarSinMontarFijaFecha(t *testing.T) {
	store := memstore.New()
	store.Coll(services.Collection).Put("s-1", map[string]any{
		services.FieldName:   "Cambio de cadena",
		services.FieldStatus: string(entity.ServiceStatusCompleted),
	})
	h := services.NewHook(store, livesync.Deps{Clock: func() time.Time { return t0 }})

	completed := entity.ServiceStatusCompleted
	require.NoError(t, h.Update(context.Background(), "s-1", entity.ServiceUpdate{Status: &completed}))

	doc, ok := store.Coll(services.Collection).Get("s-1")
	require.True(t, ok)
	assert.Equal(t, t0, doc[services.FieldCompletedAt], "la fecha no depende de la lista en memoria")
	assert.Equal(t, t0, doc[services.FieldUpdatedAt])
}

func TestServicesHook_MismoCambioDosVecesSoloAvanzaActualizado(t *testing.T) {
	store := memstore.New()
	h := mountedHook(t, store)
	ctx := context.Background()
	id, err := h.Add(ctx, newService("Ajuste de frenos"))
	require.NoError(t, err)

	notes, price := "pastillas nuevas", decimal.NewFromInt(52000)
	patch := entity.ServiceUpdate{Notes: &notes, Price: &price}
	require.NoError(t, h.Update(ctx, id, patch))
	first, _ := store.Coll(services.Collection).Get(id)
	require.NoError(t, h.Update(ctx, id, patch))
	second, _ := store.Coll(services.Collection).Get(id)

	assert.True(t, second[services.FieldUpdatedAt].(time.Time).After(first[services.FieldUpdatedAt].(time.Time)))
	delete(first, services.FieldUpdatedAt)
	delete(second, services.FieldUpdatedAt)
	assert.Equal(t, first, second)
}

func TestServicesHook_NextNumberCuentaLasOrdenesActuales(t *testing.T) {
	store := memstore.New()
	coll := store.Coll(services.Collection)
	for _, id := range []string{"a", "b", "c"} {
		coll.Put(id, map[string]any{services.FieldName: id})
	}
	h := mountedHook(t, store)

	assert.Equal(t, "SRV-2025-004", h.NextNumber())
}

func TestServicesHook_DeleteInexistenteFalla(t *testing.T) {
	h := mountedHook(t, memstore.New())
	assert.ErrorIs(t, h.Delete(context.Background(), "nada"), domain.ErrNotFound)
}

func TestServicesHook_UpdateInexistenteFalla(t *testing.T) {
	h := mountedHook(t, memstore.New())
	name := "x"
	assert.ErrorIs(t, h.Update(context.Background(), "nada", entity.ServiceUpdate{Name: &name}), domain.ErrNotFound)
}

func TestFromDocument_ValoresPorDefecto(t *testing.T) {
	svc := services.FromDocument(repository.Document{ID: "doc-1", Data: map[string]any{
		services.FieldName: "Sin tipo",
	}}, t0)

	assert.Equal(t, "doc-1", svc.ServiceID)
	assert.Equal(t, entity.ServiceTypeOther, svc.Type)
	assert.Equal(t, entity.ServiceStatusPending, svc.Status)
	assert.True(t, svc.Price.IsZero())
	assert.Nil(t, svc.ScheduledAt)
	assert.Nil(t, svc.CompletedAt)
	assert.Equal(t, t0, svc.CreatedAt)
}

func TestGenerateServiceNumber(t *testing.T) {
	cases := []struct {
		count int
		year  int
		want  string
	}{
		{0, 2025, "SRV-2025-001"},
		{3, 2025, "SRV-2025-004"},
		{41, 2026, "SRV-2026-042"},
		{999, 2025, "SRV-2025-1000"},
	}
	for _, tc := range cases {
		now := time.Date(tc.year, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, services.GenerateServiceNumber(tc.count, now))
	}
}
