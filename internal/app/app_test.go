package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/biciros/internal/app"
	"github.com/jhoicas/biciros/internal/application/auth"
	"github.com/jhoicas/biciros/internal/application/livesync"
	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/application/settings"
	"github.com/jhoicas/biciros/internal/application/theme"
	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/infrastructure/memstore"
	"github.com/jhoicas/biciros/internal/infrastructure/prefs"
)

var jwtCfg = auth.JWTConfig{Secret: "secreto", ExpMinutes: 30, Issuer: "biciros-test"}

type noPDF struct{}

func (noPDF) GenerateWorkOrderPDF(context.Context, entity.Service, entity.AppSettings) ([]byte, error) {
	return []byte("%PDF"), nil
}

type fixture struct {
	docs  *memstore.Store
	prefs *prefs.MemoryStore
	app   *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := memstore.NewUserRepo(&entity.User{
		ID: "u-1", Email: "ana@biciros.co", PasswordHash: string(hash),
		Name: "Ana", Role: entity.RoleVendedor, Status: entity.UserStatusActive,
	})
	f := &fixture{docs: memstore.New(), prefs: prefs.NewMemory()}
	clock := func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	f.app = app.New(app.Stores{Documents: f.docs, Prefs: f.prefs, Users: users}, jwtCfg, noPDF{}, livesync.Deps{Clock: clock})
	t.Cleanup(f.app.Close)
	return f
}

func (f *fixture) seedSale(id, owner string) {
	f.docs.Coll(sales.Collection).Put(id, map[string]any{
		sales.FieldCustomer:  "Cliente " + id,
		sales.FieldUserID:    owner,
		sales.FieldStatus:    string(entity.SaleStatusCompleted),
		sales.FieldCreatedAt: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	})
}

func TestStart_MontaLosFeedsYCargaPreferencias(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.prefs.Set(context.Background(), theme.Key, theme.ModeLight))
	require.NoError(t, f.prefs.Set(context.Background(), settings.Key, `{"nombreNegocio":"Ruedas"}`))
	f.seedSale("v1", "u-1")

	require.NoError(t, f.app.Start(context.Background()))

	assert.True(t, f.app.Sales.Mounted())
	assert.True(t, f.app.Services.Mounted())
	assert.True(t, f.app.Products.Mounted())
	assert.Len(t, f.app.Sales.Records(), 1)
	assert.False(t, f.app.Theme.IsDark())
	assert.Equal(t, "Ruedas", f.app.Settings.Current().BusinessName)
	assert.Nil(t, f.app.Auth.Current())
}

func TestStart_ToleraUnaColeccionSinSuscripcion(t *testing.T) {
	f := newFixture(t)
	f.docs.Coll(products.Collection).FailSubscribe(errors.New("permiso denegado"))

	require.NoError(t, f.app.Start(context.Background()))

	assert.True(t, f.app.Sales.Mounted())
	assert.False(t, f.app.Products.Mounted())
	assert.ErrorIs(t, f.app.Products.Err(), domain.ErrSubscriptionSetup)
	assert.Empty(t, f.app.Products.Records())
}

func TestStart_RestauraLaSesionYSusVentas(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.Login(context.Background(), "ana@biciros.co", "clave123")
	require.NoError(t, err)
	f.seedSale("v1", "u-1")
	f.seedSale("v2", "u-9")

	restarted := app.New(app.Stores{Documents: f.docs, Prefs: f.prefs, Users: memstore.NewUserRepo(&entity.User{
		ID: "u-1", Email: "ana@biciros.co", Role: entity.RoleVendedor, Status: entity.UserStatusActive,
	})}, jwtCfg, noPDF{}, livesync.Deps{})
	t.Cleanup(restarted.Close)
	require.NoError(t, restarted.Start(context.Background()))

	require.NotNil(t, restarted.Auth.Current())
	mine, err := restarted.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, mine.Records(), 1)
	assert.Equal(t, "v1", mine.Records()[0].ID)
}

func TestSalesFor_ReutilizaElHookDelUsuario(t *testing.T) {
	f := newFixture(t)

	a, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)
	b, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, "u-1", a.Owner())
	assert.True(t, a.Mounted())
}

func TestSalesFor_ReintentaTrasFalloDeSuscripcion(t *testing.T) {
	f := newFixture(t)
	f.seedSale("v1", "u-1")
	coll := f.docs.Coll(sales.Collection)
	coll.FailSubscribe(errors.New("sin conexión"))

	failed, err := f.app.SalesFor(context.Background(), "u-1")
	require.ErrorIs(t, err, domain.ErrSubscriptionSetup)
	require.NotNil(t, failed)
	assert.False(t, failed.Mounted())

	coll.FailSubscribe(nil)
	h, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotSame(t, failed, h, "el hook fallido no queda guardado")
	assert.True(t, h.Mounted())
	assert.NoError(t, h.Err())
	assert.Len(t, h.Records(), 1)
}

func TestSalesFor_SinUsuario(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.SalesFor(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout_LiberaLasVentasDelUsuario(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.Login(context.Background(), "ana@biciros.co", "clave123")
	require.NoError(t, err)
	h, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)

	sess, err := f.app.Logout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u-1", sess.User.ID)
	assert.False(t, h.Mounted())
	again, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotSame(t, h, again)
}

func TestClose_CierraTodoYEsIdempotente(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Start(context.Background()))
	h, err := f.app.SalesFor(context.Background(), "u-1")
	require.NoError(t, err)

	f.app.Close()
	f.app.Close()

	assert.False(t, f.app.Sales.Mounted())
	assert.False(t, f.app.Services.Mounted())
	assert.False(t, h.Mounted())
	assert.Zero(t, f.docs.Coll(sales.Collection).Listeners())
	_, err = f.app.SalesFor(context.Background(), "u-1")
	assert.ErrorIs(t, err, domain.ErrClosed)
}
