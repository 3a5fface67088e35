// Package app arma el contexto de la aplicación: dueño de los almacenes, los hooks de entidades,
// las preferencias y la sesión. Se crea una vez en main y se cierra al apagar.
package app

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/biciros/internal/application/analytics"
	"github.com/jhoicas/biciros/internal/application/auth"
	"github.com/jhoicas/biciros/internal/application/livesync"
	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/application/settings"
	"github.com/jhoicas/biciros/internal/application/theme"
	"github.com/jhoicas/biciros/internal/domain"
	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/logger"
)

// Stores adaptadores elegidos en main según la configuración.
type Stores struct {
	Documents repository.DocumentStore
	Prefs     repository.PreferenceStore
	Users     repository.UserRepository
}

// App contexto de la aplicación.
type App struct {
	stores Stores
	deps   livesync.Deps
	log    *logger.Logger

	Sales      *sales.Hook // todas las ventas del taller
	Services   *services.Hook
	Products   *products.Hook
	Settings   *settings.Hook
	Theme      *theme.Hook
	Auth       *auth.AuthUseCase
	Dashboard  *analytics.DashboardUseCase
	WorkOrders *services.WorkOrderUseCase

	mu     sync.Mutex
	owned  map[string]*sales.Hook // ventas por vendedor, creadas bajo demanda
	closed bool
}

// New construye el contexto sin abrir suscripciones; eso lo hace Start.
func New(stores Stores, jwtCfg auth.JWTConfig, workOrders services.WorkOrderGenerator, deps livesync.Deps) *App {
	log := logger.OrNop(deps.Logger)
	deps.Logger = log
	a := &App{
		stores:   stores,
		deps:     deps,
		log:      log.Component("app"),
		Sales:    sales.NewHook(stores.Documents, deps, ""),
		Services: services.NewHook(stores.Documents, deps),
		Products: products.NewHook(stores.Documents, deps),
		Settings: settings.NewHook(stores.Prefs, log),
		Theme:    theme.NewHook(stores.Prefs, log),
		Auth:     auth.NewAuthUseCase(stores.Users, stores.Prefs, jwtCfg, log),
		owned:    map[string]*sales.Hook{},
	}
	a.Dashboard = analytics.NewDashboardUseCase(a.Sales, a.Services, a.Products, deps.Clock)
	a.WorkOrders = services.NewWorkOrderUseCase(a.Services, a.Settings, workOrders)
	return a
}

// Start carga preferencias y tema, restaura la sesión guardada y monta los feeds en paralelo.
// Un feed cuya consulta no se pudo configurar queda en estado de error y no detiene el arranque.
func (a *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Settings.Load(gctx)
		return nil
	})
	g.Go(func() error {
		a.Theme.Load(gctx)
		return nil
	})
	g.Go(func() error {
		sess, err := a.Auth.Restore(gctx)
		if err != nil {
			return err
		}
		if sess == nil {
			return nil
		}
		a.log.Info().Str("user_id", sess.User.ID).Msg("sesión restaurada")
		_, err = a.SalesFor(gctx, sess.User.ID)
		return a.tolerateSetup(err)
	})
	for _, mount := range []func(context.Context) error{a.Sales.Mount, a.Services.Mount, a.Products.Mount} {
		mount := mount
		g.Go(func() error { return a.tolerateSetup(mount(gctx)) })
	}
	return g.Wait()
}

func (a *App) tolerateSetup(err error) error {
	if errors.Is(err, domain.ErrSubscriptionSetup) {
		a.log.Error().Err(err).Msg("feed sin suscripción")
		return nil
	}
	return err
}

// SalesFor hook de ventas filtrado por vendedor. Se crea y monta la primera vez; las
// siguientes llamadas devuelven el mismo hook hasta que el usuario cierra sesión.
// Un hook cuya suscripción no se pudo configurar se devuelve con el error pero no se
// guarda, así la siguiente llamada vuelve a intentarlo.
func (a *App) SalesFor(ctx context.Context, userID string) (*sales.Hook, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, domain.ErrClosed
	}
	if h, ok := a.owned[userID]; ok {
		return h, nil
	}
	h := sales.NewHook(a.stores.Documents, a.deps, userID)
	if err := h.Mount(ctx); err != nil {
		return h, err
	}
	a.owned[userID] = h
	return h, nil
}

// Release cierra el hook de ventas del usuario, si existe.
func (a *App) Release(userID string) {
	a.mu.Lock()
	h, ok := a.owned[userID]
	delete(a.owned, userID)
	a.mu.Unlock()
	if ok {
		h.Close()
	}
}

// Login inicia la sesión del dispositivo.
func (a *App) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	return a.Auth.Login(ctx, email, password)
}

// Logout cierra la sesión y libera las ventas del usuario.
func (a *App) Logout(ctx context.Context) (*auth.Session, error) {
	sess, err := a.Auth.Logout(ctx)
	if sess != nil {
		a.Release(sess.User.ID)
	}
	return sess, err
}

// Close cancela todas las suscripciones. Las llamadas siguientes no hacen nada.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	owned := a.owned
	a.owned = map[string]*sales.Hook{}
	a.mu.Unlock()

	for _, h := range owned {
		h.Close()
	}
	a.Sales.Close()
	a.Services.Close()
	a.Products.Close()
	a.log.Info().Msg("suscripciones cerradas")
}
