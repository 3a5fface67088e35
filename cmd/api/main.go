package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/biciros/internal/app"
	"github.com/jhoicas/biciros/internal/application/auth"
	"github.com/jhoicas/biciros/internal/application/livesync"
	infrapdf "github.com/jhoicas/biciros/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/biciros/internal/interfaces/http"
	"github.com/jhoicas/biciros/pkg/config"
	"github.com/jhoicas/biciros/pkg/logger"
	"github.com/jhoicas/biciros/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("prefs", cfg.Prefs.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
	log.Info().Msg("aplicación detenida")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	stores, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	biciros := app.New(stores, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, infrapdf.NewWorkOrderGenerator(), livesync.Deps{
		Clock:   time.Now,
		Metrics: metrics.New(reg),
		Logger:  log,
	})
	defer biciros.Close()

	if err := biciros.Start(ctx); err != nil {
		return err
	}

	server := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
		// Sin WriteTimeout: los endpoints /stream mantienen la respuesta abierta.
	})
	server.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (swag init genera ./docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		server.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "BICIROS API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin documentación swagger; /docs deshabilitado")
	}

	httpRouter.Router(server, httpRouter.RouterDeps{
		Auth:       biciros.Auth,
		Sessions:   biciros,
		Sales:      biciros.Sales,
		OwnedSales: biciros,
		Services:   biciros.Services,
		WorkOrders: biciros.WorkOrders,
		Products:   biciros.Products,
		Settings:   biciros.Settings,
		Theme:      biciros.Theme,
		Dashboard:  biciros.Dashboard,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		AppName:    cfg.App.Name,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Cerrar los feeds primero termina los streams SSE abiertos.
		biciros.Close()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del servidor")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
