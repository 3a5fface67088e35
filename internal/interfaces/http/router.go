package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/biciros/internal/application/analytics"
	"github.com/jhoicas/biciros/internal/application/products"
	"github.com/jhoicas/biciros/internal/application/sales"
	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/application/settings"
	"github.com/jhoicas/biciros/internal/application/theme"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth       Authenticator
	Sessions   Sessions
	Sales      *sales.Hook
	OwnedSales OwnedSales
	Services   *services.Hook
	WorkOrders *services.WorkOrderUseCase
	Products   *products.Hook
	Settings   *settings.Hook
	Theme      *theme.Hook
	Dashboard  *appanalytics.DashboardUseCase
	Metrics    nethttp.Handler // opcional; sin él no se expone /metrics
	AppName    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	authMW := AuthMiddleware(deps.Auth)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.Sessions)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authMW, authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Ventas
	saleHandler := NewSaleHandler(deps.Sales, deps.OwnedSales)
	salesGroup := api.Group("/sales", authMW)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/stats", saleHandler.Stats)
	salesGroup.Get("/stream", saleHandler.Stream)
	salesGroup.Get("/mine", saleHandler.Mine)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Servicios del taller
	serviceHandler := NewServiceHandler(deps.Services, deps.WorkOrders)
	servicesGroup := api.Group("/services", authMW)
	servicesGroup.Get("/", serviceHandler.List)
	servicesGroup.Get("/stats", serviceHandler.Stats)
	servicesGroup.Get("/stream", serviceHandler.Stream)
	servicesGroup.Get("/next-number", serviceHandler.NextNumber)
	servicesGroup.Get("/:id/work-order", serviceHandler.WorkOrder)
	servicesGroup.Post("/", serviceHandler.Create)
	servicesGroup.Put("/:id", serviceHandler.Update)
	servicesGroup.Delete("/:id", adminOnly, serviceHandler.Delete)

	// Inventario
	productHandler := NewProductHandler(deps.Products)
	productsGroup := api.Group("/products", authMW)
	productsGroup.Get("/", productHandler.List)
	productsGroup.Get("/stats", productHandler.Stats)
	productsGroup.Get("/stream", productHandler.Stream)
	productsGroup.Get("/:id", productHandler.GetByID)
	productsGroup.Post("/", productHandler.Create)
	productsGroup.Put("/:id", productHandler.Update)
	productsGroup.Delete("/:id", adminOnly, productHandler.Delete)

	// Preferencias y tema
	settingsHandler := NewSettingsHandler(deps.Settings, deps.Theme)
	settingsGroup := api.Group("/settings", authMW)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Patch("/", settingsHandler.Patch)
	settingsGroup.Post("/reset", settingsHandler.Reset)
	settingsGroup.Put("/:key", settingsHandler.Put)

	themeGroup := api.Group("/theme", authMW)
	themeGroup.Get("/", settingsHandler.GetTheme)
	themeGroup.Put("/", settingsHandler.PutTheme)
	themeGroup.Post("/toggle", settingsHandler.ToggleTheme)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", authMW, dashboardHandler.GetSummary)
}
