package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-pos/internal/api/http/handlers"
	"github.com/spec-kit/cafe-pos/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Session *handlers.SessionHandler
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	Admin   *handlers.AdminHandler
	Guard   *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	sessionGroup := app.Group("/session")
	sessionGroup.Get("", cfg.Session.Current)
	sessionGroup.Post("/login", cfg.Session.Login)
	sessionGroup.Post("/logout", cfg.Session.Logout)

	protected := app.Group("", cfg.Guard.Handle)

	protected.Get("/catalog/menu", cfg.Catalog.Menu)
	protected.Get("/catalog/categories", cfg.Catalog.Categories)

	cartGroup := protected.Group("/cart")
	cartGroup.Get("", cfg.Cart.View)
	cartGroup.Post("/items", cfg.Cart.AddItem)
	cartGroup.Put("/items/:productId", cfg.Cart.SetQuantity)
	cartGroup.Delete("/items/:productId", cfg.Cart.RemoveItem)
	cartGroup.Delete("", cfg.Cart.Clear)
	cartGroup.Put("/customer", cfg.Cart.SetCustomer)
	cartGroup.Post("/checkout", cfg.Cart.Checkout)

	adminGroup := protected.Group("/admin")
	adminGroup.Get("/staff", cfg.Admin.ListStaff)
	adminGroup.Post("/staff", cfg.Admin.CreateStaff)
	adminGroup.Put("/staff/:id", cfg.Admin.UpdateStaff)
	adminGroup.Delete("/staff/:id", cfg.Admin.DeleteStaff)
	adminGroup.Get("/materials", cfg.Admin.ListMaterials)
	adminGroup.Post("/materials", cfg.Admin.CreateMaterial)
	adminGroup.Put("/materials/:id", cfg.Admin.UpdateMaterial)
	adminGroup.Delete("/materials/:id", cfg.Admin.DeleteMaterial)
	adminGroup.Get("/vouchers", cfg.Admin.ListVouchers)
	adminGroup.Post("/vouchers", cfg.Admin.CreateVoucher)
	adminGroup.Put("/vouchers/:id", cfg.Admin.UpdateVoucher)
	adminGroup.Delete("/vouchers/:id", cfg.Admin.DeleteVoucher)
	adminGroup.Get("/stats/overview", cfg.Admin.StatsOverview)
	adminGroup.Get("/stats/top-products", cfg.Admin.TopProducts)
}
