package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-pos/internal/service"
)

// CatalogHandler serves the menu to the cashier screen.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Menu handles GET /catalog/menu. An optional category query filters by
// category id.
func (h *CatalogHandler) Menu(c *fiber.Ctx) error {
	items, err := h.catalog.MenuItems(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// Categories handles GET /catalog/categories.
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categories})
}
