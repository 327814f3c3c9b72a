package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/cafe-pos/internal/api/dto"
	"github.com/spec-kit/cafe-pos/internal/auth"
	"github.com/spec-kit/cafe-pos/internal/cart"
	"github.com/spec-kit/cafe-pos/internal/events"
	"github.com/spec-kit/cafe-pos/internal/service"
	apperrors "github.com/spec-kit/cafe-pos/pkg/util"
)

// CartHandler exposes the working sale on the cashier screen.
type CartHandler struct {
	cart       *cart.Cart
	catalog    *service.CatalogService
	dispatcher events.Dispatcher
}

// NewCartHandler constructs handler.
func NewCartHandler(c *cart.Cart, catalog *service.CatalogService, dispatcher events.Dispatcher) *CartHandler {
	return &CartHandler{cart: c, catalog: catalog, dispatcher: dispatcher}
}

// View handles GET /cart.
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// AddItem handles POST /cart/items. The product must exist in the current
// catalog; an existing line is incremented, otherwise a line is appended.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" {
		return fiber.NewError(http.StatusBadRequest, "product_id required")
	}

	item, err := h.catalog.MenuItem(c.UserContext(), req.ProductID)
	if err != nil {
		return err
	}

	h.cart.AddItem(*item)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// SetQuantity handles PUT /cart/items/:productId. A quantity of zero or less
// removes the line; an unknown product id leaves the cart untouched.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var req dto.SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	h.cart.SetQuantity(c.Params("productId"), req.Quantity)
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// RemoveItem handles DELETE /cart/items/:productId.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveItem(c.Params("productId"))
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// SetCustomer handles PUT /cart/customer.
func (h *CartHandler) SetCustomer(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	h.cart.SetCustomer(req.CustomerName, req.Table)
	return c.JSON(fiber.Map{"data": dto.NewCartResponse(h.cart)})
}

// Checkout handles POST /cart/checkout: it returns the confirmation receipt
// and resets the cart for the next sale.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	receipt, err := h.cart.Checkout()
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			return apperrors.NewValidationError("cart is empty", nil)
		}
		return err
	}

	staffID := ""
	if identity, ok := auth.IdentityFromContext(c); ok {
		staffID = identity.ID
	}
	_ = h.dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCheckedOut,
		StaffID:   staffID,
		Timestamp: time.Now(),
		Payload: events.OrderCheckedOutPayload{
			OrderID:      receipt.OrderID,
			CustomerName: receipt.CustomerName,
			Table:        receipt.Table,
			LineCount:    len(receipt.Lines),
			Total:        receipt.Total.String(),
		},
	})

	return c.JSON(fiber.Map{"data": receipt})
}
