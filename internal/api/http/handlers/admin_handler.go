package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-pos/internal/backend"
)

// AdminHandler fronts the back-office CRUD screens. It is a thin passthrough:
// the café backend owns validation and storage, the gateway only attaches the
// session token and normalizes failures.
type AdminHandler struct {
	backend *backend.Client
}

// NewAdminHandler constructs handler.
func NewAdminHandler(client *backend.Client) *AdminHandler {
	return &AdminHandler{backend: client}
}

// ListStaff handles GET /admin/staff.
func (h *AdminHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.backend.ListStaff(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staff})
}

// CreateStaff handles POST /admin/staff.
func (h *AdminHandler) CreateStaff(c *fiber.Ctx) error {
	var req backend.StaffMember
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}
	if err := h.backend.CreateStaff(c.UserContext(), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateStaff handles PUT /admin/staff/:id.
func (h *AdminHandler) UpdateStaff(c *fiber.Ctx) error {
	var req backend.StaffMember
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.backend.UpdateStaff(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteStaff handles DELETE /admin/staff/:id.
func (h *AdminHandler) DeleteStaff(c *fiber.Ctx) error {
	if err := h.backend.DeleteStaff(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListMaterials handles GET /admin/materials.
func (h *AdminHandler) ListMaterials(c *fiber.Ctx) error {
	materials, err := h.backend.ListMaterials(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": materials})
}

// CreateMaterial handles POST /admin/materials.
func (h *AdminHandler) CreateMaterial(c *fiber.Ctx) error {
	var req backend.Material
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}
	if err := h.backend.CreateMaterial(c.UserContext(), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateMaterial handles PUT /admin/materials/:id.
func (h *AdminHandler) UpdateMaterial(c *fiber.Ctx) error {
	var req backend.Material
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.backend.UpdateMaterial(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteMaterial handles DELETE /admin/materials/:id.
func (h *AdminHandler) DeleteMaterial(c *fiber.Ctx) error {
	if err := h.backend.DeleteMaterial(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListVouchers handles GET /admin/vouchers.
func (h *AdminHandler) ListVouchers(c *fiber.Ctx) error {
	vouchers, err := h.backend.ListVouchers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vouchers})
}

// CreateVoucher handles POST /admin/vouchers.
func (h *AdminHandler) CreateVoucher(c *fiber.Ctx) error {
	var req backend.Voucher
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name required")
	}
	if err := h.backend.CreateVoucher(c.UserContext(), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateVoucher handles PUT /admin/vouchers/:id.
func (h *AdminHandler) UpdateVoucher(c *fiber.Ctx) error {
	var req backend.Voucher
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.backend.UpdateVoucher(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteVoucher handles DELETE /admin/vouchers/:id.
func (h *AdminHandler) DeleteVoucher(c *fiber.Ctx) error {
	if err := h.backend.DeleteVoucher(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// StatsOverview handles GET /admin/stats/overview.
func (h *AdminHandler) StatsOverview(c *fiber.Ctx) error {
	overview, err := h.backend.StatsOverview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": overview})
}

// TopProducts handles GET /admin/stats/top-products.
func (h *AdminHandler) TopProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	products, err := h.backend.TopProducts(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}
