package dto

import (
	"github.com/shopspring/decimal"

	"github.com/spec-kit/cafe-pos/internal/cart"
)

// AddItemRequest payload for putting a menu item in the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// SetQuantityRequest payload for replacing a line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CustomerRequest payload for the customer name and table fields.
type CustomerRequest struct {
	CustomerName string `json:"customer_name"`
	Table        string `json:"table"`
}

// LinePayload is one cart line as shown on the order panel.
type LinePayload struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse is the current sale.
type CartResponse struct {
	Lines        []LinePayload   `json:"lines"`
	CustomerName string          `json:"customer_name"`
	Table        string          `json:"table"`
	Total        decimal.Decimal `json:"total"`
}

// NewCartResponse shapes the cart for the order panel.
func NewCartResponse(c *cart.Cart) CartResponse {
	lines := c.Lines()
	payload := make([]LinePayload, 0, len(lines))
	for _, line := range lines {
		payload = append(payload, LinePayload{
			ProductID: line.Item.ID,
			Name:      line.Item.Name,
			UnitPrice: line.Item.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return CartResponse{
		Lines:        payload,
		CustomerName: c.CustomerName(),
		Table:        c.Table(),
		Total:        c.Total(),
	}
}
