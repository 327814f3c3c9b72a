package domain

import "github.com/shopspring/decimal"

// CategoryOther groups menu items whose backend record carries no category.
const CategoryOther = "other"

// MenuItem is a sellable product mapped from the backend menu record.
type MenuItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Unit         string          `json:"unit,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

// Category is a menu grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
