package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/domain"
)

// monDTO is a menu item as the backend sends it.
type monDTO struct {
	MaMon     string          `json:"maMon"`
	TenMon    string          `json:"tenMon"`
	DonGia    decimal.Decimal `json:"donGia"`
	DonViTinh string          `json:"donViTinh"`
	MoTa      string          `json:"moTa"`
	HinhAnh   string          `json:"hinhAnh"`
	LoaiMon   *loaiMonDTO     `json:"loaiMon"`
}

type loaiMonDTO struct {
	MaLoaiMon  string `json:"maLoaiMon"`
	TenLoaiMon string `json:"tenLoaiMon"`
}

// ListMenuItems fetches the sellable menu. Records missing an id or a name
// are dropped with a warning rather than poisoning the whole catalog.
func (c *Client) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var records []monDTO
	if err := c.do(ctx, http.MethodGet, "/api/mon", nil, &records, true); err != nil {
		return nil, err
	}

	items := make([]domain.MenuItem, 0, len(records))
	for _, rec := range records {
		if rec.MaMon == "" || rec.TenMon == "" {
			c.logger.Warn("dropping malformed menu record",
				zap.String("maMon", rec.MaMon),
				zap.String("tenMon", rec.TenMon))
			continue
		}
		item := domain.MenuItem{
			ID:           rec.MaMon,
			Name:         rec.TenMon,
			Description:  rec.MoTa,
			UnitPrice:    rec.DonGia,
			Unit:         rec.DonViTinh,
			ImageURL:     rec.HinhAnh,
			CategoryID:   domain.CategoryOther,
			CategoryName: "Khác",
		}
		if rec.LoaiMon != nil && rec.LoaiMon.MaLoaiMon != "" {
			item.CategoryID = rec.LoaiMon.MaLoaiMon
			item.CategoryName = rec.LoaiMon.TenLoaiMon
		}
		items = append(items, item)
	}
	return items, nil
}

// ListCategories fetches the menu groupings.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var records []loaiMonDTO
	if err := c.do(ctx, http.MethodGet, "/api/loaimon", nil, &records, true); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(records))
	for _, rec := range records {
		if rec.MaLoaiMon == "" {
			c.logger.Warn("dropping malformed category record", zap.String("tenLoaiMon", rec.TenLoaiMon))
			continue
		}
		categories = append(categories, domain.Category{ID: rec.MaLoaiMon, Name: rec.TenLoaiMon})
	}
	return categories, nil
}
