package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// StaffMember is a back-office staff record.
type StaffMember struct {
	ID        string `json:"maNV"`
	Name      string `json:"tenNV"`
	Role      string `json:"chucVu"`
	Gender    string `json:"gioiTinh,omitempty"`
	BirthDate string `json:"ngaySinh,omitempty"`
	Shift     string `json:"caLam,omitempty"`
	Username  string `json:"taiKhoan,omitempty"`
	Phone     string `json:"soDienThoai,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"diaChi,omitempty"`
	Status    string `json:"trangThai,omitempty"`
}

// Material is a raw ingredient record.
type Material struct {
	ID   string `json:"maNL"`
	Name string `json:"tenNL"`
	Unit string `json:"donViTinh"`
}

// Voucher is a promotion record.
type Voucher struct {
	ID            string          `json:"maKM"`
	Name          string          `json:"tenKM"`
	Kind          string          `json:"loaiKM,omitempty"`
	Value         decimal.Decimal `json:"giaTriGiam"`
	MinOrderTotal decimal.Decimal `json:"soTienToiThieu"`
	MaxDiscount   decimal.Decimal `json:"giamToiDa"`
	UsageLimit    int             `json:"soLuongSuDung"`
	Description   string          `json:"moTa,omitempty"`
	StartDate     string          `json:"ngayBatDau"`
	EndDate       string          `json:"ngayKetThuc"`
}

// StatsOverview is the dashboard headline block.
type StatsOverview struct {
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
	StaffCount int             `json:"staffCount"`
	ItemCount  int             `json:"itemCount"`
}

// TopProduct is one row of the best-seller ranking.
type TopProduct struct {
	ID       string          `json:"maMon"`
	Name     string          `json:"tenMon"`
	Quantity int             `json:"soLuong"`
	Revenue  decimal.Decimal `json:"doanhThu"`
}

// ListStaff fetches all staff records.
func (c *Client) ListStaff(ctx context.Context) ([]StaffMember, error) {
	var out []StaffMember
	err := c.do(ctx, http.MethodGet, "/api/nhanvien", nil, &out, true)
	return out, err
}

// CreateStaff adds a staff record.
func (c *Client) CreateStaff(ctx context.Context, member StaffMember) error {
	return c.do(ctx, http.MethodPost, "/api/nhanvien", member, nil, true)
}

// UpdateStaff replaces a staff record.
func (c *Client) UpdateStaff(ctx context.Context, id string, member StaffMember) error {
	return c.do(ctx, http.MethodPut, "/api/nhanvien/"+url.PathEscape(id), member, nil, true)
}

// DeleteStaff removes a staff record.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/nhanvien/"+url.PathEscape(id), nil, nil, true)
}

// ListMaterials fetches all ingredient records.
func (c *Client) ListMaterials(ctx context.Context) ([]Material, error) {
	var out []Material
	err := c.do(ctx, http.MethodGet, "/api/nguyenlieu", nil, &out, true)
	return out, err
}

// CreateMaterial adds an ingredient record.
func (c *Client) CreateMaterial(ctx context.Context, material Material) error {
	return c.do(ctx, http.MethodPost, "/api/nguyenlieu", material, nil, true)
}

// UpdateMaterial replaces an ingredient record.
func (c *Client) UpdateMaterial(ctx context.Context, id string, material Material) error {
	return c.do(ctx, http.MethodPut, "/api/nguyenlieu/"+url.PathEscape(id), material, nil, true)
}

// DeleteMaterial removes an ingredient record.
func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/nguyenlieu/"+url.PathEscape(id), nil, nil, true)
}

// ListVouchers fetches all promotions.
func (c *Client) ListVouchers(ctx context.Context) ([]Voucher, error) {
	var out []Voucher
	err := c.do(ctx, http.MethodGet, "/api/khuyenmai", nil, &out, true)
	return out, err
}

// CreateVoucher adds a promotion.
func (c *Client) CreateVoucher(ctx context.Context, voucher Voucher) error {
	return c.do(ctx, http.MethodPost, "/api/khuyenmai", voucher, nil, true)
}

// UpdateVoucher replaces a promotion.
func (c *Client) UpdateVoucher(ctx context.Context, id string, voucher Voucher) error {
	return c.do(ctx, http.MethodPut, "/api/khuyenmai/"+url.PathEscape(id), voucher, nil, true)
}

// DeleteVoucher removes a promotion.
func (c *Client) DeleteVoucher(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/khuyenmai/"+url.PathEscape(id), nil, nil, true)
}

// StatsOverview fetches the dashboard headline numbers.
func (c *Client) StatsOverview(ctx context.Context) (*StatsOverview, error) {
	var out StatsOverview
	if err := c.do(ctx, http.MethodGet, "/api/thongke/overview", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// TopProducts fetches the best-seller ranking.
func (c *Client) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []TopProduct
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/thongke/top-products?limit=%d", limit), nil, &out, true)
	return out, err
}
