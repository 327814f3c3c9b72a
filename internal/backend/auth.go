package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/spec-kit/cafe-pos/internal/domain"
)

// LoginResult is the outcome of a successful credential exchange.
type LoginResult struct {
	Message string
	Token   string
	User    domain.Identity
}

// nhanVienDTO is the staff record as the backend sends it.
type nhanVienDTO struct {
	MaNV        string `json:"maNV"`
	TenNV       string `json:"tenNV"`
	ChucVu      string `json:"chucVu"`
	TaiKhoan    string `json:"taiKhoan"`
	Email       string `json:"email"`
	SoDienThoai string `json:"soDienThoai"`
	DiaChi      string `json:"diaChi"`
	TrangThai   string `json:"trangThai"`
}

func (d nhanVienDTO) toIdentity() (domain.Identity, error) {
	if d.MaNV == "" || d.TenNV == "" {
		return domain.Identity{}, errors.New("staff record missing id or name")
	}
	return domain.Identity{
		ID:          d.MaNV,
		DisplayName: d.TenNV,
		Role:        d.ChucVu,
		Username:    d.TaiKhoan,
		Email:       d.Email,
		Phone:       d.SoDienThoai,
		Address:     d.DiaChi,
		Status:      d.TrangThai,
	}, nil
}

type loginResponseDTO struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    nhanVienDTO `json:"user"`
}

type verifyResponseDTO struct {
	User nhanVienDTO `json:"user"`
}

// Login exchanges credentials for a bearer token and the staff identity.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := map[string]string{"taiKhoan": username, "matKhau": password}
	var resp loginResponseDTO
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &resp, false); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response missing token")
	}
	identity, err := resp.User.toIdentity()
	if err != nil {
		return nil, err
	}
	return &LoginResult{Message: resp.Message, Token: resp.Token, User: identity}, nil
}

// Verify asks the backend whether the given token still identifies a staff
// member. Any failure means the session is invalid.
func (c *Client) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	var resp verifyResponseDTO
	if err := c.doBearer(ctx, http.MethodGet, "/api/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	identity, err := resp.User.toIdentity()
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout notifies the backend that the session ended. Best effort.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doBearer(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}
