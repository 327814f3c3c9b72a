package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/config"
	"github.com/spec-kit/cafe-pos/internal/domain"
)

// staticTokenSource is a fixed-token TokenSource for tests.
type staticTokenSource string

func (s staticTokenSource) Load(context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(baseURL string, tokens TokenSource) *Client {
	return NewClient(config.BackendConfig{BaseURL: baseURL}, tokens, zap.NewNop())
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "plain join", base: "http://localhost:4000", path: "/api/mon", want: "http://localhost:4000/api/mon"},
		{name: "trailing slash on base", base: "http://localhost:4000/", path: "api/mon", want: "http://localhost:4000/api/mon"},
		{name: "absolute path passes through", base: "http://localhost:4000", path: "https://cdn.example.com/x.png", want: "https://cdn.example.com/x.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinURL(tt.base, tt.path))
		})
	}
}

func TestLoginDecodesIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"message": "ok",
			"token": "tok-123",
			"user": {"maNV": "NV001", "tenNV": "Trần Thị Lan", "chucVu": "Thu ngân", "taiKhoan": "lan"}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	result, err := client.Login(context.Background(), "lan", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, domain.Identity{
		ID:          "NV001",
		DisplayName: "Trần Thị Lan",
		Role:        "Thu ngân",
		Username:    "lan",
	}, result.User)
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Tài khoản hoặc mật khẩu không đúng"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.Login(context.Background(), "lan", "bad")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Tài khoản hoặc mật khẩu không đúng", apiErr.Message)
}

func TestLoginRejectsMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "ok", "user": {"maNV": "NV001", "tenNV": "Lan"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.Login(context.Background(), "lan", "s3cret")
	assert.Error(t, err)
}

func TestVerifySendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"maNV": "NV001", "tenNV": "Lan", "chucVu": "Thu ngân"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	identity, err := client.Verify(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "NV001", identity.ID)
}

func TestInvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	_, err := client.Verify(context.Background(), "tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON response")
}

func TestListMenuItemsMapsAndValidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/mon", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"maMon": "M001", "tenMon": "Cà phê đen", "donGia": 25000, "donViTinh": "ly",
			 "loaiMon": {"maLoaiMon": "L01", "tenLoaiMon": "Cà phê"}},
			{"maMon": "", "tenMon": "broken record"},
			{"maMon": "M002", "tenMon": "Bánh mì", "donGia": 20000}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, staticTokenSource(""))
	items, err := client.ListMenuItems(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2, "malformed record must be dropped")
	assert.Equal(t, "M001", items[0].ID)
	assert.Equal(t, "L01", items[0].CategoryID)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(25000)))
	assert.Equal(t, domain.CategoryOther, items[1].CategoryID, "uncategorized items fall back to the synthetic group")
}

func TestAuthedRequestAttachesStoredToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, staticTokenSource("tok-456"))
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-456", gotAuth)
}

func TestAPIErrorEnvelopeWithCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": {"code": "DUPLICATE", "message": "already exists"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	err := client.CreateMaterial(context.Background(), Material{ID: "NL01", Name: "Sữa đặc", Unit: "hộp"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "DUPLICATE", apiErr.ErrorCode())
	assert.Equal(t, "already exists", apiErr.UserMessage())
}
