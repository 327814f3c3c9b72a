// Package backendtest runs an in-process fake of the café backend API for
// tests: real HS256 bearer tokens, bcrypt-checked credentials, and the same
// wire shapes the production backend emits.
package backendtest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/cafe-pos/internal/domain"
)

// MenuItemFixture seeds one sellable item.
type MenuItemFixture struct {
	ID           string
	Name         string
	Price        float64
	Unit         string
	CategoryID   string
	CategoryName string
}

// CategoryFixture seeds one menu grouping.
type CategoryFixture struct {
	ID   string
	Name string
}

type account struct {
	passwordHash []byte
	identity     domain.Identity
}

type stubResponse struct {
	status int
	body   any
}

// Server is the fake backend. Counters let tests assert which endpoints
// were actually reached.
type Server struct {
	*httptest.Server

	secret []byte

	mu          sync.Mutex
	accounts    map[string]account
	menu        []MenuItemFixture
	categories  []CategoryFixture
	stubs       map[string]stubResponse
	loginCalls  int
	verifyCalls int
	logoutCalls int
}

// New starts the fake backend.
func New() *Server {
	s := &Server{
		secret:   []byte("backendtest-secret"),
		accounts: make(map[string]account),
		stubs:    make(map[string]stubResponse),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.route))
	return s
}

// AddAccount registers credentials and the identity returned for them.
func (s *Server) AddAccount(username, password string, identity domain.Identity) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = account{passwordHash: hash, identity: identity}
}

// SeedMenu replaces the menu served by /api/mon.
func (s *Server) SeedMenu(items []MenuItemFixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = items
}

// SeedCategories replaces the groupings served by /api/loaimon.
func (s *Server) SeedCategories(categories []CategoryFixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// Stub registers a canned response for any other method+path.
func (s *Server) Stub(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stubs[method+" "+path] = stubResponse{status: status, body: body}
}

// LoginCalls reports how many login requests were served.
func (s *Server) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

// VerifyCalls reports how many verify requests were served.
func (s *Server) VerifyCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifyCalls
}

// LogoutCalls reports how many logout requests were served.
func (s *Server) LogoutCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutCalls
}

// MintToken issues a token for the username as the real backend would. Tests
// use it to seed a valid persisted session.
func (s *Server) MintToken(username string) string {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	switch r.Method + " " + r.URL.Path {
	case "POST /api/auth/login":
		s.handleLogin(w, r)
	case "GET /api/auth/verify":
		s.handleVerify(w, r)
	case "POST /api/auth/logout":
		s.mu.Lock()
		s.logoutCalls++
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	case "GET /api/mon":
		s.handleMenu(w, r)
	case "GET /api/loaimon":
		s.handleCategories(w, r)
	default:
		s.mu.Lock()
		stub, ok := s.stubs[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if ok {
			writeJSON(w, stub.status, stub.body)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.loginCalls++
	s.mu.Unlock()

	var req struct {
		TaiKhoan string `json:"taiKhoan"`
		MatKhau  string `json:"matKhau"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid payload"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.TaiKhoan]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.MatKhau)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Tài khoản hoặc mật khẩu không đúng"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Đăng nhập thành công",
		"token":   s.MintToken(req.TaiKhoan),
		"user":    wireIdentity(acct.identity),
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.verifyCalls++
	s.mu.Unlock()

	username, err := s.parseBearer(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
		return
	}

	s.mu.Lock()
	acct, ok := s.accounts[username]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unknown staff"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": wireIdentity(acct.identity)})
}

func (s *Server) handleMenu(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]map[string]any, 0, len(s.menu))
	for _, item := range s.menu {
		rec := map[string]any{
			"maMon":     item.ID,
			"tenMon":    item.Name,
			"donGia":    item.Price,
			"donViTinh": item.Unit,
		}
		if item.CategoryID != "" {
			rec["loaiMon"] = map[string]string{
				"maLoaiMon":  item.CategoryID,
				"tenLoaiMon": item.CategoryName,
			}
		}
		records = append(records, rec)
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]map[string]string, 0, len(s.categories))
	for _, category := range s.categories {
		records = append(records, map[string]string{
			"maLoaiMon":  category.ID,
			"tenLoaiMon": category.Name,
		})
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) parseBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", errors.New("missing bearer token")
	}

	parsed, err := jwt.ParseWithClaims(header[len(prefix):], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}

func wireIdentity(identity domain.Identity) map[string]any {
	return map[string]any{
		"maNV":        identity.ID,
		"tenNV":       identity.DisplayName,
		"chucVu":      identity.Role,
		"taiKhoan":    identity.Username,
		"email":       identity.Email,
		"soDienThoai": identity.Phone,
		"diaChi":      identity.Address,
		"trangThai":   identity.Status,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
