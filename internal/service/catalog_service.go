package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/cafe-pos/internal/backend"
	"github.com/spec-kit/cafe-pos/internal/domain"
	apperrors "github.com/spec-kit/cafe-pos/pkg/util"
)

// Catalog is the backend surface the catalog service consumes.
type Catalog interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CatalogService fronts the backend menu with a short-lived cache so cart
// lookups don't hit the café API on every added item.
type CatalogService struct {
	backend Catalog
	ttl     time.Duration

	mu         sync.Mutex
	items      []domain.MenuItem
	categories []domain.Category
	fetchedAt  time.Time
}

// NewCatalogService builds the service. A zero TTL disables caching.
func NewCatalogService(b Catalog, ttl time.Duration) *CatalogService {
	return &CatalogService{backend: b, ttl: ttl}
}

var _ Catalog = (*backend.Client)(nil)

// MenuItems returns the sellable menu, optionally filtered by category id.
func (s *CatalogService) MenuItems(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	items, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return items, nil
	}
	filtered := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// Categories returns the menu groupings.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	_, categories, err := s.load(ctx)
	return categories, err
}

// MenuItem resolves one menu item by id.
func (s *CatalogService) MenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	items, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFound("menu item", map[string]any{"id": id})
}

// Invalidate drops the cache so the next call refetches.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedAt = time.Time{}
}

func (s *CatalogService) load(ctx context.Context) ([]domain.MenuItem, []domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl > 0 && !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl {
		return s.items, s.categories, nil
	}

	items, err := s.backend.ListMenuItems(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.backend.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Menu records without a known grouping surface under a synthetic
	// category so the screen can still reach them.
	hasOther := false
	for _, item := range items {
		if item.CategoryID == domain.CategoryOther {
			hasOther = true
			break
		}
	}
	if hasOther {
		categories = append(categories, domain.Category{ID: domain.CategoryOther, Name: "Khác"})
	}

	s.items = items
	s.categories = categories
	s.fetchedAt = time.Now()
	return s.items, s.categories, nil
}
