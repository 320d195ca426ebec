// Package catalog holds the in-memory product and category lists and the
// client-side search/filter over them. The remote catalog is read-mostly;
// all filtering happens locally.
package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/talkincode/brewhub/internal/domain"
	"github.com/talkincode/brewhub/internal/remote"
	"go.uber.org/zap"
)

// AllCategories is the sentinel category selection meaning "no filter".
const AllCategories = "All"

// Store caches the catalog plus the current search term and category
// selection. Search and category filter AND-compose: narrowing by one does
// not reset the other.
type Store struct {
	api remote.CatalogAPI

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	term       string
	category   string
}

func NewStore(api remote.CatalogAPI) *Store {
	return &Store{api: api, category: AllCategories}
}

// Load refreshes products and categories from the remote catalog.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.mu.Unlock()
	zap.L().Debug("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)))
	return nil
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Product looks a product up by ID.
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()
}

func (s *Store) SetCategory(name string) {
	s.mu.Lock()
	s.category = name
	s.mu.Unlock()
}

func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

func (s *Store) SelectedCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// Filtered applies the current search term and category selection.
func (s *Store) Filtered() []domain.Product {
	s.mu.RLock()
	term, category := s.term, s.category
	list := make([]domain.Product, len(s.products))
	copy(list, s.products)
	s.mu.RUnlock()
	return FilterByCategory(Search(list, term), category)
}

// Search returns the products whose name contains term,
// case-insensitively. An empty term is the identity.
func Search(list []domain.Product, term string) []domain.Product {
	if term == "" {
		return list
	}
	needle := strings.ToLower(term)
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByCategory returns the products whose category name equals name.
// AllCategories (and "") is the identity.
func FilterByCategory(list []domain.Product, name string) []domain.Product {
	if name == "" || name == AllCategories {
		return list
	}
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.CategoryName() == name {
			out = append(out, p)
		}
	}
	return out
}
