package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the store's contract closely enough for service tests: unique
// names, newest-first listing, and rating bumps that are atomic under the
// repository mutex.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Name == product.Name {
			return apperrors.Conflict(fmt.Sprintf("Product '%s' already exists", product.Name))
		}
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("Product not found")
	}
	return &product, nil
}

// GetByName returns a product by its exact name.
func (r *MockProductRepository) GetByName(name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			product := p
			return &product, nil
		}
	}
	return nil, apperrors.NotFound("Product not found")
}

// List returns one page of matching products, newest first, plus the total
// match count.
func (r *MockProductRepository) List(filter models.ProductFilter) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Category != "" && p.CategoryID != filter.Category {
			continue
		}
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		if filter.Query != "" && !matchesQuery(p, filter.Query) {
			continue
		}
		matches = append(matches, p)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := int64(len(matches))
	start := filter.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + filter.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func matchesQuery(p models.Product, q string) bool {
	if strings.Contains(p.Name, q) || strings.Contains(p.Description, q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(tag, q) {
			return true
		}
	}
	return false
}

// Update replaces an existing product record.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NotFound("Product not found")
	}
	for _, p := range r.products {
		if p.ID != product.ID && p.Name == product.Name {
			return apperrors.Conflict(fmt.Sprintf("Product '%s' already exists", product.Name))
		}
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product and returns the removed record.
func (r *MockProductRepository) Delete(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("Product not found")
	}
	delete(r.products, id)
	return &product, nil
}

// IncrementRating bumps one star bucket under the repository lock, matching
// the store's single-statement increment semantics.
func (r *MockProductRepository) IncrementRating(id string, stars int) (*models.Product, error) {
	if _, ok := models.RatingColumn(stars); !ok {
		return nil, apperrors.InvalidArgument("Invalid rating value")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NotFound("Product not found")
	}
	switch stars {
	case 1:
		product.Ratings.Stars1++
	case 2:
		product.Ratings.Stars2++
	case 3:
		product.Ratings.Stars3++
	case 4:
		product.Ratings.Stars4++
	case 5:
		product.Ratings.Stars5++
	case 6:
		product.Ratings.Stars6++
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}
