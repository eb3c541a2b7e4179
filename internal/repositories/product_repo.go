package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations must return apperrors kinds for business outcomes
// (NotFound, Conflict) and StoreUnavailable for engine failures.
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	List(filter models.ProductFilter) ([]models.Product, int64, error)
	Update(product *models.Product) error
	Delete(id string) (*models.Product, error)
	IncrementRating(id string, stars int) (*models.Product, error)
}
