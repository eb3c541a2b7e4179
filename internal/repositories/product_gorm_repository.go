package repositories

import (
	"errors"
	"fmt"

	"katalog/internal/apperrors"
	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// It expects the gorm.DB to be opened with TranslateError so unique-index
// violations surface as gorm.ErrDuplicatedKey.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create persists a new product. A unique-index violation on the name maps
// to Conflict; this backstops the service's pre-insert duplicate check.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict(fmt.Sprintf("Product '%s' already exists", product.Name))
		}
		return apperrors.StoreUnavailable("failed to create product", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Sprintf("failed to get product %s", id), err)
	}
	return &product, nil
}

// GetByName retrieves a single product by its exact, case-sensitive name.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Sprintf("failed to get product by name %q", name), err)
	}
	return &product, nil
}

// List returns one page of products matching the filter, newest first,
// along with the total match count. The filter is assumed to be clamped by
// the service; offset and limit are never taken from raw query values.
func (r *GORMProductRepository) List(filter models.ProductFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("category_id = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.Query != "" {
		// Text filtering over the indexed text fields. Tags are stored as a
		// JSON-encoded TEXT column, so a substring match covers them too.
		pattern := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.StoreUnavailable("failed to count products", err)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperrors.StoreUnavailable("failed to list products", err)
	}
	return products, total, nil
}

// Update replaces an existing record in a single statement, so two
// concurrent updates to the same product cannot interleave field-by-field.
// It is a plain UPDATE, never an insert: a product deleted between the
// caller's read and this write surfaces as NotFound instead of being
// re-created.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Updates(product) // Select("*") writes all fields, including zero values
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict(fmt.Sprintf("Product '%s' already exists", product.Name))
		}
		return apperrors.StoreUnavailable(fmt.Sprintf("failed to update product %s", product.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates does not return ErrRecordNotFound for a missing row, so
		// we check RowsAffected instead.
		return apperrors.NotFound("Product not found")
	}
	return nil
}

// Delete hard-deletes a product and returns the removed record.
func (r *GORMProductRepository) Delete(id string) (*models.Product, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return nil, apperrors.StoreUnavailable(fmt.Sprintf("failed to delete product %s", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

// IncrementRating bumps a single star bucket with one atomic UPDATE
// expression. There is no read-modify-write, so concurrent votes on the same
// product cannot lose updates.
func (r *GORMProductRepository) IncrementRating(id string, stars int) (*models.Product, error) {
	column, ok := models.RatingColumn(stars)
	if !ok {
		return nil, apperrors.InvalidArgument("Invalid rating value")
	}

	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return nil, apperrors.StoreUnavailable(fmt.Sprintf("failed to rate product %s", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("Product not found")
	}
	return r.GetByID(id)
}
