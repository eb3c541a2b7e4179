package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// CategoryResolver resolves a category identifier to a display name. It never
// fails; enrichment errors degrade to a fallback name inside the resolver.
type CategoryResolver interface {
	ResolveName(ctx context.Context, categoryID string) string
}

// EventPublisher emits catalog change notifications. Publishing is
// best-effort: the service logs failures and never surfaces them to callers.
type EventPublisher interface {
	PublishProductEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products: validation,
// duplicate checking, persistence, category enrichment, and rating votes.
type ProductService struct {
	repo       repositories.ProductRepository
	categories CategoryResolver
	events     EventPublisher
	validate   *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil, in which
// case change notifications are skipped.
func NewProductService(repo repositories.ProductRepository, categories CategoryResolver, events EventPublisher) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
		events:     events,
		validate:   validator.New(),
	}
}

// CreateProduct validates and persists a new product.
func (s *ProductService) CreateProduct(req models.CreateProductRequest) (*models.Product, error) {
	// Presence is checked on the pointers, not on values: price 0 and
	// stock 0 are legal and must not read as missing.
	if req.Name == nil || req.Description == nil || req.Price == nil || req.Stock == nil || req.Category == nil {
		return nil, apperrors.InvalidArgument("Some required fields are missing")
	}

	product := models.Product{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		CategoryID:  *req.Category,
		Brand:       models.DefaultBrand,
		Tags:        models.StringList{},
		Features:    models.StringList{},
		Images:      models.ImageList{},
		IsActive:    true,
	}
	if req.Off != nil {
		product.Off = *req.Off
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Tags != nil {
		product.Tags = models.StringList(req.Tags)
	}
	if req.Features != nil {
		product.Features = models.StringList(req.Features)
	}
	if req.ExtraNote != nil {
		product.ExtraNote = *req.ExtraNote
	}
	if req.Thumbnail != nil {
		product.Thumbnail = *req.Thumbnail
		if product.Thumbnail.Alt == "" {
			product.Thumbnail.Alt = "Product thumbnail"
		}
	}
	if req.Images != nil {
		product.Images = models.ImageList(req.Images)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsPremium != nil {
		product.IsPremium = *req.IsPremium
	}

	if err := s.validateProduct(&product); err != nil {
		return nil, err
	}

	// Exact-name duplicate check before any write.
	if _, err := s.repo.GetByName(product.Name); err == nil {
		return nil, apperrors.Conflict(fmt.Sprintf("Product '%s' already exists", product.Name))
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}

	s.publish("product.created", &product)
	return &product, nil
}

// GetProductByID fetches a single product and enriches its category. The
// enrichment call carries the request context; its failure never fails the
// read.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.ProductView, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	categoryName := models.UncategorizedName
	if s.categories != nil {
		categoryName = s.categories.ResolveName(ctx, product.CategoryID)
	}

	view := product.View(categoryName)
	return &view, nil
}

// ListProducts returns one page of products matching the filters. Raw page
// and limit values are clamped to sane positive bounds before they reach the
// store, so a hostile query can never request a negative skip or an
// unbounded result set.
func (s *ProductService) ListProducts(page, limit int, category, brand, query string) (*models.ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// Cap the page so (page-1)*limit cannot overflow into a negative
	// offset, which the store would read as "no offset".
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}

	filter := models.ProductFilter{
		Page:     page,
		Limit:    limit,
		Category: category,
		Brand:    brand,
		Query:    query,
	}

	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	return &models.ProductPage{
		Total:    total,
		Page:     page,
		Pages:    int64(math.Ceil(float64(total) / float64(limit))),
		Products: products,
	}, nil
}

// UpdateProduct applies a partial update to an existing product. Validation
// runs against the fully patched record before any write, so a violation
// leaves the stored record untouched.
func (s *ProductService) UpdateProduct(id string, req models.UpdateProductRequest) (*models.Product, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.CategoryID = *req.Category
	}
	if req.Off != nil {
		product.Off = *req.Off
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Tags != nil {
		product.Tags = models.StringList(*req.Tags)
	}
	if req.Features != nil {
		product.Features = models.StringList(*req.Features)
	}
	if req.ExtraNote != nil {
		product.ExtraNote = *req.ExtraNote
	}
	if req.Thumbnail != nil {
		product.Thumbnail = *req.Thumbnail
	}
	if req.Images != nil {
		product.Images = models.ImageList(*req.Images)
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsPremium != nil {
		product.IsPremium = *req.IsPremium
	}

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publish("product.updated", product)
	return product, nil
}

// DeleteProduct removes a product and returns the deleted record.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	product, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}

	s.publish("product.deleted", product)
	return product, nil
}

// RateProduct records one rating vote as a single atomic bucket increment.
func (s *ProductService) RateProduct(id string, req models.RateProductRequest) (*models.Product, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if req.Stars == nil {
		return nil, apperrors.InvalidArgument("Invalid rating value")
	}
	if _, ok := models.RatingColumn(*req.Stars); !ok {
		return nil, apperrors.InvalidArgument("Invalid rating value")
	}

	product, err := s.repo.IncrementRating(id, *req.Stars)
	if err != nil {
		return nil, err
	}

	s.publish("product.rated", product)
	return product, nil
}

// validateProduct enforces the schema-level range invariants on every write.
func (s *ProductService) validateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			e := validationErrors[0]
			return apperrors.InvalidArgument(fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag()))
		}
		return apperrors.InvalidArgument("Validation failed")
	}
	return nil
}

// validateID rejects identifiers that are not well-formed UUIDs before any
// store access.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.InvalidArgument("Invalid product id")
	}
	return nil
}

// publish sends a change notification if a publisher is configured. Failures
// are logged and swallowed; notifications never fail or delay a request.
func (s *ProductService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
	}
	if err := s.events.PublishProductEvent(event, payload); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
