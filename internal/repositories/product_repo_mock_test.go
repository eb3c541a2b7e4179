package repositories_test

import (
	"sync"
	"testing"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestMockProductRepository_ConcurrentRatingVotes(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := models.Product{Name: "Laptop", Description: "High performance laptop", Price: 1200, Stock: 10, CategoryID: "laptops-1"}
	assert.NoError(t, repo.Create(&product))

	const votes = 100
	var wg sync.WaitGroup
	wg.Add(votes)
	for i := 0; i < votes; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.IncrementRating(product.ID, 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(votes), stored.Ratings.Bucket(5))
	// Every other bucket stays untouched.
	for _, stars := range []int{1, 2, 3, 4, 6} {
		assert.Equal(t, int64(0), stored.Ratings.Bucket(stars))
	}
}

func TestMockProductRepository_DuplicateName(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	first := models.Product{Name: "Laptop", Description: "One", Price: 1, Stock: 1, CategoryID: "c1"}
	assert.NoError(t, repo.Create(&first))

	second := models.Product{Name: "Laptop", Description: "Two", Price: 2, Stock: 2, CategoryID: "c1"}
	err := repo.Create(&second)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	// The store still holds exactly one record with that name.
	products, total, err := repo.List(models.ProductFilter{Page: 1, Limit: 10, Query: "Laptop"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
}

func TestMockProductRepository_ListFilters(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	seed := []models.Product{
		{Name: "Laptop A", Description: "gaming laptop", Brand: "Acme", CategoryID: "laptops", Price: 1, Stock: 1, Tags: models.StringList{"gaming"}},
		{Name: "Laptop B", Description: "office laptop", Brand: "Bolt", CategoryID: "laptops", Price: 1, Stock: 1},
		{Name: "Mouse", Description: "wireless mouse", Brand: "Acme", CategoryID: "peripherals", Price: 1, Stock: 1},
	}
	for i := range seed {
		assert.NoError(t, repo.Create(&seed[i]))
	}

	_, total, err := repo.List(models.ProductFilter{Page: 1, Limit: 10, Category: "laptops"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(models.ProductFilter{Page: 1, Limit: 10, Brand: "Acme"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Text query matches tags as well as name and description.
	_, total, err = repo.List(models.ProductFilter{Page: 1, Limit: 10, Query: "gaming"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Pagination past the end returns an empty page, not an error.
	products, total, err := repo.List(models.ProductFilter{Page: 5, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, products)
}

func TestMockProductRepository_DeleteTwice(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := models.Product{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25, Stock: 50, CategoryID: "peripherals"}
	assert.NoError(t, repo.Create(&product))

	deleted, err := repo.Delete(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.Name, deleted.Name)

	_, err = repo.Delete(product.ID)
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}
