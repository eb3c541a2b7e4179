package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"katalog/internal/repositories"
)

func TestNewAppHealthCheck(t *testing.T) {
	app, _ := NewApp(repositories.NewMockProductRepository(), nil, nil, "test_jwt_secret")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestNewAppGuardsMutations(t *testing.T) {
	app, authService := NewApp(repositories.NewMockProductRepository(), nil, nil, "test_jwt_secret")

	// Reads are public.
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Mutations without a credential are rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// A verified non-admin is rejected with 403.
	token, err := authService.GenerateToken("user-1", "customer")
	assert.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
