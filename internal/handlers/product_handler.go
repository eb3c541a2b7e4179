package handlers

import (
	"log"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The admin
// guard is applied to the mutating routes only; reads and rating submissions
// are public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, adminGuard fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", adminGuard, h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Patch("/:id/rating", h.HandleRateProduct)
	productRoutes.Put("/:id", adminGuard, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", adminGuard, h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	product, err := h.service.CreateProduct(req)
	if err != nil {
		return h.handleServiceError(c, "create product", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":     "Product created successfully",
		"product": product,
	})
}

// HandleGetProducts returns a page of products matching the optional
// category, brand, and text filters. Non-numeric or out-of-range page and
// limit values fall back to defaults rather than erroring.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := h.service.ListProducts(page, limit, c.Query("category"), c.Query("brand"), c.Query("q"))
	if err != nil {
		return h.handleServiceError(c, "list products", err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleGetProductByID returns a single product with its category resolved
// to a display name.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleServiceError(c, "get product", err)
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// HandleUpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid request body",
		})
	}

	product, err := h.service.UpdateProduct(c.Params("id"), req)
	if err != nil {
		return h.handleServiceError(c, "update product", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg":     "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct removes a product and returns the deleted record.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		return h.handleServiceError(c, "delete product", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg":     "Product deleted successfully",
		"product": product,
	})
}

// HandleRateProduct records one rating vote for a product.
func (h *ProductHandler) HandleRateProduct(c *fiber.Ctx) error {
	var req models.RateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"msg": "Invalid rating value",
		})
	}

	product, err := h.service.RateProduct(c.Params("id"), req)
	if err != nil {
		return h.handleServiceError(c, "rate product", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"msg":     "Rating added successfully",
		"product": product,
	})
}

// handleServiceError translates a service error into the response envelope.
// Client-safe messages only; wrapped causes are logged server-side.
func (h *ProductHandler) handleServiceError(c *fiber.Ctx, op string, err error) error {
	status := apperrors.StatusOf(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("Failed to %s: %v", op, err)
		return c.Status(status).JSON(fiber.Map{
			"msg": "Server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"msg": apperrors.Message(err),
	})
}
