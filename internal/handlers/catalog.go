package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/store"
	"github.com/example/grocery/internal/utils"
)

// CatalogHandler serves categories, products, and bundles.
type CatalogHandler struct {
	store *store.Store
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(st *store.Store) *CatalogHandler {
	return &CatalogHandler{store: st}
}

// ListCategories returns all categories ordered by sort order.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.ListCategories()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    categories,
		"count":   len(categories),
	})
}

// GetCategory returns a single category by ID.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	category, err := h.store.GetCategory(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// ListProducts returns products with optional filters, paginated.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filters := parseProductFilters(c)
	page := utils.ParsePagination(c)

	products, err := h.store.ListProducts(filters, page.Limit, page.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"count":   len(products),
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

// GetProduct returns a single product by ID.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// SearchProducts matches products by name.
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Params("term"))
	if term == "" {
		return fiber.NewError(fiber.StatusBadRequest, "search term is required")
	}

	products, err := h.store.SearchProducts(term)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"data":        products,
		"count":       len(products),
		"search_term": term,
	})
}

// CreateProduct persists a new product.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.CoverImage == "" || payload.CurrentPrice == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name, cover_image, and current_price are required")
	}

	if err := h.store.CreateProduct(&payload); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "product created successfully",
		"data":    fiber.Map{"id": payload.ID},
	})
}

// UpdateProduct applies a partial update to a product.
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	updated, err := h.store.UpdateProduct(id, updates)
	if err != nil {
		return err
	}
	if !updated {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "product updated successfully"})
}

// ListBundles returns bundles with optional filters.
func (h *CatalogHandler) ListBundles(c *fiber.Ctx) error {
	filters := parseProductFilters(c)

	bundles, err := h.store.ListBundles(filters)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bundles,
		"count":   len(bundles),
	})
}

// GetBundle returns an active bundle with product details populated per item.
func (h *CatalogHandler) GetBundle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	bundle, err := h.store.GetBundle(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "bundle not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": bundle})
}

// CreateBundle persists a new bundle.
func (h *CatalogHandler) CreateBundle(c *fiber.Ctx) error {
	var payload models.Bundle
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.CoverImage == "" || payload.CurrentPrice == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name, cover_image, and current_price are required")
	}

	if err := h.store.CreateBundle(&payload); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "bundle created successfully",
		"data":    fiber.Map{"id": payload.ID},
	})
}

// UpdateBundle applies a partial update to a bundle.
func (h *CatalogHandler) UpdateBundle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	updated, err := h.store.UpdateBundle(id, updates)
	if err != nil {
		return err
	}
	if !updated {
		return fiber.NewError(fiber.StatusNotFound, "bundle not found")
	}

	return c.JSON(fiber.Map{"success": true, "message": "bundle updated successfully"})
}

func parseProductFilters(c *fiber.Ctx) store.ProductFilters {
	filters := store.ProductFilters{}

	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filters.CategoryID = &id
		}
	}
	if v := c.Query("is_new"); v != "" {
		isNew := v == "true"
		filters.IsNew = &isNew
	}
	if v := c.Query("is_popular"); v != "" {
		isPopular := v == "true"
		filters.IsPopular = &isPopular
	}
	if v := c.Query("is_active"); v != "" {
		isActive := v == "true"
		filters.IsActive = &isActive
	}

	return filters
}
