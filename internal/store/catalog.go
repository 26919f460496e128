package store

import (
	"github.com/google/uuid"

	"github.com/example/grocery/internal/models"
)

// ProductFilters narrows product and bundle listings.
type ProductFilters struct {
	CategoryID *uuid.UUID
	IsNew      *bool
	IsPopular  *bool
	IsActive   *bool
}

// ListCategories returns all categories ordered by sort_order.
func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("sort_order asc").Find(&categories).Error
	return categories, err
}

// GetCategory loads one category by id.
func (s *Store) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListProducts returns products matching the filters. A non-positive limit
// disables pagination.
func (s *Store) ListProducts(filters ProductFilters, limit, offset int) ([]models.Product, error) {
	query := s.db.Model(&models.Product{})
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.IsNew != nil {
		query = query.Where("is_new = ?", *filters.IsNew)
	}
	if filters.IsPopular != nil {
		query = query.Where("is_popular = ?", *filters.IsPopular)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var products []models.Product
	err := query.Find(&products).Error
	return products, err
}

// GetProduct loads one product by id.
func (s *Store) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct persists a new product.
func (s *Store) CreateProduct(product *models.Product) error {
	return s.db.Create(product).Error
}

// UpdateProduct applies the given column updates; reports whether a row matched.
func (s *Store) UpdateProduct(id uuid.UUID, updates map[string]interface{}) (bool, error) {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// SearchProducts matches products by name. The ranked full-text query runs
// first; on failure or an empty hit set it falls back to a case-insensitive
// substring scan, mirroring the text-index-or-regex behavior of the store.
func (s *Store) SearchProducts(term string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Raw(
		`SELECT * FROM products
		 WHERE to_tsvector('simple', name) @@ plainto_tsquery('simple', ?)
		 ORDER BY ts_rank(to_tsvector('simple', name), plainto_tsquery('simple', ?)) DESC`,
		term, term,
	).Scan(&products).Error
	if err == nil && len(products) > 0 {
		return products, nil
	}

	products = nil
	fallbackErr := s.db.
		Where("LOWER(name) LIKE LOWER(?)", "%"+term+"%").
		Find(&products).Error
	return products, fallbackErr
}

// ListBundles returns bundles matching the filters.
func (s *Store) ListBundles(filters ProductFilters) ([]models.Bundle, error) {
	query := s.db.Model(&models.Bundle{})

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.IsPopular != nil {
		query = query.Where("is_popular = ?", *filters.IsPopular)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	var bundles []models.Bundle
	err := query.Preload("Items").Find(&bundles).Error
	return bundles, err
}

// GetBundle loads an active bundle and populates product details per item.
func (s *Store) GetBundle(id uuid.UUID) (*models.Bundle, error) {
	var bundle models.Bundle
	if err := s.db.Preload("Items").
		First(&bundle, "id = ? AND is_active = ?", id, true).Error; err != nil {
		return nil, err
	}

	if len(bundle.Items) > 0 {
		productIDs := make([]uuid.UUID, 0, len(bundle.Items))
		for _, item := range bundle.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		var products []models.Product
		if err := s.db.Where("id IN ? AND is_active = ?", productIDs, true).
			Find(&products).Error; err != nil {
			return nil, err
		}

		productMap := make(map[uuid.UUID]*models.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		for i := range bundle.Items {
			bundle.Items[i].ProductDetails = productMap[bundle.Items[i].ProductID]
		}
	}

	return &bundle, nil
}

// CreateBundle persists a new bundle with its items.
func (s *Store) CreateBundle(bundle *models.Bundle) error {
	return s.db.Create(bundle).Error
}

// UpdateBundle applies the given column updates; reports whether a row matched.
func (s *Store) UpdateBundle(id uuid.UUID, updates map[string]interface{}) (bool, error) {
	result := s.db.Model(&models.Bundle{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected > 0, result.Error
}
