// internal/services/product_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Description   string   `json:"description"`
	Category      string   `json:"category" validate:"required"`
	Price         int64    `json:"price" validate:"required,min=1"`
	StockQuantity int      `json:"stock_quantity" validate:"min=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
	Images        []string `json:"images,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Price         *int64   `json:"price,omitempty" validate:"omitempty,min=1"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
	Images        []string `json:"images,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	IncludeInactive bool
	InStock         *bool
	PriceMin        *int64
	PriceMax        *int64
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// SearchProducts lists the catalog. Storefront callers see active products
// only; the back-office list passes IncludeInactive.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if !params.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.InStock != nil && *params.InStock {
		query = query.Where("stock_quantity > 0")
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock_quantity"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return products, total, nil
}

// GetProduct returns one product. Inactive products are visible only when
// includeInactive is set (the back-office detail page).
func (s *ProductService) GetProduct(id uuid.UUID, includeInactive bool) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if !product.IsActive && !includeInactive {
		return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
	}

	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "product").WithDetail(err.Error())
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		Images:        pq.StringArray(req.Images),
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "product").WithDetail(err.Error())
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(err, i18n.KeyStoreError)
		}
	}

	s.db.First(&product, "id = ?", id)
	return &product, nil
}

// DeleteProduct soft-deletes the row. Existing order items keep their
// snapshots; cart rows that still point here get dropped by the cart reader.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
		}
		return apperr.Wrap(err, i18n.KeyStoreError)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return apperr.Wrap(err, i18n.KeyStoreError)
	}

	return nil
}
