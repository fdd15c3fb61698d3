// internal/services/cart_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/database"
	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart upserts a (member, product) cart row. Adding a product a second
// time increases the existing row's quantity, and stock is re-validated
// against the combined total.
func (s *CartService) AddToCart(clerkID string, req *AddToCartRequest) (*models.CartItem, error) {
	if clerkID == "" {
		return nil, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "quantity").WithDetail(err.Error())
	}

	if req.ProductID == uuid.Nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationRequired, "product_id")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if !product.IsActive {
		return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductUnavailable)
	}

	if product.StockQuantity < req.Quantity {
		return nil, apperr.New(apperr.KindInsufficientStock, i18n.KeyProductOutOfStock)
	}

	// The read-modify-write below races with itself for the same
	// (member, product) pair, so it runs inside one transaction.
	var item models.CartItem
	txErr := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		err := tx.Where("clerk_id = ? AND product_id = ?", clerkID, req.ProductID).First(&item).Error

		switch {
		case err == nil:
			newQuantity := item.Quantity + req.Quantity
			if product.StockQuantity < newQuantity {
				return apperr.New(apperr.KindInsufficientStock, i18n.KeyProductOutOfStock)
			}
			if err := tx.Model(&item).Update("quantity", newQuantity).Error; err != nil {
				return apperr.Wrap(err, i18n.KeyStoreError)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				ClerkID:   clerkID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperr.Wrap(err, i18n.KeyStoreError)
			}
		default:
			return apperr.Wrap(err, i18n.KeyStoreError)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Return the row joined with current product data
	s.db.Preload("Product").First(&item, "id = ?", item.ID)

	return &item, nil
}

// UpdateCartItemQuantity writes a new quantity on a row owned by the caller,
// re-validating against the product's current stock.
func (s *CartService) UpdateCartItemQuantity(clerkID string, cartItemID uuid.UUID, req *UpdateCartItemRequest) (*models.CartItem, error) {
	if clerkID == "" {
		return nil, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "quantity").WithDetail(err.Error())
	}

	var item models.CartItem
	if err := s.db.Where("id = ? AND clerk_id = ?", cartItemID, clerkID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyCartItemNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if !product.IsActive {
		return nil, apperr.New(apperr.KindNotFound, i18n.KeyProductUnavailable)
	}

	if product.StockQuantity < req.Quantity {
		return nil, apperr.New(apperr.KindInsufficientStock, i18n.KeyProductOutOfStock)
	}

	if err := s.db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	s.db.Preload("Product").First(&item, "id = ?", item.ID)

	return &item, nil
}

// RemoveCartItem deletes a row scoped to the caller. Deleting a missing or
// foreign row is not an error; the caller-visible contract is idempotent.
func (s *CartService) RemoveCartItem(clerkID string, cartItemID uuid.UUID) error {
	if clerkID == "" {
		return apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	if err := s.db.Where("id = ? AND clerk_id = ?", cartItemID, clerkID).
		Delete(&models.CartItem{}).Error; err != nil {
		return apperr.Wrap(err, i18n.KeyStoreError)
	}

	return nil
}

// GetCartItems returns the caller's rows joined with current product data.
// Rows whose product can no longer be found are dropped from the result and
// logged, not surfaced as errors.
func (s *CartService) GetCartItems(clerkID string) ([]models.CartItem, error) {
	if clerkID == "" {
		return nil, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	var items []models.CartItem
	if err := s.db.Preload("Product").
		Where("clerk_id = ?", clerkID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	result := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID == uuid.Nil {
			logrus.WithFields(logrus.Fields{
				"cart_item_id": item.ID,
				"product_id":   item.ProductID,
				"clerk_id":     clerkID,
			}).Warn("Dropping cart item with missing product")
			continue
		}
		result = append(result, item)
	}

	return result, nil
}

// GetCartItemCount returns the sum of quantities across the caller's rows.
// Unauthenticated callers get 0, not an error.
func (s *CartService) GetCartItemCount(clerkID string) (int, error) {
	if clerkID == "" {
		return 0, nil
	}

	var count int64
	if err := s.db.Model(&models.CartItem{}).
		Where("clerk_id = ?", clerkID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error; err != nil {
		return 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return int(count), nil
}
