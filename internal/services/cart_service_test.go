// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CartService
}

func (s *CartServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewCartService(s.db)
}

func (s *CartServiceTestSuite) TestAddToCartRequiresIdentity() {
	product := createTestProduct(s.T(), s.db, "Wool coat", 129000, 5, true)

	_, err := s.service.AddToCart("", &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	s.Require().Error(err)
	s.Equal(apperr.KindAuthRequired, apperr.KindOf(err))
}

func (s *CartServiceTestSuite) TestAddToCartUnknownProduct() {
	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: uuid.New(), Quantity: 1})
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *CartServiceTestSuite) TestAddToCartInactiveProduct() {
	product := createTestProduct(s.T(), s.db, "Discontinued hoodie", 49000, 5, false)

	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *CartServiceTestSuite) TestAddToCartInsufficientStock() {
	product := createTestProduct(s.T(), s.db, "Limited sneakers", 159000, 2, true)

	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	s.Require().Error(err)
	s.Equal(apperr.KindInsufficientStock, apperr.KindOf(err))
}

func (s *CartServiceTestSuite) TestAddToCartMergesExistingRow() {
	product := createTestProduct(s.T(), s.db, "Denim jacket", 89000, 10, true)

	first, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	second, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	s.Require().NoError(err)

	// Same row, combined quantity
	s.Equal(first.ID, second.ID)
	s.Equal(5, second.Quantity)

	var count int64
	s.db.Model(&models.CartItem{}).Where("clerk_id = ?", "clerk_1").Count(&count)
	s.Equal(int64(1), count)
}

func (s *CartServiceTestSuite) TestAddToCartMergeRevalidatesStock() {
	product := createTestProduct(s.T(), s.db, "Canvas tote", 25000, 5, true)

	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	s.Require().NoError(err)

	// 3 + 3 exceeds the 5 in stock; the existing row must stay at 3
	_, err = s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	s.Require().Error(err)
	s.Equal(apperr.KindInsufficientStock, apperr.KindOf(err))

	var item models.CartItem
	s.Require().NoError(s.db.Where("clerk_id = ?", "clerk_1").First(&item).Error)
	s.Equal(3, item.Quantity)
}

func (s *CartServiceTestSuite) TestUpdateCartItemQuantity() {
	product := createTestProduct(s.T(), s.db, "Linen shirt", 45000, 10, true)

	item, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	s.Require().NoError(err)

	updated, err := s.service.UpdateCartItemQuantity("clerk_1", item.ID, &UpdateCartItemRequest{Quantity: 4})
	s.Require().NoError(err)
	s.Equal(4, updated.Quantity)

	// Another member must not be able to touch the row
	_, err = s.service.UpdateCartItemQuantity("clerk_2", item.ID, &UpdateCartItemRequest{Quantity: 1})
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))

	// Stock bounds still apply
	_, err = s.service.UpdateCartItemQuantity("clerk_1", item.ID, &UpdateCartItemRequest{Quantity: 11})
	s.Require().Error(err)
	s.Equal(apperr.KindInsufficientStock, apperr.KindOf(err))
}

func (s *CartServiceTestSuite) TestRemoveCartItemIsIdempotent() {
	product := createTestProduct(s.T(), s.db, "Baseball cap", 19000, 10, true)

	item, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveCartItem("clerk_1", item.ID))
	s.Require().NoError(s.service.RemoveCartItem("clerk_1", item.ID))
	s.Require().NoError(s.service.RemoveCartItem("clerk_1", uuid.New()))
}

func (s *CartServiceTestSuite) TestGetCartItemsDropsMissingProducts() {
	kept := createTestProduct(s.T(), s.db, "Knit sweater", 69000, 10, true)
	removed := createTestProduct(s.T(), s.db, "Old season parka", 199000, 10, true)

	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: kept.ID, Quantity: 1})
	s.Require().NoError(err)
	_, err = s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: removed.ID, Quantity: 1})
	s.Require().NoError(err)

	// Product goes away after the row was created
	s.Require().NoError(s.db.Delete(removed).Error)

	items, err := s.service.GetCartItems("clerk_1")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(kept.ID, items[0].ProductID)
}

func (s *CartServiceTestSuite) TestGetCartItemCount() {
	a := createTestProduct(s.T(), s.db, "Socks", 5000, 20, true)
	b := createTestProduct(s.T(), s.db, "Scarf", 29000, 20, true)

	_, err := s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: a.ID, Quantity: 2})
	s.Require().NoError(err)
	_, err = s.service.AddToCart("clerk_1", &AddToCartRequest{ProductID: b.ID, Quantity: 3})
	s.Require().NoError(err)

	count, err := s.service.GetCartItemCount("clerk_1")
	s.Require().NoError(err)
	s.Equal(5, count)

	// Unauthenticated callers get 0, not an error
	count, err = s.service.GetCartItemCount("")
	s.Require().NoError(err)
	s.Equal(0, count)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
