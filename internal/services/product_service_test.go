// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewProductService(s.db)
}

func (s *ProductServiceTestSuite) TestCreateProductValidation() {
	_, err := s.service.CreateProduct(&CreateProductRequest{
		Category: "clothing",
		Price:    10000,
	})
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = s.service.CreateProduct(&CreateProductRequest{
		Name:     "Free coat",
		Category: "clothing",
		Price:    0,
	})
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))
}

func (s *ProductServiceTestSuite) TestCreateAndGetProduct() {
	created, err := s.service.CreateProduct(&CreateProductRequest{
		Name:          "Wool coat",
		Description:   "Winter essential",
		Category:      "clothing",
		Price:         129000,
		StockQuantity: 10,
		Images:        []string{"https://cdn.example.com/coat-1.jpg"},
	})
	s.Require().NoError(err)
	s.True(created.IsActive)

	got, err := s.service.GetProduct(created.ID, false)
	s.Require().NoError(err)
	s.Equal("Wool coat", got.Name)
	s.Equal(int64(129000), got.Price)
	s.Require().Len(got.Images, 1)

	_, err = s.service.GetProduct(uuid.New(), false)
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *ProductServiceTestSuite) TestInactiveProductHiddenFromStorefront() {
	inactive := false
	created, err := s.service.CreateProduct(&CreateProductRequest{
		Name:     "Hidden parka",
		Category: "clothing",
		Price:    199000,
		IsActive: &inactive,
	})
	s.Require().NoError(err)

	_, err = s.service.GetProduct(created.ID, false)
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))

	// The back-office view still sees it
	got, err := s.service.GetProduct(created.ID, true)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
}

func (s *ProductServiceTestSuite) TestSearchProducts() {
	createTestProduct(s.T(), s.db, "Wool coat", 129000, 10, true)
	createTestProduct(s.T(), s.db, "Wool scarf", 29000, 0, true)
	createTestProduct(s.T(), s.db, "Denim jacket", 89000, 5, true)
	createTestProduct(s.T(), s.db, "Hidden hoodie", 49000, 5, false)

	// Storefront default: active only
	_, total, err := s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	// Back-office sees everything
	_, total, err = s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		IncludeInactive:  true,
	})
	s.Require().NoError(err)
	s.Equal(int64(4), total)

	// Case-insensitive name search
	products, total, err := s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc", Search: "wool"},
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(products, 2)

	// Price range
	priceMin, priceMax := int64(50000), int64(150000)
	_, total, err = s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		PriceMin:         &priceMin,
		PriceMax:         &priceMax,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	// In-stock filter drops the sold-out scarf
	inStock := true
	_, total, err = s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		InStock:          &inStock,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

func (s *ProductServiceTestSuite) TestUpdateProductPartial() {
	product := createTestProduct(s.T(), s.db, "Linen shirt", 45000, 10, true)

	newPrice := int64(39000)
	updated, err := s.service.UpdateProduct(product.ID, &UpdateProductRequest{Price: &newPrice})
	s.Require().NoError(err)
	s.Equal(int64(39000), updated.Price)
	s.Equal("Linen shirt", updated.Name)
	s.Equal(10, updated.StockQuantity)

	stock := 0
	updated, err = s.service.UpdateProduct(product.ID, &UpdateProductRequest{StockQuantity: &stock})
	s.Require().NoError(err)
	s.Equal(0, updated.StockQuantity)

	_, err = s.service.UpdateProduct(uuid.New(), &UpdateProductRequest{Price: &newPrice})
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *ProductServiceTestSuite) TestDeleteProductSoftDeletes() {
	product := createTestProduct(s.T(), s.db, "Old season parka", 199000, 5, true)

	s.Require().NoError(s.service.DeleteProduct(product.ID))

	_, err := s.service.GetProduct(product.ID, true)
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))

	_, total, err := s.service.SearchProducts(ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		IncludeInactive:  true,
	})
	s.Require().NoError(err)
	s.Equal(int64(0), total)

	s.Require().Error(s.service.DeleteProduct(product.ID))
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
