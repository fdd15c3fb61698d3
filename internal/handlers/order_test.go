// internal/handlers/order_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/services"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	s.db = db

	orderHandler := NewOrderHandler(services.NewOrderService(db))

	s.router = gin.New()
	orders := s.router.Group("/v1/orders")
	{
		// Stand-in for the token middleware: a test header carries the identity
		orders.POST("", func(c *gin.Context) {
			if id := c.GetHeader("X-Test-Clerk-ID"); id != "" {
				c.Set("clerk_id", id)
			}
		}, orderHandler.CreateOrder)
		orders.POST("/guest-lookup", orderHandler.GetGuestOrder)
	}
}

func (s *OrderHandlerTestSuite) seedProduct(price int64, stock int) *models.Product {
	product := &models.Product{
		Name:          "Wool coat",
		Category:      "clothing",
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *OrderHandlerTestSuite) postJSON(path, clerkID string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	if clerkID != "" {
		req.Header.Set("X-Test-Clerk-ID", clerkID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func checkoutBody(total int64) map[string]interface{} {
	return map[string]interface{}{
		"shipping_address": map[string]interface{}{
			"name":    "Kim Minji",
			"phone":   "010-1234-5678",
			"zipCode": "06236",
			"address": "123 Teheran-ro, Gangnam-gu, Seoul",
		},
		"expected_total": total,
	}
}

func (s *OrderHandlerTestSuite) TestMemberCheckout() {
	product := s.seedProduct(10000, 5)
	s.Require().NoError(s.db.Create(&models.CartItem{
		ClerkID:   "clerk_1",
		ProductID: product.ID,
		Quantity:  3,
	}).Error)

	w := s.postJSON("/v1/orders", "clerk_1", checkoutBody(30000))
	s.Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.True(response["success"].(bool))

	data := response["data"].(map[string]interface{})
	order := data["order"].(map[string]interface{})
	s.Equal("pending", order["status"])
	s.Equal(float64(30000), order["total_amount"])
	s.Equal(false, data["clearLocalCart"])
}

func (s *OrderHandlerTestSuite) TestCheckoutWithoutIdentity() {
	w := s.postJSON("/v1/orders", "", checkoutBody(0))
	s.Equal(http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.False(response["success"].(bool))

	errObj := response["error"].(map[string]interface{})
	s.Equal("AUTH_REQUIRED", errObj["code"])
	details := errObj["details"].(map[string]interface{})
	s.Equal(true, details["requiresAuth"])
}

func (s *OrderHandlerTestSuite) TestCheckoutEmptyCart() {
	w := s.postJSON("/v1/orders", "clerk_1", checkoutBody(0))
	s.Equal(http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	s.Equal("EMPTY_CART", errObj["code"])
}

func (s *OrderHandlerTestSuite) TestCheckoutInsufficientStock() {
	product := s.seedProduct(10000, 2)
	s.Require().NoError(s.db.Create(&models.CartItem{
		ClerkID:   "clerk_1",
		ProductID: product.ID,
		Quantity:  3,
	}).Error)

	w := s.postJSON("/v1/orders", "clerk_1", checkoutBody(30000))
	s.Equal(http.StatusConflict, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errObj := response["error"].(map[string]interface{})
	s.Equal("INSUFFICIENT_STOCK", errObj["code"])
}

func (s *OrderHandlerTestSuite) TestGuestCheckoutAndLookup() {
	product := s.seedProduct(25000, 10)

	body := checkoutBody(25000)
	body["guest"] = true
	body["guest_email"] = "guest@example.com"
	body["items"] = []map[string]interface{}{
		{"product_id": product.ID.String(), "quantity": 1},
	}

	w := s.postJSON("/v1/orders", "", body)
	s.Require().Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	s.Equal(true, data["clearLocalCart"])
	orderID := data["order"].(map[string]interface{})["id"].(string)

	w = s.postJSON("/v1/orders/guest-lookup", "", map[string]interface{}{
		"order_id": orderID,
		"email":    "guest@example.com",
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.postJSON("/v1/orders/guest-lookup", "", map[string]interface{}{
		"order_id": orderID,
		"email":    "other@example.com",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}
