// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AdminService
}

func (s *AdminServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewAdminService(s.db)
}

func (s *AdminServiceTestSuite) createOrder(status models.OrderStatus) *models.Order {
	clerkID := "clerk_1"
	order := &models.Order{
		ClerkID:     &clerkID,
		TotalAmount: 30000,
		Status:      status,
		ShippingAddress: models.ShippingAddress{
			Name:    "Kim Minji",
			Phone:   "010-1234-5678",
			ZipCode: "06236",
			Address: "123 Teheran-ro, Gangnam-gu, Seoul",
		},
	}
	s.Require().NoError(s.db.Create(order).Error)
	return order
}

func (s *AdminServiceTestSuite) TestUpdateOrderStatusFollowsTransitionTable() {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusConfirmed, models.OrderStatusShipped, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusDelivered, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		order := s.createOrder(tc.from)
		updated, err := s.service.UpdateOrderStatus(order.ID, tc.to)
		if tc.ok {
			s.Require().NoError(err, "%s -> %s", tc.from, tc.to)
			s.Equal(tc.to, updated.Status)
		} else {
			s.Require().Error(err, "%s -> %s", tc.from, tc.to)
			s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))

			var fresh models.Order
			s.Require().NoError(s.db.First(&fresh, "id = ?", order.ID).Error)
			s.Equal(tc.from, fresh.Status)
		}
	}
}

func (s *AdminServiceTestSuite) TestUpdateOrderStatusRejectsUnknownStatus() {
	order := s.createOrder(models.OrderStatusPending)

	_, err := s.service.UpdateOrderStatus(order.ID, models.OrderStatus("refunded"))
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))
}

func (s *AdminServiceTestSuite) TestUpdateOrderStatusMissingOrder() {
	_, err := s.service.UpdateOrderStatus(uuid.New(), models.OrderStatusConfirmed)
	s.Require().Error(err)
	s.Equal(apperr.KindNotFound, apperr.KindOf(err))
}

func (s *AdminServiceTestSuite) TestAssignTracking() {
	order := s.createOrder(models.OrderStatusConfirmed)

	updated, err := s.service.AssignTracking(order.ID, &AssignTrackingRequest{
		TrackingNumber:  "1234567890",
		ShippingCarrier: "CJ Logistics",
	})
	s.Require().NoError(err)
	s.Equal(models.OrderStatusShipped, updated.Status)
	s.Require().NotNil(updated.TrackingNumber)
	s.Equal("1234567890", *updated.TrackingNumber)
	s.Require().NotNil(updated.ShippingCarrier)
	s.Equal("CJ Logistics", *updated.ShippingCarrier)

	// A second assignment is refused
	_, err = s.service.AssignTracking(order.ID, &AssignTrackingRequest{
		TrackingNumber:  "999",
		ShippingCarrier: "Hanjin",
	})
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))
}

func (s *AdminServiceTestSuite) TestAssignTrackingRequiresConfirmedOrder() {
	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		order := s.createOrder(status)
		_, err := s.service.AssignTracking(order.ID, &AssignTrackingRequest{
			TrackingNumber:  "1234567890",
			ShippingCarrier: "CJ Logistics",
		})
		s.Require().Error(err, "status %s", status)
		s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))
	}
}

func (s *AdminServiceTestSuite) TestRemoveTrackingReturnsShippedToConfirmed() {
	order := s.createOrder(models.OrderStatusConfirmed)

	_, err := s.service.AssignTracking(order.ID, &AssignTrackingRequest{
		TrackingNumber:  "1234567890",
		ShippingCarrier: "CJ Logistics",
	})
	s.Require().NoError(err)

	updated, err := s.service.RemoveTracking(order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusConfirmed, updated.Status)
	s.Nil(updated.TrackingNumber)
	s.Nil(updated.ShippingCarrier)

	// Removing again fails; nothing left to remove
	_, err = s.service.RemoveTracking(order.ID)
	s.Require().Error(err)
	s.Equal(apperr.KindInvalidInput, apperr.KindOf(err))
}

func (s *AdminServiceTestSuite) TestBulkAssignTrackingReportsPerItem() {
	confirmed := s.createOrder(models.OrderStatusConfirmed)
	pending := s.createOrder(models.OrderStatusPending)
	missing := uuid.New()

	results := s.service.BulkAssignTracking([]BulkTrackingItem{
		{OrderID: confirmed.ID, TrackingNumber: "111", ShippingCarrier: "CJ Logistics"},
		{OrderID: pending.ID, TrackingNumber: "222", ShippingCarrier: "CJ Logistics"},
		{OrderID: missing, TrackingNumber: "333", ShippingCarrier: "CJ Logistics"},
	})

	s.Require().Len(results, 3)
	s.True(results[0].Success)
	s.False(results[1].Success)
	s.NotEmpty(results[1].Error)
	s.False(results[2].Success)
	s.NotEmpty(results[2].Error)

	// The failing items must not block the successful one
	var fresh models.Order
	s.Require().NoError(s.db.First(&fresh, "id = ?", confirmed.ID).Error)
	s.Equal(models.OrderStatusShipped, fresh.Status)
}

func (s *AdminServiceTestSuite) TestMarkDelivered() {
	order := s.createOrder(models.OrderStatusShipped)

	updated, err := s.service.MarkDelivered(order.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusDelivered, updated.Status)

	_, err = s.service.MarkDelivered(order.ID)
	s.Require().Error(err)
}

func (s *AdminServiceTestSuite) TestListOrdersFilters() {
	s.createOrder(models.OrderStatusPending)
	s.createOrder(models.OrderStatusPending)
	shipped := s.createOrder(models.OrderStatusShipped)

	email := "guest@example.com"
	guestOrder := &models.Order{
		TotalAmount: 15000,
		Status:      models.OrderStatusPending,
		GuestEmail:  &email,
		ShippingAddress: models.ShippingAddress{
			Name: "Guest", Phone: "010-9999-0000", ZipCode: "04524", Address: "Seoul",
		},
	}
	s.Require().NoError(s.db.Create(guestOrder).Error)

	status := models.OrderStatusPending
	orders, total, err := s.service.ListOrders(AdminOrderFilter{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		Status:           &status,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(orders, 3)

	orders, total, err = s.service.ListOrders(AdminOrderFilter{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc", Search: "guest@example"},
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(orders, 1)
	s.Equal(guestOrder.ID, orders[0].ID)

	status = models.OrderStatusShipped
	orders, total, err = s.service.ListOrders(AdminOrderFilter{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
		Status:           &status,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(orders, 1)
	s.Equal(shipped.ID, orders[0].ID)

	_, total, err = s.service.ListOrders(AdminOrderFilter{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Order: "desc"},
	})
	s.Require().NoError(err)
	s.Equal(int64(4), total)
}

func (s *AdminServiceTestSuite) TestDashboardStats() {
	s.createOrder(models.OrderStatusPending)
	s.createOrder(models.OrderStatusConfirmed)
	cancelled := s.createOrder(models.OrderStatusPending)
	_, err := s.service.UpdateOrderStatus(cancelled.ID, models.OrderStatusCancelled)
	s.Require().NoError(err)

	createTestProduct(s.T(), s.db, "In stock", 10000, 5, true)
	createTestProduct(s.T(), s.db, "Sold out", 10000, 0, true)
	createTestProduct(s.T(), s.db, "Hidden", 10000, 5, false)

	stats, err := s.service.GetDashboardStats()
	s.Require().NoError(err)

	s.Equal(int64(3), stats.TotalOrders)
	s.Equal(int64(1), stats.PendingOrders)
	s.Equal(int64(1), stats.ConfirmedOrders)
	s.Equal(int64(1), stats.CancelledOrders)

	// Cancelled orders are excluded from revenue
	s.Equal(int64(60000), stats.TotalRevenue)

	s.Equal(int64(3), stats.TotalProducts)
	s.Equal(int64(2), stats.ActiveProducts)
	s.Equal(int64(1), stats.OutOfStockCount)
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
