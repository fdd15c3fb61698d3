// internal/services/admin_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalOrders       int64 `json:"total_orders"`
	PendingOrders     int64 `json:"pending_orders"`
	ConfirmedOrders   int64 `json:"confirmed_orders"`
	ShippedOrders     int64 `json:"shipped_orders"`
	DeliveredOrders   int64 `json:"delivered_orders"`
	CancelledOrders   int64 `json:"cancelled_orders"`
	OrdersThisMonth   int64 `json:"orders_this_month"`
	TotalRevenue      int64 `json:"total_revenue"`
	MonthlyRevenue    int64 `json:"monthly_revenue"`
	TotalProducts     int64 `json:"total_products"`
	ActiveProducts    int64 `json:"active_products"`
	OutOfStockCount   int64 `json:"out_of_stock_count"`
	OpenCartItemCount int64 `json:"open_cart_item_count"`
}

type AdminOrderFilter struct {
	utils.PaginationParams
	Status        *models.OrderStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time          `json:"created_after,omitempty"`
	CreatedBefore *time.Time          `json:"created_before,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type AssignTrackingRequest struct {
	TrackingNumber  string `json:"tracking_number" validate:"required"`
	ShippingCarrier string `json:"shipping_carrier" validate:"required"`
}

type BulkTrackingItem struct {
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
	TrackingNumber  string    `json:"tracking_number" validate:"required"`
	ShippingCarrier string    `json:"shipping_carrier" validate:"required"`
}

// BulkTrackingResult reports the outcome of one item in a bulk update.
// Items are applied independently; a partial failure leaves the successful
// ones updated.
type BulkTrackingResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.ConfirmedOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusShipped).Count(&stats.ShippedOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.DeliveredOrders)
	s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.CancelledOrders)
	s.db.Model(&models.Order{}).Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth)

	s.db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, monthStart).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&stats.MonthlyRevenue)

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts)
	s.db.Model(&models.Product{}).Where("stock_quantity = 0").Count(&stats.OutOfStockCount)
	s.db.Model(&models.CartItem{}).Count(&stats.OpenCartItemCount)

	return stats, nil
}

// ListOrders returns orders for the back-office list page with status filter,
// search and pagination.
func (s *AdminService) ListOrders(filter AdminOrderFilter) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"clerk_id LIKE ? OR guest_email LIKE ? OR guest_phone LIKE ? OR tracking_number LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	allowedSortFields := []string{"created_at", "updated_at", "total_amount", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return orders, total, nil
}

// GetOrder returns any order regardless of owner; this is the back-office
// view.
func (s *AdminService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}
	return &order, nil
}

// UpdateOrderStatus moves an order along the transition table. Cancelled is
// terminal, so the old UI-only guard is now enforced here.
func (s *AdminService) UpdateOrderStatus(orderID uuid.UUID, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "status")
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderInvalidTransition,
			string(order.Status), string(newStatus))
	}

	if err := s.db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	s.db.Preload("Items").First(&order, "id = ?", orderID)
	return &order, nil
}

// AssignTracking records a tracking number and carrier. Only a confirmed
// order without an existing tracking number qualifies; assignment moves it
// to shipped.
func (s *AdminService) AssignTracking(orderID uuid.UUID, req *AssignTrackingRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "tracking").WithDetail(err.Error())
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if order.Status != models.OrderStatusConfirmed || order.TrackingNumber != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderTrackingPrecondition)
	}

	updates := map[string]interface{}{
		"tracking_number":  req.TrackingNumber,
		"shipping_carrier": req.ShippingCarrier,
		"status":           models.OrderStatusShipped,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	s.db.Preload("Items").First(&order, "id = ?", orderID)
	return &order, nil
}

// BulkAssignTracking applies each tuple independently and reports per-item
// outcomes; there is deliberately no all-or-nothing guarantee.
func (s *AdminService) BulkAssignTracking(items []BulkTrackingItem) []BulkTrackingResult {
	results := make([]BulkTrackingResult, 0, len(items))

	for _, item := range items {
		result := BulkTrackingResult{OrderID: item.OrderID}

		_, err := s.AssignTracking(item.OrderID, &AssignTrackingRequest{
			TrackingNumber:  item.TrackingNumber,
			ShippingCarrier: item.ShippingCarrier,
		})
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Success = true
		}

		results = append(results, result)
	}

	return results
}

// MarkDelivered is the single-row shipped to delivered update.
func (s *AdminService) MarkDelivered(orderID uuid.UUID) (*models.Order, error) {
	return s.UpdateOrderStatus(orderID, models.OrderStatusDelivered)
}

// RemoveTracking clears the tracking fields and returns a shipped order to
// confirmed so a new number can be assigned.
func (s *AdminService) RemoveTracking(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	if order.TrackingNumber == nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderTrackingPrecondition)
	}

	updates := map[string]interface{}{
		"tracking_number":  nil,
		"shipping_carrier": nil,
	}
	if order.Status == models.OrderStatusShipped {
		updates["status"] = models.OrderStatusConfirmed
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	s.db.Preload("Items").First(&order, "id = ?", orderID)
	return &order, nil
}
