// internal/services/order_service.go
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/utils"
)

// totalTolerance absorbs rounding differences between the client-computed
// total and the server-computed one, in currency units.
const totalTolerance = 1

type OrderService struct {
	db *gorm.DB
}

type ShippingAddressRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required,phone"`
	ZipCode       string `json:"zipCode" validate:"required,zipcode"`
	Address       string `json:"address" validate:"required"`
	DetailAddress string `json:"detailAddress"`
}

type OrderLineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	OrderNote       string                 `json:"order_note,omitempty"`
	ExpectedTotal   int64                  `json:"expected_total" validate:"min=0"`

	// Guest checkout: the cart lives on the client, so the line items arrive
	// inline together with a contact credential for later lookup.
	Guest      bool                   `json:"guest,omitempty"`
	GuestEmail string                 `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone string                 `json:"guest_phone,omitempty"`
	Items      []OrderLineItemRequest `json:"items,omitempty"`
}

type GuestOrderLookupRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Email   string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string    `json:"phone,omitempty"`
}

// lineItem is the normalized form of a member cart row or a guest-supplied
// item.
type lineItem struct {
	ProductID uuid.UUID
	Quantity  int
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder turns the caller's pending line items into a persisted order
// with snapshot items, enforcing stock and the submitted total. Validation,
// the order insert, the item inserts and the stock decrements all run in one
// database transaction, so a failure at any point leaves no partial order
// and concurrent checkouts cannot drive stock negative.
func (s *OrderService) CreateOrder(clerkID *string, req *CreateOrderRequest) (*models.Order, error) {
	// Step 1: resolve identity
	if (clerkID == nil || *clerkID == "") && !req.Guest {
		return nil, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}
	isGuest := clerkID == nil || *clerkID == ""

	if isGuest && req.GuestEmail == "" && req.GuestPhone == "" {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderGuestContactRequired)
	}

	// Step 2: shipping address completeness
	if err := utils.ValidateStruct(&req.ShippingAddress); err != nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderAddressIncomplete).WithDetail(err.Error())
	}

	// Step 3: load line items
	items, err := s.loadLineItems(clerkID, req)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindEmptyCart, i18n.KeyCartEmpty)
	}

	var order *models.Order

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		// Step 4: batched product load
		productIDs := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}

		var products []models.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id IN ?", productIDs).
			Find(&products).Error; err != nil {
			return apperr.Wrap(err, i18n.KeyStoreError)
		}

		productByID := make(map[uuid.UUID]*models.Product, len(products))
		for i := range products {
			productByID[products[i].ID] = &products[i]
		}

		// Step 5: stock/activity validation, accumulating every violation
		var violations []string
		for _, it := range items {
			product, ok := productByID[it.ProductID]
			switch {
			case !ok:
				violations = append(violations, it.ProductID.String()+": not found")
			case !product.IsActive:
				violations = append(violations, product.Name+": unavailable")
			case product.StockQuantity < it.Quantity:
				violations = append(violations, product.Name+": insufficient stock")
			}
		}
		if len(violations) > 0 {
			joined := strings.Join(violations, ", ")
			return apperr.New(apperr.KindInsufficientStock, i18n.KeyOrderStockUnavailable, joined).WithDetail(joined)
		}

		// Step 6: total reconciliation against authoritative prices
		var serverTotal int64
		for _, it := range items {
			serverTotal += productByID[it.ProductID].Price * int64(it.Quantity)
		}

		diff := serverTotal - req.ExpectedTotal
		if diff < 0 {
			diff = -diff
		}
		if diff > totalTolerance {
			return apperr.New(apperr.KindTotalMismatch, i18n.KeyOrderTotalMismatch)
		}

		// Step 7: order header
		order = &models.Order{
			TotalAmount: serverTotal,
			Status:      models.OrderStatusPending,
			ShippingAddress: models.ShippingAddress{
				Name:          req.ShippingAddress.Name,
				Phone:         req.ShippingAddress.Phone,
				ZipCode:       req.ShippingAddress.ZipCode,
				Address:       req.ShippingAddress.Address,
				DetailAddress: req.ShippingAddress.DetailAddress,
			},
		}
		if !isGuest {
			order.ClerkID = clerkID
		}
		if req.OrderNote != "" {
			note := req.OrderNote
			order.OrderNote = &note
		}
		if req.GuestEmail != "" {
			email := req.GuestEmail
			order.GuestEmail = &email
		}
		if req.GuestPhone != "" {
			phone := req.GuestPhone
			order.GuestPhone = &phone
		}

		if err := tx.Create(order).Error; err != nil {
			return apperr.Wrap(err, i18n.KeyOrderCreateFailed)
		}

		// Step 8: snapshot line items in one batched insert. A failure here
		// rolls the order header back with it; no orphan order survives.
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			product := productByID[it.ProductID]
			orderItems = append(orderItems, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				Price:       product.Price,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return apperr.Wrap(err, i18n.KeyOrderCreateFailed)
		}
		order.Items = orderItems

		// Step 9: stock decrement, guarded so a concurrent checkout that got
		// in first rolls this one back instead of overselling.
		for _, it := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", it.ProductID, it.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity))
			if res.Error != nil {
				return apperr.Wrap(res.Error, i18n.KeyOrderCreateFailed)
			}
			if res.RowsAffected == 0 {
				name := productByID[it.ProductID].Name
				return apperr.New(apperr.KindInsufficientStock, i18n.KeyOrderStockUnavailable, name).WithDetail(name + ": insufficient stock")
			}
		}

		return nil
	})

	if txErr != nil {
		if _, ok := txErr.(*apperr.Error); ok {
			return nil, txErr
		}
		return nil, apperr.Wrap(txErr, i18n.KeyOrderCreateFailed)
	}

	// Step 10: clear the member's cart. Best-effort; the order is already
	// placed, so a failure is logged and not surfaced.
	if !isGuest {
		if err := s.db.Where("clerk_id = ?", *clerkID).Delete(&models.CartItem{}).Error; err != nil {
			logrus.WithError(err).WithField("clerk_id", *clerkID).
				Warn("Failed to clear cart after order creation")
		}
	}

	// Step 11: re-fetch for the response; fall back to the values in hand.
	var fresh models.Order
	if err := s.db.Preload("Items").First(&fresh, "id = ?", order.ID).Error; err == nil {
		return &fresh, nil
	}

	return order, nil
}

func (s *OrderService) loadLineItems(clerkID *string, req *CreateOrderRequest) ([]lineItem, error) {
	if clerkID != nil && *clerkID != "" {
		var rows []models.CartItem
		if err := s.db.Where("clerk_id = ?", *clerkID).Order("created_at").Find(&rows).Error; err != nil {
			return nil, apperr.Wrap(err, i18n.KeyStoreError)
		}
		items := make([]lineItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, lineItem{ProductID: row.ProductID, Quantity: row.Quantity})
		}
		return items, nil
	}

	items := make([]lineItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == uuid.Nil || it.Quantity < 1 {
			return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationInvalid, "items")
		}
		items = append(items, lineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items, nil
}

// GetOrder returns a single order scoped to the caller.
func (s *OrderService) GetOrder(clerkID string, orderID uuid.UUID) (*models.Order, error) {
	if clerkID == "" {
		return nil, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	var order models.Order
	if err := s.db.Preload("Items").
		Where("id = ? AND clerk_id = ?", orderID, clerkID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return &order, nil
}

// GetOrders returns the caller's orders, newest first.
func (s *OrderService) GetOrders(clerkID string, params utils.PaginationParams) ([]models.Order, int64, error) {
	if clerkID == "" {
		return nil, 0, apperr.New(apperr.KindAuthRequired, i18n.KeyAuthRequired)
	}

	query := s.db.Model(&models.Order{}).Where("clerk_id = ?", clerkID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query.Preload("Items").Order("created_at DESC"), params).
		Find(&orders).Error; err != nil {
		return nil, 0, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return orders, total, nil
}

// GetGuestOrder looks up an order with no owning identity by order id plus
// either the guest email or the guest phone recorded at creation. This is
// the only read path that skips identity-based authorization.
func (s *OrderService) GetGuestOrder(req *GuestOrderLookupRequest) (*models.Order, error) {
	if req.OrderID == uuid.Nil {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyValidationRequired, "order_id")
	}
	if req.Email == "" && req.Phone == "" {
		return nil, apperr.New(apperr.KindInvalidInput, i18n.KeyOrderGuestContactRequired)
	}

	query := s.db.Preload("Items").Where("id = ? AND clerk_id IS NULL", req.OrderID)

	switch {
	case req.Email != "" && req.Phone != "":
		query = query.Where("guest_email = ? OR guest_phone = ?", req.Email, req.Phone)
	case req.Email != "":
		query = query.Where("guest_email = ?", req.Email)
	default:
		query = query.Where("guest_phone = ?", req.Phone)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, i18n.KeyOrderNotFound)
		}
		return nil, apperr.Wrap(err, i18n.KeyStoreError)
	}

	return &order, nil
}
