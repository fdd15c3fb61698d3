// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/services"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
//
// Members check out against their server-side cart; guests send their line
// items inline. Identity is optional here, so the guest flow shares the
// route.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var clerkID *string
	if id, exists := utils.GetClerkIDFromContext(c); exists {
		clerkID = &id
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(clerkID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
		// Guests keep their cart in local storage; tell the client to clear it.
		"clearLocalCart": clerkID == nil,
	})
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	clerkID, _ := utils.GetClerkIDFromContext(c)
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.GetOrders(clerkID, params)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clerkID, _ := utils.GetClerkIDFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	order, err := h.orderService.GetOrder(clerkID, orderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// POST /orders/guest-lookup
func (h *OrderHandler) GetGuestOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GuestOrderLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.GetGuestOrder(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}
