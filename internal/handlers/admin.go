// internal/handlers/admin.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/models"
	"github.com/hanmaru/mall-backend/internal/services"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	filter := services.AdminOrderFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.IsValid() {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "status"), nil)
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "created_after"), nil)
			return
		}
		filter.CreatedAfter = &t
	}
	if raw := c.Query("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "created_before"), nil)
			return
		}
		filter.CreatedBefore = &t
	}

	orders, total, err := h.adminService.ListOrders(filter)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(orders, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	order, err := h.adminService.GetOrder(orderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.adminService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// PUT /admin/orders/:id/tracking
func (h *AdminHandler) AssignTracking(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	var req services.AssignTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.adminService.AssignTracking(orderID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderTrackingAssigned),
		"order":   order,
	})
}

// POST /admin/orders/tracking/bulk
func (h *AdminHandler) BulkAssignTracking(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Items []services.BulkTrackingItem `json:"items" validate:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	results := h.adminService.BulkAssignTracking(req.Items)

	utils.SuccessResponse(c, gin.H{
		"results": results,
	})
}

// PUT /admin/orders/:id/delivered
func (h *AdminHandler) MarkDelivered(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	order, err := h.adminService.MarkDelivered(orderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderStatusUpdated),
		"order":   order,
	})
}

// DELETE /admin/orders/:id/tracking
func (h *AdminHandler) RemoveTracking(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "order ID"), nil)
		return
	}

	order, err := h.adminService.RemoveTracking(orderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderTrackingRemoved),
		"order":   order,
	})
}
