// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/services"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) GetCartItems(c *gin.Context) {
	clerkID, _ := utils.GetClerkIDFromContext(c)

	items, err := h.cartService.GetCartItems(clerkID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"items": items,
	})
}

// GET /cart/count
func (h *CartHandler) GetCartItemCount(c *gin.Context) {
	clerkID, _ := utils.GetClerkIDFromContext(c)

	count, err := h.cartService.GetCartItemCount(clerkID)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"count": count,
	})
}

// POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clerkID, _ := utils.GetClerkIDFromContext(c)

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	item, err := h.cartService.AddToCart(clerkID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

// PUT /cart/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clerkID, _ := utils.GetClerkIDFromContext(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "cart item ID"), nil)
		return
	}

	var req services.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	item, err := h.cartService.UpdateCartItemQuantity(clerkID, itemID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemUpdated),
		"item":    item,
	})
}

// DELETE /cart/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	clerkID, _ := utils.GetClerkIDFromContext(c)

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "cart item ID"), nil)
		return
	}

	if err := h.cartService.RemoveCartItem(clerkID, itemID); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
	})
}
