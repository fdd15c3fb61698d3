// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"

	// Admin
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminActionSuccess = "admin.action_success"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Products
	KeyProductCreated     = "product.created"
	KeyProductUpdated     = "product.updated"
	KeyProductDeleted     = "product.deleted"
	KeyProductNotFound    = "product.not_found"
	KeyProductUnavailable = "product.unavailable"
	KeyProductOutOfStock  = "product.out_of_stock"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartItemNotFound = "cart.item_not_found"
	KeyCartEmpty        = "cart.empty"

	// Orders
	KeyOrderCreated              = "order.created"
	KeyOrderNotFound             = "order.not_found"
	KeyOrderTotalMismatch        = "order.total_mismatch"
	KeyOrderAddressIncomplete    = "order.address_incomplete"
	KeyOrderGuestContactRequired = "order.guest_contact_required"
	KeyOrderStockUnavailable     = "order.stock_unavailable"
	KeyOrderStatusUpdated        = "order.status_updated"
	KeyOrderInvalidTransition    = "order.invalid_transition"
	KeyOrderTrackingAssigned     = "order.tracking_assigned"
	KeyOrderTrackingRemoved      = "order.tracking_removed"
	KeyOrderTrackingPrecondition = "order.tracking_precondition"
	KeyOrderCreateFailed         = "order.create_failed"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Image generation
	KeyImageGenerated        = "image.generated"
	KeyImageGenerationFailed = "image.generation_failed"

	// Store
	KeyStoreError = "store.error"
)
