// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/hanmaru/mall-backend/internal/apperr"
	"github.com/hanmaru/mall-backend/internal/i18n"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAdminAccessDenied)
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, messageKey string) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", i18n.T(lang, messageKey), nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, errors)
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

// ServiceErrorResponse maps a service error kind to an HTTP status and a
// localized message. Every failure a handler surfaces goes through here, so
// no raw error text reaches a caller.
func ServiceErrorResponse(c *gin.Context, err error) {
	lang := GetLangFromContext(c)

	e, ok := err.(*apperr.Error)
	if !ok {
		InternalErrorResponse(c, i18n.T(lang, i18n.KeyStoreError))
		return
	}

	message := i18n.T(lang, e.MessageKey, e.Args...)

	switch e.Kind {
	case apperr.KindAuthRequired:
		ErrorResponse(c, http.StatusUnauthorized, "AUTH_REQUIRED", message, gin.H{"requiresAuth": true})
	case apperr.KindInvalidInput:
		ErrorResponse(c, http.StatusBadRequest, "INVALID_INPUT", message, nil)
	case apperr.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
	case apperr.KindInsufficientStock:
		ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", message, nil)
	case apperr.KindEmptyCart:
		ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", message, nil)
	case apperr.KindTotalMismatch:
		ErrorResponse(c, http.StatusConflict, "TOTAL_MISMATCH", message, nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, "STORE_ERROR", message, nil)
	}
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "ko"
}

func GetClerkIDFromContext(c *gin.Context) (string, bool) {
	if clerkID, exists := c.Get("clerk_id"); exists {
		if idStr, ok := clerkID.(string); ok && idStr != "" {
			return idStr, true
		}
	}
	return "", false
}

func GetRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
