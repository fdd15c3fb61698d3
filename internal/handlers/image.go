// internal/handlers/image.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hanmaru/mall-backend/internal/i18n"
	"github.com/hanmaru/mall-backend/internal/services"
	"github.com/hanmaru/mall-backend/internal/utils"
)

type ImageHandler struct {
	storageService  *services.StorageService
	imageGenService *services.ImageGenService
}

func NewImageHandler(storageService *services.StorageService, imageGenService *services.ImageGenService) *ImageHandler {
	return &ImageHandler{
		storageService:  storageService,
		imageGenService: imageGenService,
	}
}

// POST /admin/products/images
//
// Accepts multipart form data with one or more files under "images".
func (h *ImageHandler) UploadImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "form"), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "images"), nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("products")
	uploaded := make([]*services.UploadResult, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}

		if err := h.storageService.ValidateImage(file); err != nil {
			file.Close()
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			logrus.WithError(err).WithField("filename", header.Filename).Error("Image upload failed")
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
			return
		}

		uploaded = append(uploaded, result)
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"images":  uploaded,
	})
}

// DELETE /admin/products/images
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.storageService.DeleteFileByURL(req.URL); err != nil {
		logrus.WithError(err).WithField("url", req.URL).Error("Image deletion failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyError))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySuccess),
	})
}

// POST /admin/products/generate-image
func (h *ImageHandler) GenerateImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	result, err := h.imageGenService.GenerateImage(&req)
	if err != nil {
		logrus.WithError(err).Error("Image generation failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyImageGenerationFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImageGenerated),
		"image":   result,
	})
}
