package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
	"github.com/proximahr/proximahr-backend/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadController issues presigned URLs for profile image uploads.
type UploadController struct {
	storage storage.Storage
}

// NewUploadController creates an upload controller.
func NewUploadController(store storage.Storage) *UploadController {
	return &UploadController{storage: store}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignProfileImage handles POST /uploads/profile-image. The client
// PUTs the file to the returned URL, then saves the public URL on the
// profile.
func (ctrl *UploadController) PresignProfileImage(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	contentType := strings.ToLower(req.ContentType)
	if !allowedImageTypes[contentType] {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "only jpeg, png and webp images are allowed")
		return
	}

	uploadURL, key, err := ctrl.storage.PresignUpload(
		c.Request.Context(), "profile-images", req.Filename, contentType)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to presign upload", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "failed to presign upload")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, gin.H{
		"upload_url": uploadURL,
		"key":        key,
		"public_url": ctrl.storage.PublicURL(key),
	})
}
