package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/shajghor/shajghor-backend/internal/errors"
	"github.com/shajghor/shajghor-backend/internal/middleware"
	"github.com/shajghor/shajghor-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: s3,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size"`
}

// PresignUpload issues a presigned PUT URL for one product image. The
// admin editor uploads directly to the bucket and stores the returned
// file URL on the product.
// POST /api/v1/admin/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := storage.ValidateContentType(req.ContentType); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WEBP images are allowed")
		return
	}

	if req.Size > 0 {
		if err := storage.ValidateFileSize(req.Size); err != nil {
			log.Warn("Rejected upload size", map[string]interface{}{
				"size": req.Size,
			})
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Images must be 5 MB or smaller")
			return
		}
	}

	upload, err := ctrl.storage.PresignUpload(req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare the upload")
		return
	}

	log.Info("Presigned upload URL issued", map[string]interface{}{
		"key": upload.Key,
	})
	c.JSON(http.StatusOK, upload)
}
