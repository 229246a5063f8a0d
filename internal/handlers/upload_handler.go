package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUploadSize = 10 << 20 // 10MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadHandler struct {
	blobs domain.BlobStore
}

func NewUploadHandler(blobs domain.BlobStore) *UploadHandler {
	return &UploadHandler{blobs: blobs}
}

// UploadImage handles POST /api/v1/upload. Vendor role is enforced by
// RoleMiddleware; this validates size and content before streaming to the
// blob store.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.blobs == nil {
		c.JSON(http.StatusServiceUnavailable, utils.ErrorResponse("Image storage is not configured"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("No file provided or file too large (Max 10MB)"))
		return
	}
	defer file.Close()

	// Sniff the real type from the first 512 bytes, then rewind.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to read file for validation"))
		return
	}

	contentType := http.DetectContentType(buffer[:n])
	fallbackExt, ok := allowedImageTypes[contentType]
	if !ok {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Unsupported file type. Please upload JPG, PNG, WEBP, or GIF"))
		return
	}

	// uuid names prevent path traversal and collisions
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = fallbackExt
	}
	safeFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	imageURL, err := h.blobs.Upload(c.Request.Context(), file, safeFilename)
	if err != nil {
		logrus.WithError(err).WithField("filename", safeFilename).Error("image upload failed")
		c.JSON(http.StatusBadGateway, utils.ErrorResponse("Image upload failed"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Image uploaded successfully", gin.H{
		"url":  imageURL,
		"size": header.Size,
		"type": contentType,
	}))
}
