package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/blob"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/share"
)

// ShareHandler builds the share output for a selection of variants: the
// plain-text message, the WhatsApp deep link, and the attachment URLs for
// the native share sheet.
type ShareHandler struct {
	repo   *repository.ProductsRepository
	blobs  blob.BlobStore
	logger *logrus.Logger
}

func NewShareHandler(repo *repository.ProductsRepository, blobs blob.BlobStore, logger *logrus.Logger) *ShareHandler {
	return &ShareHandler{repo: repo, blobs: blobs, logger: logger}
}

// ShareVariants resolves an image URL per selected variant. Each lookup is
// independent: a failed one drops that attachment but never aborts the
// share. With no attachments at all the client falls back to the deep link.
func (h *ShareHandler) ShareVariants(c *gin.Context) {
	var req models.ShareVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "variantIds", err.Error())
		return
	}

	product, err := h.repo.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if len(product.ColorVariants) == 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    models.CodeShareUnavailable,
				Message: "Product has no color variants to share",
			},
		})
		return
	}

	requested := make(map[string]bool, len(req.VariantIDs))
	for _, id := range req.VariantIDs {
		requested[id] = true
	}

	// Selection preserves the list's insertion order, not the request's.
	var selected []models.ColorVariant
	for _, variant := range product.ColorVariants {
		if requested[variant.ID] {
			selected = append(selected, variant)
		}
	}
	if len(selected) == 0 {
		validationError(c, "variantIds", "None of the requested variants exist on this product")
		return
	}

	urls := make(map[string]string, len(selected))
	for _, variant := range selected {
		if variant.ImagePath == "" {
			continue
		}
		url, err := h.blobs.DownloadURL(c.Request.Context(), variant.ImagePath)
		if err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"productId": product.ID,
				"variantId": variant.ID,
			}).Warn("failed to resolve share image URL")
			continue
		}
		urls[variant.ID] = url
	}

	message := share.Build(*product, selected, urls)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: message})
}
