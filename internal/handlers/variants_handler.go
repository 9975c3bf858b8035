package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/blob"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// VariantsHandler coordinates the variant lifecycle: every submission is
// validated first, performs at most one blob upload, and exactly one
// read-modify-write on the product document. If the document write fails
// after the upload succeeded, the blob is orphaned; there is no rollback.
type VariantsHandler struct {
	repo   *repository.ProductsRepository
	blobs  blob.BlobStore
	logger *logrus.Logger
}

func NewVariantsHandler(repo *repository.ProductsRepository, blobs blob.BlobStore, logger *logrus.Logger) *VariantsHandler {
	return &VariantsHandler{repo: repo, blobs: blobs, logger: logger}
}

// CreateVariant adds a color variant. The variant id is generated here,
// before persistence, so the image can be uploaded under its final path.
func (h *VariantsHandler) CreateVariant(c *gin.Context) {
	productID := c.Param("id")

	colorName := strings.TrimSpace(c.PostForm("colorName"))
	if colorName == "" {
		validationError(c, "colorName", "Please enter a color name")
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		validationError(c, "image", "Please select an image for the variant")
		return
	}

	variantID := uuid.NewString()

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	path := blob.VariantImagePath(productID, variantID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.blobs.Upload(c.Request.Context(), path, contentType, file); err != nil {
		respondError(c, err)
		return
	}

	active := true
	variant := models.ColorVariant{
		ID:         variantID,
		ImagePath:  path,
		ColorName:  colorName,
		VariantSKU: strings.TrimSpace(c.PostForm("variantSKU")),
		CreatedAt:  time.Now(),
		IsActive:   &active,
		Notes:      strings.TrimSpace(c.PostForm("notes")),
	}

	if err := h.repo.AddColorVariant(c.Request.Context(), productID, variant); err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{"productId": productID, "variantId": variantID}).Info("variant added")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: variant})
}

// UpdateVariant merges the submitted form fields over the existing variant.
// A new image is optional; when absent the existing imagePath stays as is.
func (h *VariantsHandler) UpdateVariant(c *gin.Context) {
	productID := c.Param("id")
	variantID := c.Param("variantId")

	updates := make(map[string]interface{})
	if colorName, ok := c.GetPostForm("colorName"); ok {
		colorName = strings.TrimSpace(colorName)
		if colorName == "" {
			validationError(c, "colorName", "Please enter a color name")
			return
		}
		updates["colorName"] = colorName
	}
	if variantSKU, ok := c.GetPostForm("variantSKU"); ok {
		updates["variantSKU"] = strings.TrimSpace(variantSKU)
	}
	if notes, ok := c.GetPostForm("notes"); ok {
		updates["notes"] = strings.TrimSpace(notes)
	}
	if isActive, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(isActive)
		if err != nil {
			validationError(c, "isActive", "isActive must be true or false")
			return
		}
		updates["isActive"] = active
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		path := blob.VariantImagePath(productID, variantID, fileHeader.Filename)
		contentType := fileHeader.Header.Get("Content-Type")
		if err := h.blobs.Upload(c.Request.Context(), path, contentType, file); err != nil {
			respondError(c, err)
			return
		}
		updates["imagePath"] = path
	}

	if err := h.repo.UpdateColorVariant(c.Request.Context(), productID, variantID, updates); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteVariant removes the variant from the embedded list. The image blob
// is left in storage.
func (h *VariantsHandler) DeleteVariant(c *gin.Context) {
	productID := c.Param("id")
	variantID := c.Param("variantId")

	if err := h.repo.DeleteColorVariant(c.Request.Context(), productID, variantID); err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{"productId": productID, "variantId": variantID}).Info("variant deleted")
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
