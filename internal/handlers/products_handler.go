package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/blob"
	"catalog-service/internal/models"
	"catalog-service/internal/query"
	"catalog-service/internal/repository"
)

// ProductsHandler owns product creation, the main-image upload step, detail
// reads, and the filtered listing.
type ProductsHandler struct {
	repo        *repository.ProductsRepository
	catalog     *repository.CatalogRepository
	blobs       blob.BlobStore
	filterState *query.FilterStateStore
	logger      *logrus.Logger
}

func NewProductsHandler(
	repo *repository.ProductsRepository,
	catalog *repository.CatalogRepository,
	blobs blob.BlobStore,
	filterState *query.FilterStateStore,
	logger *logrus.Logger,
) *ProductsHandler {
	return &ProductsHandler{
		repo:        repo,
		catalog:     catalog,
		blobs:       blobs,
		filterState: filterState,
		logger:      logger,
	}
}

// CreateProduct creates the product document first — the id is needed for
// the storage path — with an empty variant list and a placeholder image
// path. The main image arrives in a second step via UploadMainImage.
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "", err.Error())
		return
	}

	product := models.Product{
		SKU:           strings.TrimSpace(req.SKU),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		FabricTypeID:  req.FabricTypeID,
		Price:         req.Price,
		MainImagePath: "",
		ColorVariants: []models.ColorVariant{},
		CreatedBy:     c.GetString("user_id"),
		Description:   strings.TrimSpace(req.Description),
	}

	// Panno only applies to the Embroidery category; drop it silently for
	// anything else, matching the form behavior.
	if panno := strings.TrimSpace(req.Panno); panno != "" {
		category, err := h.catalog.GetCategory(c.Request.Context(), req.CategoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		if category != nil && strings.EqualFold(category.Name, "embroidery") {
			product.Panno = panno
		}
	}

	id, err := h.repo.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{"productId": id, "sku": product.SKU}).Info("product created")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: product})
}

// UploadMainImage uploads the product's main image and commits the storage
// path onto the document.
func (h *ProductsHandler) UploadMainImage(c *gin.Context) {
	productID := c.Param("id")

	if _, err := h.repo.GetProductByID(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		validationError(c, "image", "Please select a main product image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	path := blob.MainImagePath(productID, fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.blobs.Upload(c.Request.Context(), path, contentType, file); err != nil {
		respondError(c, err)
		return
	}

	if err := h.repo.SetMainImagePath(c.Request.Context(), productID, path); err != nil {
		// The blob is already uploaded; a failed commit orphans it. That
		// is accepted — there is no rollback of completed uploads.
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"mainImagePath": path}})
}

// productView is the detail payload: the document plus resolved image URLs.
type productView struct {
	models.Product
	MainImageURL     string            `json:"mainImageUrl,omitempty"`
	VariantImageURLs map[string]string `json:"variantImageUrls"`
}

// GetProduct returns a product with its image URLs resolved. Each variant's
// URL is an independent lookup: one failure leaves that variant without an
// image and never aborts the rest.
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	product, err := h.repo.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	view := productView{Product: *product, VariantImageURLs: make(map[string]string)}
	if product.MainImagePath != "" {
		url, err := h.blobs.DownloadURL(c.Request.Context(), product.MainImagePath)
		if err != nil {
			h.logger.WithError(err).WithField("productId", product.ID).Warn("failed to resolve main image URL")
		} else {
			view.MainImageURL = url
		}
	}
	for _, variant := range product.ColorVariants {
		if variant.ImagePath == "" {
			continue
		}
		url, err := h.blobs.DownloadURL(c.Request.Context(), variant.ImagePath)
		if err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"productId": product.ID,
				"variantId": variant.ID,
			}).Warn("failed to resolve variant image URL")
			continue
		}
		view.VariantImageURLs[variant.ID] = url
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: view})
}

// resolveFilters reads filters from the query string when any are present,
// persisting them for the next visit; otherwise it restores the caller's
// saved selection.
func (h *ProductsHandler) resolveFilters(c *gin.Context) query.Filters {
	userID := c.GetString("user_id")

	_, hasSort := c.GetQuery("sortMode")
	hasAny := c.Query("categoryId") != "" || c.Query("subcategoryId") != "" ||
		c.Query("fabricTypeId") != "" || c.Query("colorSearch") != "" || hasSort

	if !hasAny {
		return h.filterState.Load(c.Request.Context(), userID)
	}

	filters := query.Filters{
		CategoryID:    c.Query("categoryId"),
		SubcategoryID: c.Query("subcategoryId"),
		FabricTypeID:  c.Query("fabricTypeId"),
		ColorSearch:   c.Query("colorSearch"),
		SortMode:      query.SortMode(c.Query("sortMode")),
	}
	if filters.SortMode == "" {
		filters.SortMode = query.SortRecent
	}
	if err := h.filterState.Save(c.Request.Context(), userID, filters); err != nil {
		h.logger.WithError(err).Warn("failed to persist filter state")
	}
	return filters
}

// GetProducts returns the filtered, sorted product listing. The full
// collection is fetched and filtered in memory.
func (h *ProductsHandler) GetProducts(c *gin.Context) {
	filters := h.resolveFilters(c)

	products, err := h.repo.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filtered := query.Apply(products, filters)

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{
		"products": filtered,
		"total":    len(filtered),
		"filters":  filters,
	}})
}
