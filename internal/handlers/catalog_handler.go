package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
	"catalog-service/internal/query"
	"catalog-service/internal/repository"
)

// CatalogHandler exposes the category / subcategory / fabric-type hierarchy.
type CatalogHandler struct {
	repo   *repository.CatalogRepository
	logger *logrus.Logger
}

func NewCatalogHandler(repo *repository.CatalogRepository, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{repo: repo, logger: logger}
}

// GetCategories lists all active categories.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: categories})
}

// GetSubcategories lists the active subcategories of one category.
func (h *CatalogHandler) GetSubcategories(c *gin.Context) {
	categoryID := c.Query("categoryId")
	if categoryID == "" {
		validationError(c, "categoryId", "categoryId query parameter is required")
		return
	}
	subcategories, err := h.repo.ListSubcategories(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: subcategories})
}

// GetFabricTypes lists the active fabric types of one subcategory.
func (h *CatalogHandler) GetFabricTypes(c *gin.Context) {
	subcategoryID := c.Query("subcategoryId")
	if subcategoryID == "" {
		validationError(c, "subcategoryId", "subcategoryId query parameter is required")
		return
	}
	fabricTypes, err := h.repo.ListFabricTypes(c.Request.Context(), subcategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: fabricTypes})
}

// CreateCategory adds a category (admin only).
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "name", err.Error())
		return
	}
	category, err := h.repo.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: category})
}

// CreateSubcategory adds a subcategory under a category (admin only).
func (h *CatalogHandler) CreateSubcategory(c *gin.Context) {
	var req models.AddSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "", err.Error())
		return
	}
	subcategory, err := h.repo.AddSubcategory(c.Request.Context(), req.Name, req.CategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: subcategory})
}

// CreateFabricType adds a fabric type under a subcategory (admin only).
func (h *CatalogHandler) CreateFabricType(c *gin.Context) {
	var req models.AddFabricTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "", err.Error())
		return
	}
	fabricType, err := h.repo.AddFabricType(c.Request.Context(), req.Name, req.SubcategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: fabricType})
}

// DeleteCategory hard-deletes a category. Subcategories underneath are not
// cascaded; the response warns about the orphans it leaves behind.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	msg := "Category deleted. Subcategories referencing it are now orphaned and will not appear in listings until reassigned."
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// DeleteSubcategory hard-deletes a subcategory, orphaning its fabric types.
func (h *CatalogHandler) DeleteSubcategory(c *gin.Context) {
	if err := h.repo.DeleteSubcategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	msg := "Subcategory deleted. Fabric types referencing it are now orphaned."
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// DeleteFabricType hard-deletes a fabric type.
func (h *CatalogHandler) DeleteFabricType(c *gin.Context) {
	if err := h.repo.DeleteFabricType(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	msg := "Fabric type deleted."
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// GetOptions evaluates the dependent selector for the caller's current
// selection. Both the listing page and the creation page drive their
// dropdowns from this one endpoint, so the cascade logic lives in exactly
// one place.
func (h *CatalogHandler) GetOptions(c *gin.Context) {
	selector := query.NewSelector(h.fetchSubcategoryOptions, h.fetchFabricTypeOptions)

	err := selector.Replay(
		c.Request.Context(),
		c.Query("categoryId"),
		c.Query("subcategoryId"),
		c.Query("fabricTypeId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: selector})
}

func (h *CatalogHandler) fetchSubcategoryOptions(ctx context.Context, categoryID string) ([]query.Option, error) {
	subcategories, err := h.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	options := make([]query.Option, len(subcategories))
	for i, sub := range subcategories {
		options[i] = query.Option{ID: sub.ID, Name: sub.Name}
	}
	return options, nil
}

func (h *CatalogHandler) fetchFabricTypeOptions(ctx context.Context, subcategoryID string) ([]query.Option, error) {
	fabricTypes, err := h.repo.ListFabricTypes(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}
	options := make([]query.Option, len(fabricTypes))
	for i, ft := range fabricTypes {
		options[i] = query.Option{ID: ft.ID, Name: ft.Name}
	}
	return options, nil
}
