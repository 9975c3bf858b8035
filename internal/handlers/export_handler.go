package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-service/internal/models"
	"catalog-service/internal/query"
	"catalog-service/internal/repository"
)

// ExportHandler writes the filtered catalog to an Excel workbook for
// offline use by the sales team.
type ExportHandler struct {
	repo    *repository.ProductsRepository
	catalog *repository.CatalogRepository
	logger  *logrus.Logger
}

func NewExportHandler(repo *repository.ProductsRepository, catalog *repository.CatalogRepository, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{repo: repo, catalog: catalog, logger: logger}
}

var exportColumns = []string{"SKU", "Category", "Subcategory", "Fabric Type", "Price", "Colors", "Panno", "Description", "Created At"}

// ExportProducts streams an xlsx of the catalog, honoring the same query
// parameters as the listing endpoint.
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	filters := query.Filters{
		CategoryID:    c.Query("categoryId"),
		SubcategoryID: c.Query("subcategoryId"),
		FabricTypeID:  c.Query("fabricTypeId"),
		ColorSearch:   c.Query("colorSearch"),
		SortMode:      query.SortMode(c.Query("sortMode")),
	}

	products, err := h.repo.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	filtered := query.Apply(products, filters)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	names := newNameResolver(h.catalog, h.logger)
	for row, p := range filtered {
		values := []interface{}{
			p.SKU,
			names.category(c.Request.Context(), p.CategoryID),
			names.subcategory(c.Request.Context(), p.SubcategoryID),
			names.fabricType(c.Request.Context(), p.FabricTypeID),
			p.Price,
			variantColorNames(p.ColorVariants),
			p.Panno,
			p.Description,
			formatTimestamp(p.CreatedAt),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=catalog_export_%s.xlsx", time.Now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("failed to write export workbook")
	}
	c.Status(http.StatusOK)
}

// nameResolver memoizes taxonomy name lookups for one export run. Deleted
// (orphaned) parents resolve to the raw id.
type nameResolver struct {
	catalog     *repository.CatalogRepository
	logger      *logrus.Logger
	categories  map[string]string
	subcats     map[string]string
	fabricTypes map[string]string
}

func newNameResolver(catalog *repository.CatalogRepository, logger *logrus.Logger) *nameResolver {
	return &nameResolver{
		catalog:     catalog,
		logger:      logger,
		categories:  make(map[string]string),
		subcats:     make(map[string]string),
		fabricTypes: make(map[string]string),
	}
}

func (r *nameResolver) category(ctx context.Context, id string) string {
	if name, ok := r.categories[id]; ok {
		return name
	}
	name := id
	if cat, err := r.catalog.GetCategory(ctx, id); err != nil {
		r.logger.WithError(err).WithField("categoryId", id).Warn("category name lookup failed")
	} else if cat != nil {
		name = cat.Name
	}
	r.categories[id] = name
	return name
}

func (r *nameResolver) subcategory(ctx context.Context, id string) string {
	if name, ok := r.subcats[id]; ok {
		return name
	}
	name := id
	if sub, err := r.catalog.GetSubcategory(ctx, id); err != nil {
		r.logger.WithError(err).WithField("subcategoryId", id).Warn("subcategory name lookup failed")
	} else if sub != nil {
		name = sub.Name
	}
	r.subcats[id] = name
	return name
}

func (r *nameResolver) fabricType(ctx context.Context, id string) string {
	if name, ok := r.fabricTypes[id]; ok {
		return name
	}
	name := id
	if ft, err := r.catalog.GetFabricType(ctx, id); err != nil {
		r.logger.WithError(err).WithField("fabricTypeId", id).Warn("fabric type name lookup failed")
	} else if ft != nil {
		name = ft.Name
	}
	r.fabricTypes[id] = name
	return name
}

func variantColorNames(variants []models.ColorVariant) string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.ColorName)
	}
	return strings.Join(names, ", ")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
