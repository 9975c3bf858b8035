package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/blob"
	"catalog-service/internal/models"
	"catalog-service/internal/query"
	"catalog-service/internal/repository"
	"catalog-service/internal/store"
)

type productsFixture struct {
	router  *gin.Engine
	docs    *store.MemoryStore
	repo    *repository.ProductsRepository
	catalog *repository.CatalogRepository
	blobs   *blob.MemoryStore
}

func setupProducts(t *testing.T) *productsFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	docs := store.NewMemoryStore()
	repo := repository.NewProductsRepository(docs, nil)
	catalog := repository.NewCatalogRepository(docs, nil)
	blobs := blob.NewMemoryStore()
	h := NewProductsHandler(repo, catalog, blobs, query.NewFilterStateStore(nil), testLogger())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "staff-1") })
	r.POST("/products", h.CreateProduct)
	r.POST("/products/:id/image", h.UploadMainImage)
	r.GET("/products", h.GetProducts)
	r.GET("/products/:id", h.GetProduct)

	return &productsFixture{router: r, docs: docs, repo: repo, catalog: catalog, blobs: blobs}
}

func (f *productsFixture) postProduct(t *testing.T, req models.CreateProductRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(req)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	return rec
}

func TestCreateProductStampsCreator(t *testing.T) {
	f := setupProducts(t)

	rec := f.postProduct(t, models.CreateProductRequest{
		SKU: "EMB-1001", CategoryID: "cat-1", SubcategoryID: "sub-1", FabricTypeID: "fab-1", Price: 99,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "staff-1", resp.Data.CreatedBy)
	assert.Empty(t, resp.Data.MainImagePath)
	assert.Empty(t, resp.Data.ColorVariants)
}

func TestCreateProductRejectsMissingFields(t *testing.T) {
	f := setupProducts(t)

	rec := f.postProduct(t, models.CreateProductRequest{SKU: "EMB-1001"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductPannoOnlyForEmbroidery(t *testing.T) {
	f := setupProducts(t)
	ctx := context.Background()

	embroidery, err := f.catalog.AddCategory(ctx, "Embroidery")
	require.NoError(t, err)
	lace, err := f.catalog.AddCategory(ctx, "Lace")
	require.NoError(t, err)

	rec := f.postProduct(t, models.CreateProductRequest{
		SKU: "EMB-1", CategoryID: embroidery.ID, SubcategoryID: "sub-1", FabricTypeID: "fab-1", Panno: "52 inch",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var kept struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kept))
	assert.Equal(t, "52 inch", kept.Data.Panno)

	rec = f.postProduct(t, models.CreateProductRequest{
		SKU: "LAC-1", CategoryID: lace.ID, SubcategoryID: "sub-1", FabricTypeID: "fab-1", Panno: "52 inch",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dropped struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dropped))
	assert.Empty(t, dropped.Data.Panno, "panno is dropped outside the Embroidery category")
}

func TestUploadMainImageMissingProduct(t *testing.T) {
	f := setupProducts(t)

	body, contentType := multipartForm(t, nil, "image", "main.jpg")
	req := httptest.NewRequest(http.MethodPost, "/products/missing/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadMainImageCommitsPath(t *testing.T) {
	f := setupProducts(t)
	ctx := context.Background()

	p := models.Product{SKU: "EMB-1001", CategoryID: "cat-1", SubcategoryID: "sub-1", FabricTypeID: "fab-1"}
	id, err := f.repo.CreateProduct(ctx, &p)
	require.NoError(t, err)

	body, contentType := multipartForm(t, nil, "image", "main.jpg")
	req := httptest.NewRequest(http.MethodPost, "/products/"+id+"/image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := f.repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.MainImagePath)
	assert.True(t, f.blobs.Has(stored.MainImagePath))
}

func TestGetProductResolvesImageURLs(t *testing.T) {
	f := setupProducts(t)
	ctx := context.Background()

	p := models.Product{SKU: "EMB-1001", CategoryID: "cat-1", SubcategoryID: "sub-1", FabricTypeID: "fab-1"}
	id, err := f.repo.CreateProduct(ctx, &p)
	require.NoError(t, err)

	imagePath := "products/" + id + "/variants/variant_v1_1.jpg"
	require.NoError(t, f.blobs.Upload(ctx, imagePath, "image/jpeg", bytes.NewReader([]byte("img"))))
	require.NoError(t, f.repo.AddColorVariant(ctx, id, models.ColorVariant{ID: "v1", ColorName: "Crimson", ImagePath: imagePath}))

	req := httptest.NewRequest(http.MethodGet, "/products/"+id, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			VariantImageURLs map[string]string `json:"variantImageUrls"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://blobs.local/"+imagePath, resp.Data.VariantImageURLs["v1"])
}

func TestGetProductsAppliesQueryFilters(t *testing.T) {
	f := setupProducts(t)
	ctx := context.Background()

	a := models.Product{SKU: "A", CategoryID: "cat-1", SubcategoryID: "sub-1", FabricTypeID: "fab-1"}
	_, err := f.repo.CreateProduct(ctx, &a)
	require.NoError(t, err)
	b := models.Product{SKU: "B", CategoryID: "cat-2", SubcategoryID: "sub-2", FabricTypeID: "fab-2"}
	_, err = f.repo.CreateProduct(ctx, &b)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/products?categoryId=cat-1", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Products []models.Product `json:"products"`
			Total    int              `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "A", resp.Data.Products[0].SKU)
}
