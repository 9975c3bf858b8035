package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
	"catalog-service/internal/store"
)

func newProductsRepo(t *testing.T) (*ProductsRepository, *store.MemoryStore) {
	t.Helper()
	docs := store.NewMemoryStore()
	return NewProductsRepository(docs, nil), docs
}

func seedProduct(t *testing.T, repo *ProductsRepository, variants ...models.ColorVariant) string {
	t.Helper()
	p := models.Product{
		SKU:           "EMB-1001",
		CategoryID:    "cat-1",
		SubcategoryID: "sub-1",
		FabricTypeID:  "fab-1",
		Price:         149.50,
		ColorVariants: variants,
	}
	id, err := repo.CreateProduct(context.Background(), &p)
	require.NoError(t, err)
	return id
}

func variant(id, color string) models.ColorVariant {
	return models.ColorVariant{
		ID:        id,
		ImagePath: "products/p/variants/variant_" + id + ".jpg",
		ColorName: color,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateProductOmitsEmptyOptionalFields(t *testing.T) {
	repo, docs := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo)

	doc, err := docs.Get(ctx, "products", id)
	require.NoError(t, err)
	require.NotNil(t, doc)

	_, hasDescription := doc.Data["description"]
	_, hasPanno := doc.Data["panno"]
	assert.False(t, hasDescription, "empty description must not be persisted")
	assert.False(t, hasPanno, "empty panno must not be persisted")
	assert.Equal(t, "EMB-1001", doc.Data["sku"])
}

func TestGetProductByIDNotFound(t *testing.T) {
	repo, _ := newProductsRepo(t)

	_, err := repo.GetProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddColorVariantAppendsToEnd(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"), variant("v2", "Navy"))

	err := repo.AddColorVariant(ctx, id, variant("v3", "Ivory"))
	require.NoError(t, err)

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.ColorVariants, 3)
	assert.Equal(t, "v1", p.ColorVariants[0].ID)
	assert.Equal(t, "v2", p.ColorVariants[1].ID)
	assert.Equal(t, "v3", p.ColorVariants[2].ID)
}

func TestAddColorVariantMissingProduct(t *testing.T) {
	repo, _ := newProductsRepo(t)

	err := repo.AddColorVariant(context.Background(), "missing", variant("v1", "Crimson"))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateColorVariantTouchesOnlyTarget(t *testing.T) {
	repo, docs := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"), variant("v2", "Navy"))

	before, err := docs.Get(ctx, "products", id)
	require.NoError(t, err)
	untouchedBefore := rawVariants(before.Data)[0]

	err = repo.UpdateColorVariant(ctx, id, "v2", map[string]interface{}{"colorName": "Midnight Navy"})
	require.NoError(t, err)

	after, err := docs.Get(ctx, "products", id)
	require.NoError(t, err)
	list := rawVariants(after.Data)
	require.Len(t, list, 2)
	assert.Equal(t, untouchedBefore, list[0], "untouched entry must be written back unchanged")

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Midnight Navy", p.ColorVariants[1].ColorName)
	assert.Equal(t, "Crimson", p.ColorVariants[0].ColorName)
}

func TestUpdateColorVariantEmptyOptionalRemovesKey(t *testing.T) {
	repo, docs := newProductsRepo(t)
	ctx := context.Background()

	v := variant("v1", "Crimson")
	v.Notes = "limited run"
	id := seedProduct(t, repo, v)

	err := repo.UpdateColorVariant(ctx, id, "v1", map[string]interface{}{"notes": ""})
	require.NoError(t, err)

	doc, err := docs.Get(ctx, "products", id)
	require.NoError(t, err)
	entry := rawVariants(doc.Data)[0].(map[string]interface{})
	_, hasNotes := entry["notes"]
	assert.False(t, hasNotes, "cleared notes must remove the key, not store an empty string")
}

func TestUpdateColorVariantAbsentIDLeavesListUnchanged(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"), variant("v2", "Navy"))

	err := repo.UpdateColorVariant(ctx, id, "nope", map[string]interface{}{"colorName": "Ghost"})
	require.NoError(t, err)

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.ColorVariants, 2)
	assert.Equal(t, "Crimson", p.ColorVariants[0].ColorName)
	assert.Equal(t, "Navy", p.ColorVariants[1].ColorName)
}

func TestDeleteColorVariantPreservesOrder(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"), variant("v2", "Navy"), variant("v3", "Ivory"))

	err := repo.DeleteColorVariant(ctx, id, "v2")
	require.NoError(t, err)

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, p.ColorVariants, 2)
	assert.Equal(t, "v1", p.ColorVariants[0].ID)
	assert.Equal(t, "v3", p.ColorVariants[1].ID)
}

func TestDeleteColorVariantAbsentIDIsNoOp(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"))

	err := repo.DeleteColorVariant(ctx, id, "nope")
	require.NoError(t, err)

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, p.ColorVariants, 1)
}

func TestVariantMutationRefreshesUpdatedAt(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo, variant("v1", "Crimson"))
	created, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.DeleteColorVariant(ctx, id, "nope"))

	after, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(created.UpdatedAt),
		"updatedAt refreshes on every mutation attempt, even a no-op")
}

func TestSetMainImagePath(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	id := seedProduct(t, repo)
	require.NoError(t, repo.SetMainImagePath(ctx, id, "products/"+id+"/main_1.jpg"))

	p, err := repo.GetProductByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "products/"+id+"/main_1.jpg", p.MainImagePath)
}

func TestGetAllProductsReturnsEveryDocument(t *testing.T) {
	repo, _ := newProductsRepo(t)
	ctx := context.Background()

	seedProduct(t, repo)
	seedProduct(t, repo)

	products, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}
