package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-service/internal/models"
	"catalog-service/internal/store"
)

const (
	categoriesCollection    = "categories"
	subcategoriesCollection = "subcategories"
	fabricTypesCollection   = "fabricTypes"

	// Taxonomy changes are rare; cache listings generously.
	taxonomyCacheTTL = 30 * time.Minute
)

// CatalogRepository is the typed accessor over the three taxonomy
// collections. Listings return only active entities, where a document
// without the flag counts as active.
type CatalogRepository struct {
	store store.DocumentStore
	redis *redis.Client
}

func NewCatalogRepository(docs store.DocumentStore, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{store: docs, redis: redisClient}
}

func (r *CatalogRepository) invalidateTaxonomyCaches(ctx context.Context) {
	if r.redis == nil {
		return
	}
	keys, _ := r.redis.Keys(ctx, "catalog:taxonomy:*").Result()
	if len(keys) > 0 {
		r.redis.Del(ctx, keys...)
	}
}

func (r *CatalogRepository) cachedList(ctx context.Context, key string, out interface{}) bool {
	if r.redis == nil {
		return false
	}
	val, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (r *CatalogRepository) cacheList(ctx context.Context, key string, value interface{}) {
	if r.redis == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		r.redis.Set(ctx, key, data, taxonomyCacheTTL)
	}
}

// ListCategories returns every active category.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	cacheKey := "catalog:taxonomy:categories"
	var cached []models.Category
	if r.cachedList(ctx, cacheKey, &cached) {
		return cached, nil
	}

	docs, err := r.store.Query(ctx, categoriesCollection)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		cat := models.DecodeCategory(doc.ID, doc.Data)
		if cat.Active {
			categories = append(categories, cat)
		}
	}

	r.cacheList(ctx, cacheKey, categories)
	return categories, nil
}

// GetCategory returns a single category, or nil when it does not exist.
func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	doc, err := r.store.Get(ctx, categoriesCollection, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	cat := models.DecodeCategory(doc.ID, doc.Data)
	return &cat, nil
}

// GetSubcategory returns a single subcategory, or nil when it does not exist.
func (r *CatalogRepository) GetSubcategory(ctx context.Context, id string) (*models.Subcategory, error) {
	doc, err := r.store.Get(ctx, subcategoriesCollection, id)
	if err != nil {
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	sub := models.DecodeSubcategory(doc.ID, doc.Data)
	return &sub, nil
}

// GetFabricType returns a single fabric type, or nil when it does not exist.
func (r *CatalogRepository) GetFabricType(ctx context.Context, id string) (*models.FabricType, error) {
	doc, err := r.store.Get(ctx, fabricTypesCollection, id)
	if err != nil {
		return nil, fmt.Errorf("get fabric type: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	ft := models.DecodeFabricType(doc.ID, doc.Data)
	return &ft, nil
}

// ListSubcategories returns the active subcategories of one category.
func (r *CatalogRepository) ListSubcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error) {
	cacheKey := "catalog:taxonomy:subcategories:" + categoryID
	var cached []models.Subcategory
	if r.cachedList(ctx, cacheKey, &cached) {
		return cached, nil
	}

	docs, err := r.store.Query(ctx, subcategoriesCollection, store.Filter{Field: "categoryId", Value: categoryID})
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	subcategories := make([]models.Subcategory, 0, len(docs))
	for _, doc := range docs {
		sub := models.DecodeSubcategory(doc.ID, doc.Data)
		if sub.Active {
			subcategories = append(subcategories, sub)
		}
	}

	r.cacheList(ctx, cacheKey, subcategories)
	return subcategories, nil
}

// ListFabricTypes returns the active fabric types of one subcategory.
func (r *CatalogRepository) ListFabricTypes(ctx context.Context, subcategoryID string) ([]models.FabricType, error) {
	cacheKey := "catalog:taxonomy:fabricTypes:" + subcategoryID
	var cached []models.FabricType
	if r.cachedList(ctx, cacheKey, &cached) {
		return cached, nil
	}

	docs, err := r.store.Query(ctx, fabricTypesCollection, store.Filter{Field: "subcategoryId", Value: subcategoryID})
	if err != nil {
		return nil, fmt.Errorf("list fabric types: %w", err)
	}

	fabricTypes := make([]models.FabricType, 0, len(docs))
	for _, doc := range docs {
		ft := models.DecodeFabricType(doc.ID, doc.Data)
		if ft.Active {
			fabricTypes = append(fabricTypes, ft)
		}
	}

	r.cacheList(ctx, cacheKey, fabricTypes)
	return fabricTypes, nil
}

// AddCategory creates a category with active defaulted to true.
func (r *CatalogRepository) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "category name is required"}
	}

	id, err := r.store.Add(ctx, categoriesCollection, map[string]interface{}{
		"name":   name,
		"active": true,
	})
	if err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}

	r.invalidateTaxonomyCaches(ctx)
	return &models.Category{ID: id, Name: name, Active: true}, nil
}

// AddSubcategory creates a subcategory under a category. The parent is not
// checked for existence; the store does not enforce the reference.
func (r *CatalogRepository) AddSubcategory(ctx context.Context, name, categoryID string) (*models.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "subcategory name is required"}
	}
	if categoryID == "" {
		return nil, &ValidationError{Field: "categoryId", Message: "parent category is required"}
	}

	id, err := r.store.Add(ctx, subcategoriesCollection, map[string]interface{}{
		"name":       name,
		"categoryId": categoryID,
		"active":     true,
	})
	if err != nil {
		return nil, fmt.Errorf("add subcategory: %w", err)
	}

	r.invalidateTaxonomyCaches(ctx)
	return &models.Subcategory{ID: id, Name: name, CategoryID: categoryID, Active: true}, nil
}

// AddFabricType creates a fabric type under a subcategory.
func (r *CatalogRepository) AddFabricType(ctx context.Context, name, subcategoryID string) (*models.FabricType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "fabric type name is required"}
	}
	if subcategoryID == "" {
		return nil, &ValidationError{Field: "subcategoryId", Message: "parent subcategory is required"}
	}

	id, err := r.store.Add(ctx, fabricTypesCollection, map[string]interface{}{
		"name":          name,
		"subcategoryId": subcategoryID,
		"active":        true,
	})
	if err != nil {
		return nil, fmt.Errorf("add fabric type: %w", err)
	}

	r.invalidateTaxonomyCaches(ctx)
	return &models.FabricType{ID: id, Name: name, SubcategoryID: subcategoryID, Active: true}, nil
}

// DeleteCategory hard-deletes a category. Children are NOT cascaded and
// become orphaned; callers surface that warning to the user.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, categoriesCollection, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	r.invalidateTaxonomyCaches(ctx)
	return nil
}

// DeleteSubcategory hard-deletes a subcategory, orphaning its fabric types.
func (r *CatalogRepository) DeleteSubcategory(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, subcategoriesCollection, id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	r.invalidateTaxonomyCaches(ctx)
	return nil
}

// DeleteFabricType hard-deletes a fabric type.
func (r *CatalogRepository) DeleteFabricType(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, fabricTypesCollection, id); err != nil {
		return fmt.Errorf("delete fabric type: %w", err)
	}
	r.invalidateTaxonomyCaches(ctx)
	return nil
}
