package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-service/internal/models"
	"catalog-service/internal/store"
)

const (
	productsCollection = "products"

	// Product list cache is short-lived because variant mutations are
	// frequent during catalog entry.
	productListCacheTTL = 2 * time.Minute
	productListCacheKey = "catalog:products:all"
)

// ProductsRepository owns the products collection, including the
// read-modify-write protocol for the embedded variant list. There is no
// concurrency token: two concurrent variant mutations on the same product
// race and the last write wins. That contract is deliberate; see the
// mutation methods.
type ProductsRepository struct {
	store store.DocumentStore
	redis *redis.Client
}

func NewProductsRepository(docs store.DocumentStore, redisClient *redis.Client) *ProductsRepository {
	return &ProductsRepository{store: docs, redis: redisClient}
}

func (r *ProductsRepository) invalidateListCache(ctx context.Context) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, productListCacheKey)
}

// CreateProduct persists a new product and returns the store-assigned id.
// createdAt and updatedAt are stamped here; empty optional fields are never
// written to the document.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *models.Product) (string, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ColorVariants == nil {
		p.ColorVariants = []models.ColorVariant{}
	}

	id, err := r.store.Add(ctx, productsCollection, models.EncodeProduct(*p))
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	p.ID = id

	r.invalidateListCache(ctx)
	return id, nil
}

// GetProductByID returns ErrProductNotFound for a missing document; any
// other error is a transport failure.
func (r *ProductsRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	doc, err := r.store.Get(ctx, productsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if doc == nil {
		return nil, ErrProductNotFound
	}
	p := models.DecodeProduct(doc.ID, doc.Data)
	return &p, nil
}

// GetAllProducts returns the full collection, unfiltered and unpaginated.
// This is the dataset the query engine filters in memory.
func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	if r.redis != nil {
		val, err := r.redis.Get(ctx, productListCacheKey).Result()
		if err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	docs, err := r.store.Query(ctx, productsCollection)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, models.DecodeProduct(doc.ID, doc.Data))
	}

	if r.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			r.redis.Set(ctx, productListCacheKey, data, productListCacheTTL)
		}
	}
	return products, nil
}

// SetMainImagePath commits the uploaded main image path onto the product.
func (r *ProductsRepository) SetMainImagePath(ctx context.Context, productID, path string) error {
	err := r.store.Update(ctx, productsCollection, productID, map[string]interface{}{
		"mainImagePath": path,
		"updatedAt":     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("set main image: %w", err)
	}
	r.invalidateListCache(ctx)
	return nil
}

// AddColorVariant appends a variant to the product's embedded list.
// Read-modify-write: fetch the current list, append, write the whole list
// back with a refreshed updatedAt. Insertion order of existing entries is
// preserved. Last write wins on concurrent mutation.
func (r *ProductsRepository) AddColorVariant(ctx context.Context, productID string, variant models.ColorVariant) error {
	doc, err := r.store.Get(ctx, productsCollection, productID)
	if err != nil {
		return fmt.Errorf("add variant: %w", err)
	}
	if doc == nil {
		return ErrProductNotFound
	}

	current := rawVariants(doc.Data)
	updated := append(current, models.EncodeVariant(variant))

	return r.writeVariants(ctx, productID, updated)
}

// UpdateColorVariant merges the given top-level fields over the variant with
// the matching id. A variantId with no match silently leaves the list
// unchanged (only the parent product's absence is an error); updatedAt is
// refreshed either way. Empty-string values for optional fields remove the
// key instead of persisting an absence marker.
func (r *ProductsRepository) UpdateColorVariant(ctx context.Context, productID, variantID string, updates map[string]interface{}) error {
	doc, err := r.store.Get(ctx, productsCollection, productID)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	if doc == nil {
		return ErrProductNotFound
	}

	current := rawVariants(doc.Data)
	updated := make([]interface{}, len(current))
	for i, entry := range current {
		data, ok := entry.(map[string]interface{})
		if !ok || data["id"] != variantID {
			updated[i] = entry
			continue
		}
		merged := make(map[string]interface{}, len(data)+len(updates))
		for k, v := range data {
			merged[k] = v
		}
		for k, v := range updates {
			if s, isStr := v.(string); isStr && s == "" && optionalVariantField(k) {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		updated[i] = merged
	}

	return r.writeVariants(ctx, productID, updated)
}

// DeleteColorVariant filters the variant out of the list by id, preserving
// the relative order of the remaining entries. A missing id is a no-op.
func (r *ProductsRepository) DeleteColorVariant(ctx context.Context, productID, variantID string) error {
	doc, err := r.store.Get(ctx, productsCollection, productID)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if doc == nil {
		return ErrProductNotFound
	}

	current := rawVariants(doc.Data)
	updated := make([]interface{}, 0, len(current))
	for _, entry := range current {
		if data, ok := entry.(map[string]interface{}); ok && data["id"] == variantID {
			continue
		}
		updated = append(updated, entry)
	}

	return r.writeVariants(ctx, productID, updated)
}

func (r *ProductsRepository) writeVariants(ctx context.Context, productID string, variants []interface{}) error {
	err := r.store.Update(ctx, productsCollection, productID, map[string]interface{}{
		"colorVariants": variants,
		"updatedAt":     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write variants: %w", err)
	}
	r.invalidateListCache(ctx)
	return nil
}

// rawVariants reads the embedded list without decoding entries, so untouched
// variants are written back byte-identical. An absent list is empty.
func rawVariants(data map[string]interface{}) []interface{} {
	list, _ := data["colorVariants"].([]interface{})
	if list == nil {
		return []interface{}{}
	}
	return list
}

func optionalVariantField(key string) bool {
	return key == "variantSKU" || key == "notes"
}
