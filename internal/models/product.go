package models

import "time"

// ColorVariant is embedded in its parent Product's colorVariants list. It has
// no independent lifecycle: it is created, mutated, and deleted only through
// the product's embedded-list mutation protocol. Price and fabric type are
// product-level and are not overridden per variant.
type ColorVariant struct {
	ID         string    `json:"id"`
	ImagePath  string    `json:"imagePath"`
	ColorName  string    `json:"colorName"`
	VariantSKU string    `json:"variantSKU,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	IsActive   *bool     `json:"isActive,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// Active resolves the soft-delete flag with its default: a variant written
// before the flag existed counts as active.
func (v ColorVariant) Active() bool {
	return v.IsActive == nil || *v.IsActive
}

// Product is a catalog entry. Color variants live inline in the document;
// fabricTypeId and price apply uniformly to every variant.
type Product struct {
	ID            string         `json:"id"`
	SKU           string         `json:"sku"`
	CategoryID    string         `json:"categoryId"`
	SubcategoryID string         `json:"subcategoryId"`
	FabricTypeID  string         `json:"fabricTypeId"`
	Price         float64        `json:"price"`
	MainImagePath string         `json:"mainImagePath"`
	ColorVariants []ColorVariant `json:"colorVariants"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Description   string         `json:"description,omitempty"`
	// Panno is only meaningful for products in the Embroidery category.
	Panno string `json:"panno,omitempty"`
}

// CreateProductRequest is the payload for product creation. The main image is
// uploaded in a second step once the product id exists, so it is not part of
// this request.
type CreateProductRequest struct {
	SKU           string  `json:"sku" binding:"required"`
	CategoryID    string  `json:"categoryId" binding:"required"`
	SubcategoryID string  `json:"subcategoryId" binding:"required"`
	FabricTypeID  string  `json:"fabricTypeId" binding:"required"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	Panno         string  `json:"panno"`
}

// ShareVariantsRequest selects which variants of a product to share.
type ShareVariantsRequest struct {
	VariantIDs []string `json:"variantIds" binding:"required,min=1"`
}
