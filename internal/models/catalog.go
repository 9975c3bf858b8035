package models

// Category is the root of the catalog hierarchy.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Subcategory references exactly one Category. The reference is not enforced
// by the store; orphaned subcategories are tolerated.
type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
	Active     bool   `json:"active"`
}

// FabricType references exactly one Subcategory, with the same orphan
// tolerance.
type FabricType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SubcategoryID string `json:"subcategoryId"`
	Active        bool   `json:"active"`
}

type AddCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddSubcategoryRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

type AddFabricTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	SubcategoryID string `json:"subcategoryId" binding:"required"`
}
