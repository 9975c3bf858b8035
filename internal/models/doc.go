package models

import "time"

// Conversion between typed models and the schema-flexible documents the
// store holds. Two rules live here and only here:
//
//  1. Optional fields that are empty are never written; the store must not
//     receive explicit absence markers, and a round-tripped document lacks
//     the key entirely.
//  2. active/isActive default to true when the field is absent, for
//     backward compatibility with documents written before the flag existed.

// EncodeProduct builds the document for a product. ID is the document key
// and is not part of the data.
func EncodeProduct(p Product) map[string]interface{} {
	data := map[string]interface{}{
		"sku":           p.SKU,
		"categoryId":    p.CategoryID,
		"subcategoryId": p.SubcategoryID,
		"fabricTypeId":  p.FabricTypeID,
		"price":         p.Price,
		"mainImagePath": p.MainImagePath,
		"colorVariants": EncodeVariants(p.ColorVariants),
		"createdBy":     p.CreatedBy,
		"createdAt":     p.CreatedAt,
		"updatedAt":     p.UpdatedAt,
	}
	if p.Description != "" {
		data["description"] = p.Description
	}
	if p.Panno != "" {
		data["panno"] = p.Panno
	}
	return data
}

func DecodeProduct(id string, data map[string]interface{}) Product {
	return Product{
		ID:            id,
		SKU:           docString(data, "sku"),
		CategoryID:    docString(data, "categoryId"),
		SubcategoryID: docString(data, "subcategoryId"),
		FabricTypeID:  docString(data, "fabricTypeId"),
		Price:         docFloat(data, "price"),
		MainImagePath: docString(data, "mainImagePath"),
		ColorVariants: DecodeVariants(data["colorVariants"]),
		CreatedBy:     docString(data, "createdBy"),
		CreatedAt:     docTime(data, "createdAt"),
		UpdatedAt:     docTime(data, "updatedAt"),
		Description:   docString(data, "description"),
		Panno:         docString(data, "panno"),
	}
}

func EncodeVariant(v ColorVariant) map[string]interface{} {
	data := map[string]interface{}{
		"id":        v.ID,
		"imagePath": v.ImagePath,
		"colorName": v.ColorName,
		"createdAt": v.CreatedAt,
	}
	if v.VariantSKU != "" {
		data["variantSKU"] = v.VariantSKU
	}
	if v.Notes != "" {
		data["notes"] = v.Notes
	}
	if v.IsActive != nil {
		data["isActive"] = *v.IsActive
	}
	return data
}

func EncodeVariants(variants []ColorVariant) []interface{} {
	list := make([]interface{}, len(variants))
	for i, v := range variants {
		list[i] = EncodeVariant(v)
	}
	return list
}

// DecodeVariants tolerates an absent or malformed list, treating it as empty.
func DecodeVariants(raw interface{}) []ColorVariant {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var variants []ColorVariant
	for _, entry := range list {
		data, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		v := ColorVariant{
			ID:         docString(data, "id"),
			ImagePath:  docString(data, "imagePath"),
			ColorName:  docString(data, "colorName"),
			VariantSKU: docString(data, "variantSKU"),
			CreatedAt:  docTime(data, "createdAt"),
			Notes:      docString(data, "notes"),
		}
		if active, present := docBool(data, "isActive"); present {
			v.IsActive = &active
		}
		variants = append(variants, v)
	}
	return variants
}

// DecodeCategory falls back to the document id for the name so listings are
// never blank.
func DecodeCategory(id string, data map[string]interface{}) Category {
	name := docString(data, "name")
	if name == "" {
		name = id
	}
	return Category{ID: id, Name: name, Active: docActive(data)}
}

func DecodeSubcategory(id string, data map[string]interface{}) Subcategory {
	name := docString(data, "name")
	if name == "" {
		name = id
	}
	return Subcategory{
		ID:         id,
		Name:       name,
		CategoryID: docString(data, "categoryId"),
		Active:     docActive(data),
	}
}

func DecodeFabricType(id string, data map[string]interface{}) FabricType {
	name := docString(data, "name")
	if name == "" {
		name = id
	}
	return FabricType{
		ID:            id,
		Name:          name,
		SubcategoryID: docString(data, "subcategoryId"),
		Active:        docActive(data),
	}
}

func docActive(data map[string]interface{}) bool {
	active, present := docBool(data, "active")
	if !present {
		return true
	}
	return active
}

func docString(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func docBool(data map[string]interface{}, key string) (value, present bool) {
	raw, ok := data[key]
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false
	}
	return b, true
}

func docFloat(data map[string]interface{}, key string) float64 {
	switch n := data[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// docTime resolves a timestamp field; anything that is not a time value
// decodes to the zero time, which sorts as oldest.
func docTime(data map[string]interface{}, key string) time.Time {
	t, _ := data[key].(time.Time)
	return t
}
