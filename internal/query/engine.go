package query

import (
	"sort"
	"strings"

	"catalog-service/internal/models"
)

// SortMode orders the filtered product list by creation time.
type SortMode string

const (
	SortRecent SortMode = "recent"
	SortOldest SortMode = "oldest"
)

// Filters is the five-field selection state driving the product listing. The
// zero value of each field means "not filtering on this".
type Filters struct {
	CategoryID    string   `json:"categoryId"`
	SubcategoryID string   `json:"subcategoryId"`
	FabricTypeID  string   `json:"fabricTypeId"`
	ColorSearch   string   `json:"colorSearch"`
	SortMode      SortMode `json:"sortMode"`
}

func DefaultFilters() Filters {
	return Filters{SortMode: SortRecent}
}

// IsZero reports whether no filter or non-default sort is set.
func (f Filters) IsZero() bool {
	return f.CategoryID == "" && f.SubcategoryID == "" && f.FabricTypeID == "" &&
		strings.TrimSpace(f.ColorSearch) == "" && (f.SortMode == "" || f.SortMode == SortRecent)
}

// Apply evaluates the conjunctive filter predicate over the full product set
// and sorts the result. The color search is a case-insensitive substring
// match against any variant's color name. Products whose createdAt could not
// be resolved carry the zero time and therefore sort as oldest.
func Apply(products []models.Product, f Filters) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.ColorSearch))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.SubcategoryID != "" && p.SubcategoryID != f.SubcategoryID {
			continue
		}
		if f.FabricTypeID != "" && p.FabricTypeID != f.FabricTypeID {
			continue
		}
		if search != "" && !anyColorMatches(p.ColorVariants, search) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.SortMode == SortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out
}

func anyColorMatches(variants []models.ColorVariant, search string) bool {
	for _, v := range variants {
		if strings.Contains(strings.ToLower(v.ColorName), search) {
			return true
		}
	}
	return false
}
