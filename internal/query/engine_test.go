package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func testProducts() []models.Product {
	return []models.Product{
		{
			ID:         "p1",
			CategoryID: "cat-a",
			CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ColorVariants: []models.ColorVariant{
				{ID: "v1", ColorName: "Dark Red"},
				{ID: "v2", ColorName: "Ivory"},
			},
		},
		{
			ID:         "p2",
			CategoryID: "cat-a",
			CreatedAt:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			ColorVariants: []models.ColorVariant{
				{ID: "v3", ColorName: "Navy"},
			},
		},
		{
			ID:         "p3",
			CategoryID: "cat-b",
			CreatedAt:  time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			ColorVariants: []models.ColorVariant{
				{ID: "v4", ColorName: "REDWOOD"},
			},
		},
	}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyConjunctiveFilters(t *testing.T) {
	result := Apply(testProducts(), Filters{CategoryID: "cat-a", ColorSearch: "ReD"})
	assert.Equal(t, []string{"p1"}, ids(result))
}

func TestApplyColorSearchIsSubstringAcrossVariants(t *testing.T) {
	result := Apply(testProducts(), Filters{ColorSearch: "red"})
	// p3 matches via REDWOOD; recent-first by default.
	assert.Equal(t, []string{"p3", "p1"}, ids(result))
}

func TestApplySortRecentAndOldest(t *testing.T) {
	recent := Apply(testProducts(), Filters{SortMode: SortRecent})
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids(recent))

	oldest := Apply(testProducts(), Filters{SortMode: SortOldest})
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(oldest))
}

func TestApplyZeroCreatedAtSortsOldest(t *testing.T) {
	products := append(testProducts(), models.Product{ID: "p0"})

	recent := Apply(products, Filters{SortMode: SortRecent})
	require.Len(t, recent, 4)
	assert.Equal(t, "p0", recent[3].ID)

	oldest := Apply(products, Filters{SortMode: SortOldest})
	assert.Equal(t, "p0", oldest[0].ID)
}

func TestApplyNoFiltersReturnsAll(t *testing.T) {
	result := Apply(testProducts(), Filters{})
	assert.Len(t, result, 3)
}

func TestFiltersIsZero(t *testing.T) {
	assert.True(t, Filters{}.IsZero())
	assert.True(t, Filters{SortMode: SortRecent, ColorSearch: "  "}.IsZero())
	assert.False(t, Filters{SortMode: SortOldest}.IsZero())
	assert.False(t, Filters{CategoryID: "cat-a"}.IsZero())
}
