package listview

import (
	"fmt"
	"strings"
	"testing"

	"asset-management-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(names ...string) []models.Asset {
	assets := make([]models.Asset, len(names))
	for i, n := range names {
		assets[i] = models.Asset{ID: int64(i + 1), Name: n}
	}
	return assets
}

func names(assets []models.Asset) []string {
	out := make([]string, len(assets))
	for i, a := range assets {
		out[i] = a.Name
	}
	return out
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	assets := named("Laptop", "Lamp", "Mouse")

	got := Filter(assets, "la")

	assert.Equal(t, []string{"Laptop", "Lamp"}, names(got))
}

func TestFilterEmptyTermPassesAll(t *testing.T) {
	assets := named("Laptop", "Lamp", "Mouse")

	got := Filter(assets, "")

	assert.Equal(t, assets, got)
}

func TestFilterIsSubset(t *testing.T) {
	assets := named("Desk", "desk lamp", "Chair", "DESKTOP", "Monitor")

	got := Filter(assets, "desk")

	assert.LessOrEqual(t, len(got), len(assets))
	for _, a := range got {
		assert.Contains(t, strings.ToLower(a.Name), "desk")
	}
}

func TestSortAscendingByName(t *testing.T) {
	assets := named("Mouse", "Lamp", "Laptop")

	got := Sort(assets, ColumnName, Asc)

	assert.Equal(t, []string{"Lamp", "Laptop", "Mouse"}, names(got))
	// input untouched
	assert.Equal(t, []string{"Mouse", "Lamp", "Laptop"}, names(assets))
}

func TestSortDescendingByName(t *testing.T) {
	assets := named("Mouse", "Lamp", "Laptop")

	got := Sort(assets, ColumnName, Desc)

	assert.Equal(t, []string{"Mouse", "Laptop", "Lamp"}, names(got))
}

func TestSortStableForEqualKeys(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, Name: "Lamp", Description: "first"},
		{ID: 2, Name: "Lamp", Description: "second"},
		{ID: 3, Name: "Chair", Description: "third"},
		{ID: 4, Name: "Lamp", Description: "fourth"},
	}

	got := Sort(assets, ColumnName, Asc)

	require.Len(t, got, 4)
	assert.Equal(t, "Chair", got[0].Name)
	// equal keys preserve input order
	assert.Equal(t, []int64{1, 2, 4}, []int64{got[1].ID, got[2].ID, got[3].ID})
}

func TestSortIdempotent(t *testing.T) {
	assets := named("Mouse", "Lamp", "Laptop", "Lamp")

	once := Sort(assets, ColumnName, Asc)
	twice := Sort(once, ColumnName, Asc)

	assert.Equal(t, once, twice)
}

func TestSortUnknownColumnPreservesOrder(t *testing.T) {
	assets := named("Mouse", "Lamp", "Laptop")

	got := Sort(assets, "serial", Asc)

	assert.Equal(t, assets, got)
}

func TestToggleSortSameColumnFlipsDirection(t *testing.T) {
	s := NewState().ToggleSort(ColumnName)
	assert.Equal(t, ColumnName, s.SortColumn)
	assert.Equal(t, Asc, s.SortDirection)

	s = s.ToggleSort(ColumnName)
	assert.Equal(t, Desc, s.SortDirection)

	s = s.ToggleSort(ColumnName)
	assert.Equal(t, Asc, s.SortDirection)
}

func TestToggleSortNewColumnResetsAscending(t *testing.T) {
	s := NewState().ToggleSort(ColumnName)
	s = s.ToggleSort(ColumnName) // now desc

	s = s.ToggleSort(ColumnDescription)

	assert.Equal(t, ColumnDescription, s.SortColumn)
	assert.Equal(t, Asc, s.SortDirection)
}

func TestApplyPagination23Records(t *testing.T) {
	assets := make([]models.Asset, 23)
	for i := range assets {
		assets[i] = models.Asset{ID: int64(i + 1), Name: fmt.Sprintf("Asset %02d", i+1)}
	}

	s := NewState()
	s.Page = 3
	view := Apply(assets, s)

	assert.Len(t, view.Visible, 3)
	assert.Equal(t, 3, view.TotalPages)
	assert.Equal(t, []int{1, 2, 3}, view.PageWindow)
}

func TestApplyPagesConcatenateToWhole(t *testing.T) {
	assets := make([]models.Asset, 37)
	for i := range assets {
		assets[i] = models.Asset{ID: int64(i + 1), Name: fmt.Sprintf("Asset %02d", i+1)}
	}

	s := NewState()
	s.SortColumn = ColumnName

	var concat []models.Asset
	first := Apply(assets, s)
	for page := 1; page <= first.TotalPages; page++ {
		s.Page = page
		view := Apply(assets, s)
		if page < first.TotalPages {
			assert.Len(t, view.Visible, s.PageSize)
		}
		concat = append(concat, view.Visible...)
	}

	assert.Equal(t, Sort(assets, ColumnName, Asc), concat)
}

func TestApplyEmptySet(t *testing.T) {
	view := Apply(nil, NewState())

	assert.Empty(t, view.Visible)
	assert.Equal(t, 0, view.TotalPages)
	assert.Empty(t, view.PageWindow)
}

func TestApplyPageBeyondRangeIsEmpty(t *testing.T) {
	assets := named("Laptop", "Lamp")

	s := NewState()
	s.Page = 5
	view := Apply(assets, s)

	assert.Empty(t, view.Visible)
	assert.Equal(t, 1, view.TotalPages)
}

func TestPageWindowAnchorsAndClamps(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       []int
	}{
		{"first page", 1, 10, []int{1, 2, 3, 4, 5}},
		{"middle page", 6, 10, []int{4, 5, 6, 7, 8}},
		{"near end clamps", 9, 10, []int{7, 8, 9, 10}},
		{"last page clamps", 10, 10, []int{8, 9, 10}},
		{"fewer pages than window", 1, 2, []int{1, 2}},
		{"no pages", 1, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageWindow(tt.page, tt.totalPages))
		})
	}
}

func TestApplySearchSortPaginatePipeline(t *testing.T) {
	assets := named("Lamp", "Laptop", "Mouse", "Flashlight", "Plant", "Clamp")

	s := NewState()
	s.Search = "la"
	s.SortColumn = ColumnName
	view := Apply(assets, s)

	// Lamp, Laptop, Flashlight, Plant, Clamp match "la"
	assert.Equal(t, []string{"Clamp", "Flashlight", "Lamp", "Laptop", "Plant"}, names(view.Visible))
	assert.Equal(t, 1, view.TotalPages)
}
